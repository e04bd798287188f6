package ledger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlabs/greenproof/internal/model"
	"github.com/verdantlabs/greenproof/internal/taxonomy"
)

func newLedger(t *testing.T) (*Ledger, *taxonomy.Taxonomy) {
	t.Helper()
	tax, err := taxonomy.New()
	require.NoError(t, err)
	return New(tax), tax
}

func acceptedVerdict(category model.ActionCategory) model.VerificationVerdict {
	return model.VerificationVerdict{
		Category:      category,
		Accepted:      true,
		MatchedLabels: []string{"bottle"},
		Classifications: []model.ClassificationResult{
			{Label: "bottle", Confidence: 0.82},
		},
		Rationale: "Verified as Recycle: matched bottle.",
	}
}

func rejectedVerdict(category model.ActionCategory) model.VerificationVerdict {
	return model.VerificationVerdict{
		Category:  category,
		Accepted:  false,
		Rationale: "Could not verify.",
	}
}

func TestApply_AcceptedAwardsCredits(t *testing.T) {
	l, tax := newLedger(t)

	balance, entry := l.Apply(acceptedVerdict(model.CategoryRecycle), model.CategoryRecycle)

	require.NotNil(t, entry)
	assert.Equal(t, 5, balance)
	assert.Equal(t, 5, entry.CreditsAwarded)
	assert.Equal(t, tax.Credits(model.CategoryRecycle), entry.CreditsAwarded)
	assert.Equal(t, model.CategoryRecycle, entry.Category)
	assert.NotZero(t, entry.ID)
	assert.False(t, entry.Timestamp.IsZero())
	assert.Equal(t, 5, l.Balance())
	assert.Len(t, l.Entries(), 1)
}

func TestApply_RejectedLeavesLedgerUnchanged(t *testing.T) {
	l, _ := newLedger(t)

	l.Apply(acceptedVerdict(model.CategoryPlantTree), model.CategoryPlantTree)
	balanceBefore := l.Balance()
	entriesBefore := len(l.Entries())

	balance, entry := l.Apply(rejectedVerdict(model.CategoryPlantTree), model.CategoryPlantTree)

	assert.Nil(t, entry)
	assert.Equal(t, balanceBefore, balance)
	assert.Equal(t, balanceBefore, l.Balance())
	assert.Len(t, l.Entries(), entriesBefore)
}

func TestApply_BalanceEqualsSumOfEntries(t *testing.T) {
	l, _ := newLedger(t)

	verdicts := []struct {
		category model.ActionCategory
		accepted bool
	}{
		{model.CategoryRecycle, true},
		{model.CategoryPlantTree, false},
		{model.CategoryCleanUp, true},
		{model.CategoryConserveWater, true},
		{model.CategoryReduceEnergy, false},
	}

	for _, v := range verdicts {
		if v.accepted {
			l.Apply(acceptedVerdict(v.category), v.category)
		} else {
			l.Apply(rejectedVerdict(v.category), v.category)
		}

		// Invariant holds after every transition.
		sum := 0
		for _, entry := range l.Entries() {
			assert.Positive(t, entry.CreditsAwarded)
			sum += entry.CreditsAwarded
		}
		assert.Equal(t, l.Balance(), sum)
	}

	assert.Equal(t, 5+15+10, l.Balance())
	assert.Len(t, l.Entries(), 3)
}

func TestApply_ConcurrentAppliesLoseNoUpdates(t *testing.T) {
	l, _ := newLedger(t)

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			l.Apply(acceptedVerdict(model.CategoryRecycle), model.CategoryRecycle)
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*5, l.Balance())
	assert.Len(t, l.Entries(), workers)
}

func TestNewWithHistory_SeedsBalance(t *testing.T) {
	tax, err := taxonomy.New()
	require.NoError(t, err)

	seed := New(tax)
	seed.Apply(acceptedVerdict(model.CategoryRecycle), model.CategoryRecycle)
	seed.Apply(acceptedVerdict(model.CategoryCleanUp), model.CategoryCleanUp)

	restored := NewWithHistory(tax, seed.Entries())

	assert.Equal(t, seed.Balance(), restored.Balance())
	assert.Equal(t, seed.Entries(), restored.Entries())
}

func TestBalance_NeverDecreases(t *testing.T) {
	l, _ := newLedger(t)

	previous := l.Balance()
	for i := 0; i < 10; i++ {
		category := model.Categories()[i%len(model.Categories())]
		if i%2 == 0 {
			l.Apply(acceptedVerdict(category), category)
		} else {
			l.Apply(rejectedVerdict(category), category)
		}
		assert.GreaterOrEqual(t, l.Balance(), previous)
		previous = l.Balance()
	}
}
