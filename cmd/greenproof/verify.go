package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/verdantlabs/greenproof/internal/cli"
	"github.com/verdantlabs/greenproof/internal/engine"
	"github.com/verdantlabs/greenproof/internal/model"
)

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [image]",
		Short: "Verify a photo of an eco action and earn credits",
		Long: `Run one verification attempt: classify the photo with the on-device model,
match the labels against the claimed action's keywords, and apply the verdict
to the credit ledger.

With --dir, every image in the directory is verified as an independent
attempt against the same category.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runVerify,
	}

	cmd.Flags().StringP("category", "c", "", "claimed action category (recycle, plant_tree, clean_up, reduce_energy, conserve_water)")
	cmd.Flags().String("dir", "", "verify every image in this directory")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	categoryFlag, _ := cmd.Flags().GetString("category")
	category, err := model.ParseCategory(categoryFlag)
	if err != nil {
		return err
	}

	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" && len(args) == 0 {
		return errors.New("provide an image path or --dir")
	}

	eng, cleanup, err := buildEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if dir != "" {
		return verifyDirectory(ctx, eng, dir, category)
	}
	return verifyOne(ctx, eng, args[0], category)
}

func verifyOne(ctx context.Context, eng *engine.VerificationEngine, path string, category model.ActionCategory) error {
	img, err := loadImage(path)
	if err != nil {
		return err
	}

	result, err := eng.Verify(ctx, img, category)
	if err != nil {
		return err
	}

	renderResult(result)
	return nil
}

// verifyDirectory runs each image in dir as an independent verification
// attempt. Ledger applies stay serialized inside the engine.
func verifyDirectory(ctx context.Context, eng *engine.VerificationEngine, dir string, category model.ActionCategory) error {
	paths, err := imagePaths(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Println(cli.InfoStyle.Render("No images found in " + dir))
		return nil
	}

	bar := progressbar.Default(int64(len(paths)), "verifying")

	accepted := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		img, loadErr := loadImage(path)
		if loadErr != nil {
			fmt.Println(cli.ErrorStyle.Render(loadErr.Error()))
			_ = bar.Add(1)
			continue
		}

		result, verifyErr := eng.Verify(ctx, img, category)
		if verifyErr != nil {
			return verifyErr
		}
		if result.Verdict.Accepted {
			accepted++
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	fmt.Printf("\n%s\n", cli.TitleStyle.Render("Batch complete"))
	fmt.Printf("Verified: %s  Rejected: %s\n",
		cli.SuccessStyle.Render(fmt.Sprintf("%d", accepted)),
		cli.WarningStyle.Render(fmt.Sprintf("%d", len(paths)-accepted)))
	fmt.Printf("Balance: %s credits\n", cli.BoldStyle.Render(fmt.Sprintf("%d", eng.Balance())))
	return nil
}

func imagePaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg", ".jpeg", ".png", ".gif":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}

func renderResult(result *engine.VerificationResult) {
	if result.Verdict.Accepted {
		fmt.Println(cli.SuccessStyle.Render("✓ Verified"))
		fmt.Println(result.Verdict.Rationale)
		fmt.Printf("Earned %s credits. Balance: %s\n",
			cli.BoldStyle.Render(fmt.Sprintf("%d", result.Entry.CreditsAwarded)),
			cli.BoldStyle.Render(fmt.Sprintf("%d", result.Balance)))
		return
	}

	fmt.Println(cli.WarningStyle.Render("✗ Not verified"))
	fmt.Println(result.Verdict.Rationale)
	fmt.Printf("Balance unchanged: %s\n", cli.SubtleStyle.Render(fmt.Sprintf("%d", result.Balance)))
}
