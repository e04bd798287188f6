// Package classifier wraps a pre-trained on-device image classification
// model. Given a decoded image it produces ranked (label, confidence) pairs;
// all resizing, cropping, and normalization is owned here.
package classifier

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"sync"
	"time"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/verdantlabs/greenproof/internal/common"
	"github.com/verdantlabs/greenproof/internal/model"
	"github.com/verdantlabs/greenproof/internal/service"
)

// ortEnv manages global ONNX Runtime initialization (process-wide singleton).
var ortEnv struct {
	once sync.Once
	err  error
}

// initORT initializes the ONNX Runtime environment. Safe to call multiple
// times; only the first call has any effect.
func initORT(libPath string) error {
	ortEnv.once.Do(func() {
		ort.SetSharedLibraryPath(libPath)
		ortEnv.err = ort.InitializeEnvironment()
	})
	return ortEnv.err
}

// Config holds configuration for the ONNX classifier.
type Config struct {
	// ModelPath points at an ImageNet-style classification model: a single
	// 4D float32 image input and a single [batch, classes] output.
	ModelPath string
	// LabelsPath points at the class label file, one label per line. A line
	// may hold comma-separated synonyms ("pop bottle, soda bottle").
	LabelsPath string
	// LibraryPath overrides the ONNX Runtime shared library location. When
	// empty, libonnxruntime.so next to the model is used.
	LibraryPath string
	// Retry bounds re-attempts for transient inference errors.
	Retry service.RetryOptions
}

// ONNXClassifier runs a fixed, pre-trained general-purpose image classifier.
// The session is loaded once and is read-only afterwards, so a single
// instance may serve concurrent Classify calls.
type ONNXClassifier struct {
	session    *ort.DynamicAdvancedSession
	labels     []string
	inputName  string
	outputName string
	height     int
	width      int
	retryOpts  service.RetryOptions
}

// NewONNXClassifier loads the model artifact and label file and creates the
// inference session. Any failure here means the verification subsystem
// cannot operate at all; errors wrap common.ErrModelUnavailable.
func NewONNXClassifier(cfg Config) (*ONNXClassifier, error) {
	labels, err := loadLabels(cfg.LabelsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrModelUnavailable, err)
	}

	libPath := cfg.LibraryPath
	if libPath == "" {
		libPath = filepath.Join(filepath.Dir(cfg.ModelPath), "libonnxruntime.so")
	}
	if err := initORT(libPath); err != nil {
		return nil, fmt.Errorf("%w: failed to initialize runtime: %v", common.ErrModelUnavailable, err)
	}

	// Inspect the model to discover tensor names and shapes.
	inputs, outputs, err := ort.GetInputOutputInfo(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read model info: %v", common.ErrModelUnavailable, err)
	}
	if len(inputs) != 1 {
		return nil, fmt.Errorf("%w: expected a single image input, model has %d", common.ErrModelUnavailable, len(inputs))
	}
	if len(outputs) != 1 {
		return nil, fmt.Errorf("%w: expected a single logits output, model has %d", common.ErrModelUnavailable, len(outputs))
	}

	inDims := inputs[0].Dimensions
	if len(inDims) != 4 {
		return nil, fmt.Errorf("%w: expected NCHW image input, got shape %v", common.ErrModelUnavailable, inDims)
	}
	height, width := int(inDims[2]), int(inDims[3])
	if height <= 0 {
		height = defaultInputSize
	}
	if width <= 0 {
		width = defaultInputSize
	}

	outDims := outputs[0].Dimensions
	if len(outDims) == 0 {
		return nil, fmt.Errorf("%w: model output has no dimensions", common.ErrModelUnavailable)
	}
	classes := int(outDims[len(outDims)-1])
	if classes > 0 && classes != len(labels) {
		return nil, fmt.Errorf("%w: model has %d classes but label file has %d entries",
			common.ErrModelUnavailable, classes, len(labels))
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create session options: %v", common.ErrModelUnavailable, err)
	}
	defer opts.Destroy()
	opts.SetIntraOpNumThreads(4)
	opts.SetInterOpNumThreads(1)

	session, err := ort.NewDynamicAdvancedSession(
		cfg.ModelPath,
		[]string{inputs[0].Name},
		[]string{outputs[0].Name},
		opts,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create session: %v", common.ErrModelUnavailable, err)
	}

	retryOpts := cfg.Retry
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 2
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = 50 * time.Millisecond
	}

	return &ONNXClassifier{
		session:    session,
		labels:     labels,
		inputName:  inputs[0].Name,
		outputName: outputs[0].Name,
		height:     height,
		width:      width,
		retryOpts:  retryOpts,
	}, nil
}

// Classify runs one inference pass over the image and returns ranked results:
// sorted by descending confidence, at most maxResults entries, confidences
// below the noise floor dropped. An empty slice is a valid "nothing
// recognizable" outcome, not an error. Per-call failures wrap
// common.ErrInferenceFailed after bounded retry.
func (c *ONNXClassifier) Classify(ctx context.Context, img image.Image) ([]model.ClassificationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tensorData := pixelsToTensor(img, c.height, c.width)

	var logits []float32
	err := common.WithRetry(ctx, func() error {
		out, inferErr := c.infer(tensorData)
		if inferErr != nil {
			return &common.RetryableError{Err: inferErr, Retryable: true}
		}
		logits = out
		return nil
	}, c.retryOpts)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInferenceFailed, err)
	}

	probs := softmax(logits)
	return filterResults(rank(probs, c.labels)), nil
}

// infer runs a single inference call and returns the raw logits.
func (c *ONNXClassifier) infer(tensorData []float32) ([]float32, error) {
	inShape := ort.NewShape(1, 3, int64(c.height), int64(c.width))
	tIn, err := ort.NewTensor(inShape, tensorData)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create input tensor: %w", err)
	}
	defer tIn.Destroy()

	outShape := ort.NewShape(1, int64(len(c.labels)))
	tOut, err := ort.NewEmptyTensor[float32](outShape)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create output tensor: %w", err)
	}
	defer tOut.Destroy()

	if err := c.session.Run([]ort.Value{tIn}, []ort.Value{tOut}); err != nil {
		return nil, fmt.Errorf("onnx: inference failed: %w", err)
	}

	// Copy data out before the tensor is destroyed.
	src := tOut.GetData()
	logits := make([]float32, len(src))
	copy(logits, src)
	return logits, nil
}

// Close releases the ONNX session resources.
func (c *ONNXClassifier) Close() error {
	return c.session.Destroy()
}
