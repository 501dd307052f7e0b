package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/soyleaf/soyleaf-api/internal/core/domain"
)

// ModelMetadata is the side-car published next to the ONNX artifact by the
// training/export pipeline. The target image size is a property of the model
// and is always read from here, never hard-coded.
type ModelMetadata struct {
	InputShape  []int64 `json:"input_shape"`
	OutputShape []int64 `json:"output_shape"`
	ImageSize   int     `json:"image_size"`
}

// Engine wraps a single ONNX runtime session. The session owns preallocated
// input/output tensors and is not reentrant, so Classify holds a mutex for
// the duration of a run: one inference slot, invisible to callers.
type Engine struct {
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
	meta         ModelMetadata
	timeout      time.Duration

	mu sync.Mutex
}

const defaultInferenceTimeout = 10 * time.Second

// NewEngine loads the model artifact and its metadata side-car and prepares a
// reusable session.
func NewEngine(modelPath, metadataPath string, timeout time.Duration) (*Engine, error) {
	if timeout <= 0 {
		timeout = defaultInferenceTimeout
	}

	raw, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("read model metadata: %w", err)
	}
	var meta ModelMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("parse model metadata: %w", err)
	}
	if meta.ImageSize <= 0 || len(meta.InputShape) == 0 || len(meta.OutputShape) == 0 {
		return nil, fmt.Errorf("model metadata incomplete: %+v", meta)
	}

	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("initialize onnx environment: %w", err)
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(meta.InputShape...))
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}
	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(meta.OutputShape...))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("create onnx session: %w", err)
	}

	return &Engine{
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
		meta:         meta,
		timeout:      timeout,
	}, nil
}

// ImageSize is the spatial edge length the model expects.
func (e *Engine) ImageSize() int {
	return e.meta.ImageSize
}

// ClassCount is the length of the model's probability output.
func (e *Engine) ClassCount() int {
	return int(e.meta.OutputShape[len(e.meta.OutputShape)-1])
}

// Classify runs one inference and returns a copy of the probability vector.
// The run is bounded by the engine timeout; the ONNX runtime has no
// cancellation API, so on timeout the caller gets an error while the run is
// left to finish on its own.
func (e *Engine) Classify(ctx context.Context, t *Tensor) ([]float32, error) {
	expected := len(e.inputTensor.GetData())
	if len(t.Data) != expected {
		return nil, fmt.Errorf("%w: tensor has %d values, model expects %d",
			domain.ErrInference, len(t.Data), expected)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var probs []float32
	done := make(chan error, 1)
	go func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		copy(e.inputTensor.GetData(), t.Data)
		if err := e.session.Run(); err != nil {
			done <- err
			return
		}
		probs = append([]float32(nil), e.outputTensor.GetData()...)
		done <- nil
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", domain.ErrInference, ctx.Err())
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInference, err)
		}
		return probs, nil
	}
}

// Close releases the session and its tensors.
func (e *Engine) Close() {
	if e.inputTensor != nil {
		e.inputTensor.Destroy()
	}
	if e.outputTensor != nil {
		e.outputTensor.Destroy()
	}
	if e.session != nil {
		e.session.Destroy()
	}
	ort.DestroyEnvironment()
}
