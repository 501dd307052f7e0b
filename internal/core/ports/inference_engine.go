package ports

import (
	"context"

	"github.com/soyleaf/soyleaf-api/internal/classifier"
)

// InferenceEngine is the trained model as seen by the core: a fixed-size RGB
// tensor in, a class-probability vector out. Implementations must be safe for
// concurrent callers; if the underlying runtime is not reentrant they
// serialize internally.
type InferenceEngine interface {
	Classify(ctx context.Context, t *classifier.Tensor) ([]float32, error)
	// ClassCount is the length of the probability vector.
	ClassCount() int
	// ImageSize is the spatial edge length (pixels) the model was trained on.
	ImageSize() int
}
