package ports

import (
	"context"
	"io"
)

// ClassifyInput is one authenticated upload-and-classify request.
type ClassifyInput struct {
	Username string
	Filename string
	File     io.Reader
}

// ClassifyResult is what the user sees after a successful classification.
// Confidence is rounded to the deployment's display precision; the persisted
// report keeps the record precision. Warning is set when the result was
// computed but the report write failed.
type ClassifyResult struct {
	Prediction string
	Confidence float64
	Image      string
	Warning    string
}

type ClassifyService interface {
	Classify(ctx context.Context, in ClassifyInput) (*ClassifyResult, error)
}
