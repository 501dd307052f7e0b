package domain

import "errors"

// UnknownLabel is returned when the model's arg-max index has no matching
// registry entry, including the empty-registry case.
const UnknownLabel = "Unknown"

var ErrEmptyUpload = errors.New("no image file provided")
var ErrImageDecode = errors.New("image could not be decoded")
var ErrInference = errors.New("inference failed")
var ErrEngineUnavailable = errors.New("inference engine unavailable")
