// Package classifier implements the inference pipeline: class registry,
// image preprocessing, the ONNX engine wrapper, and probability decoding.
package classifier

// Channels is fixed at 3: the model consumes RGB regardless of the uploaded
// image's colour space.
const Channels = 3

// Tensor is a preprocessed image ready for inference: float32 values in
// [0,1], NHWC layout, implicit leading batch dimension of 1.
type Tensor struct {
	Data   []float32
	Width  int
	Height int
}

// NewTensor allocates a zeroed tensor for a size×size RGB image.
func NewTensor(size int) *Tensor {
	return &Tensor{
		Data:   make([]float32, size*size*Channels),
		Width:  size,
		Height: size,
	}
}
