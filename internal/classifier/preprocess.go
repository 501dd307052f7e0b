package classifier

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/nfnt/resize"

	"github.com/soyleaf/soyleaf-api/internal/core/domain"
)

// Preprocess decodes an uploaded image and normalises it to the model's input
// contract: size×size, forced RGB, intensities scaled from [0,255] to [0,1],
// NHWC layout with a batch dimension of 1. Corrupt or unsupported data
// surfaces domain.ErrImageDecode.
func Preprocess(r io.Reader, size int) (*Tensor, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImageDecode, err)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: invalid target size %d", domain.ErrImageDecode, size)
	}

	resized := resize.Resize(uint(size), uint(size), img, resize.Lanczos3)

	t := NewTensor(size)
	bounds := resized.Bounds()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			// RGBA() drops alpha and expands grayscale, giving 16-bit
			// channels in [0,65535].
			cr, cg, cb, _ := resized.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			base := (y*size + x) * Channels
			t.Data[base] = float32(cr) / 65535.0
			t.Data[base+1] = float32(cg) / 65535.0
			t.Data[base+2] = float32(cb) / 65535.0
		}
	}

	return t, nil
}
