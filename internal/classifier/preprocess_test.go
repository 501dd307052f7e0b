package classifier

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/soyleaf/soyleaf-api/internal/core/domain"
)

func encodePNG(t *testing.T, img image.Image) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return &buf
}

func TestPreprocess_TensorContract(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 13), B: 200, A: 255})
		}
	}

	const size = 8
	tensor, err := Preprocess(encodePNG(t, img), size)
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}

	if tensor.Width != size || tensor.Height != size {
		t.Fatalf("expected %dx%d tensor, got %dx%d", size, size, tensor.Width, tensor.Height)
	}
	if len(tensor.Data) != size*size*Channels {
		t.Fatalf("expected %d values, got %d", size*size*Channels, len(tensor.Data))
	}
	for i, v := range tensor.Data {
		if v < 0 || v > 1 {
			t.Fatalf("value %d = %v outside [0,1]", i, v)
		}
	}
}

func TestPreprocess_WhiteImageNormalisesToOne(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.White)
		}
	}

	tensor, err := Preprocess(encodePNG(t, img), 4)
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	for i, v := range tensor.Data {
		if v < 0.999 {
			t.Fatalf("value %d = %v, expected ~1 for a white image", i, v)
		}
	}
}

func TestPreprocess_GrayscaleForcedToRGB(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetGray(x, y, color.Gray{Y: 128})
		}
	}

	tensor, err := Preprocess(encodePNG(t, img), 4)
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if len(tensor.Data) != 4*4*Channels {
		t.Fatalf("grayscale input must still yield 3 channels, got %d values", len(tensor.Data))
	}
	// All three channels carry the same gray value.
	if tensor.Data[0] != tensor.Data[1] || tensor.Data[1] != tensor.Data[2] {
		t.Fatalf("expected equal RGB channels, got %v %v %v", tensor.Data[0], tensor.Data[1], tensor.Data[2])
	}
}

func TestPreprocess_CorruptData(t *testing.T) {
	_, err := Preprocess(strings.NewReader("definitely not an image"), 4)
	if !errors.Is(err, domain.ErrImageDecode) {
		t.Fatalf("expected ErrImageDecode, got %v", err)
	}
}

func TestPreprocess_TruncatedPNG(t *testing.T) {
	buf := encodePNG(t, image.NewRGBA(image.Rect(0, 0, 16, 16)))
	truncated := buf.Bytes()[:8] // magic bytes only

	_, err := Preprocess(bytes.NewReader(truncated), 4)
	if !errors.Is(err, domain.ErrImageDecode) {
		t.Fatalf("expected ErrImageDecode, got %v", err)
	}
}
