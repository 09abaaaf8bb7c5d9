package integrations

import (
	"bytes"
	"image"
	"testing"
)

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode processed image: %v", err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestProcessImageDownscales(t *testing.T) {
	processor := NewImageProcessor(ImageSettings{MaxWidth: 100, MaxHeight: 100, Quality: 85})

	out, err := processor.ProcessImageData(testPNG(t, 400, 200))
	if err != nil {
		t.Fatalf("ProcessImageData: %v", err)
	}
	w, h := decodeSize(t, out)
	if w != 100 || h != 50 {
		t.Errorf("expected 100x50, got %dx%d", w, h)
	}
}

func TestProcessImageKeepsSmallImages(t *testing.T) {
	processor := NewImageProcessor(ImageSettings{MaxWidth: 1000, MaxHeight: 1000, Quality: 85})

	out, err := processor.ProcessImageData(testPNG(t, 40, 60))
	if err != nil {
		t.Fatalf("ProcessImageData: %v", err)
	}
	w, h := decodeSize(t, out)
	if w != 40 || h != 60 {
		t.Errorf("image should not be upscaled, got %dx%d", w, h)
	}
}

func TestProcessImageGrayscale(t *testing.T) {
	processor := NewImageProcessor(ImageSettings{MaxWidth: 100, MaxHeight: 100, Grayscale: true, Quality: 85})

	out, err := processor.ProcessImageData(testPNG(t, 50, 50))
	if err != nil {
		t.Fatalf("ProcessImageData: %v", err)
	}
	img, format, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("grayscale output should be jpeg, got %q", format)
	}
	r, g, b, _ := img.At(10, 20).RGBA()
	if r != g || g != b {
		t.Errorf("pixel not gray: r=%d g=%d b=%d", r, g, b)
	}
}

func TestProcessImageRejectsGarbage(t *testing.T) {
	processor := NewImageProcessor(DefaultImageSettings())
	if _, err := processor.ProcessImageData([]byte("not an image")); err == nil {
		t.Error("expected error for invalid image data")
	}
}

func TestDefaultImageSettings(t *testing.T) {
	s := DefaultImageSettings()
	if s.MaxWidth <= 0 || s.MaxHeight <= 0 {
		t.Error("default bounds must be positive")
	}
	if !s.Grayscale {
		t.Error("default settings target e-ink, expected grayscale")
	}
}
