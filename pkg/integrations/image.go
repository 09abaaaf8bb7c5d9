package integrations

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ImageSettings controls page optimization for e-reader output.
type ImageSettings struct {
	MaxWidth  int
	MaxHeight int
	Grayscale bool
	Quality   int // JPEG quality, 1-100
}

// DefaultImageSettings targets common e-ink readers.
func DefaultImageSettings() ImageSettings {
	return ImageSettings{
		MaxWidth:  1264,
		MaxHeight: 1680,
		Grayscale: true,
		Quality:   85,
	}
}

// ImageProcessor downsizes and re-encodes page images so chapter files
// stay small on device.
type ImageProcessor struct {
	settings ImageSettings
}

func NewImageProcessor(settings ImageSettings) *ImageProcessor {
	return &ImageProcessor{settings: settings}
}

// ProcessImage fits the image inside the configured bounds, keeping the
// aspect ratio, and re-encodes it.
func (p *ImageProcessor) ProcessImage(input io.Reader) ([]byte, error) {
	img, _, err := image.Decode(input)
	if err != nil {
		return nil, fmt.Errorf("decodificar imagem: %w", err)
	}

	bounds := img.Bounds()
	newWidth, newHeight := p.fit(bounds.Dx(), bounds.Dy())

	var processed image.Image = img
	if newWidth != bounds.Dx() || newHeight != bounds.Dy() {
		processed = resize(img, newWidth, newHeight)
	}
	if p.settings.Grayscale {
		processed = toGrayscale(processed)
	}

	return p.encode(processed)
}

// ProcessImageData is ProcessImage over a byte slice.
func (p *ImageProcessor) ProcessImageData(data []byte) ([]byte, error) {
	return p.ProcessImage(bytes.NewReader(data))
}

// fit scales the dimensions down to the configured bounds, never up.
func (p *ImageProcessor) fit(width, height int) (int, int) {
	if width <= p.settings.MaxWidth && height <= p.settings.MaxHeight {
		return width, height
	}
	widthScale := float64(p.settings.MaxWidth) / float64(width)
	heightScale := float64(p.settings.MaxHeight) / float64(height)
	scale := widthScale
	if heightScale < widthScale {
		scale = heightScale
	}
	return int(float64(width) * scale), int(float64(height) * scale)
}

func resize(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

func toGrayscale(img image.Image) image.Image {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, img.At(x, y))
		}
	}
	return gray
}

func (p *ImageProcessor) encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if p.settings.Grayscale {
		quality := p.settings.Quality
		if quality <= 0 {
			quality = 85
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("codificar jpeg: %w", err)
		}
		return buf.Bytes(), nil
	}
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("codificar png: %w", err)
	}
	return buf.Bytes(), nil
}
