package integrations

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"testing"

	"github.com/tenrai/leitor/pkg/data"
)

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 0, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestEPubBuilder(t *testing.T) {
	dir := t.TempDir()
	builder := NewEPubBuilder(dir)

	work := data.WorkSummary{ID: 7, Name: "A Torre Azul"}
	chapter := data.ChapterSummary{ID: 101, Number: 12.5}

	if err := builder.Init(work, chapter); err != nil {
		t.Fatalf("Init: %v", err)
	}

	pageData := testPNG(t, 4, 4)
	for i := 0; i < 3; i++ {
		err := builder.Next(ImageData{Content: pageData, ContentType: "image/png", Index: i})
		if err != nil {
			t.Fatalf("Next(%d): %v", i, err)
		}
	}

	path, err := builder.Done()
	if err != nil {
		t.Fatalf("Done: %v", err)
	}
	if !strings.HasSuffix(path, "a-torre-azul-capitulo-12.5.epub") {
		t.Errorf("unexpected output path %q", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("epub file is empty")
	}
}

func TestEPubBuilderWithCover(t *testing.T) {
	builder := NewEPubBuilder(t.TempDir())
	if err := builder.Init(data.WorkSummary{ID: 1, Name: "Obra"}, data.ChapterSummary{ID: 1, Number: 1}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := builder.SetCover(CoverData{Content: testPNG(t, 4, 4), ContentType: "image/png"}); err != nil {
		t.Fatalf("SetCover: %v", err)
	}
	if err := builder.Next(ImageData{Content: testPNG(t, 4, 4), ContentType: "image/png"}); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if _, err := builder.Done(); err != nil {
		t.Fatalf("Done: %v", err)
	}
}

func TestEPubBuilderNoPages(t *testing.T) {
	builder := NewEPubBuilder(t.TempDir())
	if err := builder.Init(data.WorkSummary{ID: 1, Name: "Obra"}, data.ChapterSummary{ID: 1, Number: 1}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := builder.Done(); err == nil {
		t.Error("Done() should fail with no pages")
	}
}

func TestEPubBuilderRequiresInit(t *testing.T) {
	builder := NewEPubBuilder(t.TempDir())
	if err := builder.Next(ImageData{Content: []byte("x")}); err == nil {
		t.Error("Next() before Init should fail")
	}
	if _, err := builder.Done(); err == nil {
		t.Error("Done() before Init should fail")
	}
}

func TestEPubBuilderNamedChapter(t *testing.T) {
	builder := NewEPubBuilder(t.TempDir())
	work := data.WorkSummary{ID: 2, Name: "Coração de Ferro"}
	chapter := data.ChapterSummary{ID: 5, Number: 3, Name: "O Retorno"}

	if err := builder.Init(work, chapter); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := builder.Next(ImageData{Content: testPNG(t, 4, 4), ContentType: "image/png"}); err != nil {
		t.Fatalf("Next: %v", err)
	}
	path, err := builder.Done()
	if err != nil {
		t.Fatalf("Done: %v", err)
	}
	if !strings.Contains(path, "coracao-de-ferro") {
		t.Errorf("expected slugged work name in %q", path)
	}
}
