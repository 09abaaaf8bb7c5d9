package integrations

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-epub"

	"github.com/tenrai/leitor/pkg/data"
	"github.com/tenrai/leitor/pkg/utils"
)

// ImageData is one page image flowing through the builder.
type ImageData struct {
	Content     []byte
	ContentType string
	Index       int
}

// CoverData is the work cover image.
type CoverData struct {
	Content     []byte
	ContentType string
}

// EPubBuilder assembles one chapter into an EPUB, page by page. Images
// stream in through Next and the file is written on Done.
type EPubBuilder struct {
	outputDir string
	processor *ImageProcessor

	book     *epub.Epub
	tempDir  string
	title    string
	fileName string
	html     strings.Builder
	pages    int
}

func NewEPubBuilder(outputDir string) *EPubBuilder {
	return &EPubBuilder{outputDir: outputDir}
}

// SetProcessor applies image optimization to every page before it is
// embedded.
func (b *EPubBuilder) SetProcessor(p *ImageProcessor) {
	b.processor = p
}

// Init starts a new book for the given chapter.
func (b *EPubBuilder) Init(work data.WorkSummary, chapter data.ChapterSummary) error {
	b.title = fmt.Sprintf("%s - %s", work.Name, chapter.DisplayName())

	book, err := epub.NewEpub(b.title)
	if err != nil {
		return fmt.Errorf("criar epub: %w", err)
	}
	book.SetLang("pt-br")

	tempDir, err := os.MkdirTemp("", "leitor-epub-*")
	if err != nil {
		return fmt.Errorf("criar diretório temporário: %w", err)
	}

	b.book = book
	b.tempDir = tempDir
	b.fileName = fmt.Sprintf("%s-capitulo-%s.epub", utils.Slugify(work.Name), data.FormatNumber(chapter.Number))
	b.html.Reset()
	b.html.WriteString(fmt.Sprintf("<h1>%s</h1>\n", b.title))
	b.pages = 0
	return nil
}

// SetCover embeds the work cover.
func (b *EPubBuilder) SetCover(cover CoverData) error {
	if b.book == nil {
		return fmt.Errorf("builder não inicializado")
	}
	path, err := b.writeTemp("cover", cover.Content, cover.ContentType)
	if err != nil {
		return err
	}
	internal, err := b.book.AddImage(path, "")
	if err != nil {
		return fmt.Errorf("adicionar capa: %w", err)
	}
	b.book.SetCover(internal, "")
	return nil
}

// Next appends the next page image.
func (b *EPubBuilder) Next(img ImageData) error {
	if b.book == nil {
		return fmt.Errorf("builder não inicializado")
	}
	content := img.Content
	if b.processor != nil {
		processed, err := b.processor.ProcessImageData(content)
		if err == nil {
			content = processed
		}
		// A page that fails processing embeds as-is.
	}
	path, err := b.writeTemp(fmt.Sprintf("page-%04d", img.Index), content, img.ContentType)
	if err != nil {
		return err
	}
	internal, err := b.book.AddImage(path, "")
	if err != nil {
		return fmt.Errorf("adicionar imagem: %w", err)
	}
	b.html.WriteString(fmt.Sprintf(
		`<div class="page"><img src="%s" alt="Página %d" style="width:100%%;height:auto;"/></div>%s`,
		internal, img.Index+1, "\n",
	))
	b.pages++
	return nil
}

// Done writes the EPUB and returns its path. The builder cannot be
// reused without another Init.
func (b *EPubBuilder) Done() (string, error) {
	if b.book == nil {
		return "", fmt.Errorf("builder não inicializado")
	}
	defer func() {
		os.RemoveAll(b.tempDir)
		b.book = nil
	}()

	if b.pages == 0 {
		return "", fmt.Errorf("nenhuma página adicionada")
	}
	if _, err := b.book.AddSection(b.html.String(), b.title, "", ""); err != nil {
		return "", fmt.Errorf("adicionar seção: %w", err)
	}
	if err := os.MkdirAll(b.outputDir, 0755); err != nil {
		return "", fmt.Errorf("criar diretório de saída: %w", err)
	}
	outputPath := filepath.Join(b.outputDir, b.fileName)
	if err := b.book.Write(outputPath); err != nil {
		return "", fmt.Errorf("gravar epub: %w", err)
	}
	return outputPath, nil
}

func (b *EPubBuilder) writeTemp(name string, content []byte, contentType string) (string, error) {
	path := filepath.Join(b.tempDir, name+extensionFor(contentType))
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("gravar imagem temporária: %w", err)
	}
	return path, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
