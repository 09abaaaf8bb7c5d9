package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tenrai/leitor/pkg/data"
	"github.com/tenrai/leitor/pkg/integrations"
	"github.com/tenrai/leitor/pkg/sources"
	"github.com/tenrai/leitor/pkg/utils"
)

// DownloadProgress is one step of an offline download.
type DownloadProgress struct {
	WorkID        int
	ChapterID     int
	ChapterNumber float64
	CurrentPage   int
	TotalPages    int
	Status        string // "downloading", "processing", "complete", "error"
	Error         error
	FilePath      string
}

// Downloader saves chapters as EPUB files for offline reading. Page
// fetches are rate limited and chapters download a few at a time.
type Downloader struct {
	source       sources.Source
	resolver     *utils.Resolver
	downloadDir  string
	client       *resty.Client
	rateLimiter  *time.Ticker
	progressChan chan DownloadProgress

	closeOnce sync.Once
}

func NewDownloader(source sources.Source, resolver *utils.Resolver, downloadDir string) *Downloader {
	return &Downloader{
		source:       source,
		resolver:     resolver,
		downloadDir:  downloadDir,
		client:       resty.New().SetTimeout(60 * time.Second),
		rateLimiter:  time.NewTicker(500 * time.Millisecond), // 2 req/sec
		progressChan: make(chan DownloadProgress, 100),
	}
}

// Progress returns the channel with download progress updates.
func (d *Downloader) Progress() <-chan DownloadProgress {
	return d.progressChan
}

// DownloadWork downloads every listed chapter of a work, a few
// concurrently. Individual chapter failures are reported on the
// progress channel and do not stop the rest.
func (d *Downloader) DownloadWork(ctx context.Context, work data.WorkSummary, chapters []data.ChapterSummary) error {
	if len(chapters) == 0 {
		return fmt.Errorf("obra %q sem capítulos", work.Name)
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, 3)
	errorChan := make(chan error, len(chapters))

	for _, chapter := range chapters {
		wg.Add(1)
		go func(chapter data.ChapterSummary) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if _, err := d.DownloadChapter(ctx, work, chapter); err != nil {
				errorChan <- fmt.Errorf("capítulo %s: %w", data.FormatNumber(chapter.Number), err)
				d.sendProgress(DownloadProgress{
					WorkID:        work.ID,
					ChapterID:     chapter.ID,
					ChapterNumber: chapter.Number,
					Status:        "error",
					Error:         err,
				})
			}
		}(chapter)
	}

	wg.Wait()
	close(errorChan)

	var failed int
	for range errorChan {
		failed++
	}
	if failed > 0 {
		return fmt.Errorf("%d de %d capítulos falharam", failed, len(chapters))
	}
	return nil
}

// DownloadChapter fetches one chapter's pages and assembles the EPUB.
// It returns the written file path.
func (d *Downloader) DownloadChapter(ctx context.Context, work data.WorkSummary, summary data.ChapterSummary) (string, error) {
	<-d.rateLimiter.C

	d.sendProgress(DownloadProgress{
		WorkID:        work.ID,
		ChapterID:     summary.ID,
		ChapterNumber: summary.Number,
		Status:        "downloading",
	})

	chapter, err := d.source.Chapter(ctx, summary.ID)
	if err != nil {
		return "", fmt.Errorf("carregar capítulo: %w", err)
	}
	if len(chapter.Pages) == 0 {
		return "", fmt.Errorf("capítulo sem páginas")
	}

	builder := integrations.NewEPubBuilder(d.downloadDir)
	if err := builder.Init(work, summary); err != nil {
		return "", fmt.Errorf("iniciar epub: %w", err)
	}

	if cover := d.resolver.WorkImage(work.Image, work.ID); cover != "" {
		if coverData, err := d.fetchImage(ctx, cover, 0); err == nil {
			builder.SetCover(integrations.CoverData{Content: coverData.Content, ContentType: coverData.ContentType})
		}
		// Cover failure is not fatal.
		<-d.rateLimiter.C
	}

	total := len(chapter.Pages)
	for i, page := range chapter.Pages {
		d.sendProgress(DownloadProgress{
			WorkID:        work.ID,
			ChapterID:     summary.ID,
			ChapterNumber: summary.Number,
			CurrentPage:   i + 1,
			TotalPages:    total,
			Status:        "downloading",
		})

		img, err := d.fetchImage(ctx, d.resolver.PageImage(page.Path), i)
		if err != nil {
			return "", fmt.Errorf("baixar página %d: %w", i+1, err)
		}
		if err := builder.Next(img); err != nil {
			return "", fmt.Errorf("adicionar página %d: %w", i+1, err)
		}

		<-d.rateLimiter.C
	}

	d.sendProgress(DownloadProgress{
		WorkID:        work.ID,
		ChapterID:     summary.ID,
		ChapterNumber: summary.Number,
		TotalPages:    total,
		Status:        "processing",
	})

	path, err := builder.Done()
	if err != nil {
		return "", fmt.Errorf("finalizar epub: %w", err)
	}

	d.sendProgress(DownloadProgress{
		WorkID:        work.ID,
		ChapterID:     summary.ID,
		ChapterNumber: summary.Number,
		TotalPages:    total,
		Status:        "complete",
		FilePath:      path,
	})
	return path, nil
}

func (d *Downloader) fetchImage(ctx context.Context, url string, index int) (integrations.ImageData, error) {
	resp, err := d.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return integrations.ImageData{}, fmt.Errorf("buscar imagem: %w", err)
	}
	if resp.IsError() {
		return integrations.ImageData{}, fmt.Errorf("imagem: %s", resp.Status())
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return integrations.ImageData{
		Content:     resp.Body(),
		ContentType: contentType,
		Index:       index,
	}, nil
}

// sendProgress is non-blocking; a full channel drops the update.
func (d *Downloader) sendProgress(progress DownloadProgress) {
	select {
	case d.progressChan <- progress:
	default:
	}
}

func (d *Downloader) Close() {
	d.closeOnce.Do(func() {
		d.rateLimiter.Stop()
		close(d.progressChan)
	})
}
