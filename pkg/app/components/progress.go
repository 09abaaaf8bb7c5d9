package components

import (
	"fmt"
	"strings"

	"github.com/tenrai/leitor/pkg/app/styles"
	"github.com/tenrai/leitor/pkg/data"
	"github.com/tenrai/leitor/pkg/services"
)

// ProgressTracker shows the chapters currently downloading for offline
// reading.
type ProgressTracker struct {
	downloads map[string]*services.DownloadProgress
	width     int
}

func NewProgressTracker(width int) *ProgressTracker {
	return &ProgressTracker{
		downloads: make(map[string]*services.DownloadProgress),
		width:     width,
	}
}

func (p *ProgressTracker) Update(progress services.DownloadProgress) {
	key := fmt.Sprintf("%d:%d", progress.WorkID, progress.ChapterID)
	if progress.Status == "complete" {
		delete(p.downloads, key)
		return
	}
	prog := progress
	p.downloads[key] = &prog
}

func (p *ProgressTracker) Clear() {
	p.downloads = make(map[string]*services.DownloadProgress)
}

func (p *ProgressTracker) HasActive() bool {
	return len(p.downloads) > 0
}

func (p *ProgressTracker) View() string {
	if len(p.downloads) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Downloads"))
	b.WriteString("\n\n")

	for _, progress := range p.downloads {
		b.WriteString(styles.TextStyle.Render(
			"Capítulo " + data.FormatNumber(progress.ChapterNumber)))
		b.WriteString("\n")

		statusText := progress.Status
		if progress.TotalPages > 0 {
			percentage := float64(progress.CurrentPage) / float64(progress.TotalPages) * 100
			statusText = fmt.Sprintf("%s (%d/%d páginas - %.0f%%)",
				progress.Status, progress.CurrentPage, progress.TotalPages, percentage)

			b.WriteString(renderProgressBar(progress.CurrentPage, progress.TotalPages, p.width-4))
			b.WriteString("\n")
		}
		b.WriteString(styles.StatusStyle(progress.Status).Render(statusText))
		b.WriteString("\n")

		if progress.Error != nil {
			b.WriteString(styles.StatusError.Render(fmt.Sprintf("Erro: %s", progress.Error)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

func renderProgressBar(current, total, width int) string {
	if total == 0 || width <= 0 {
		return ""
	}
	filled := int(float64(current) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return styles.ProgressBarStyle.Render(bar)
}
