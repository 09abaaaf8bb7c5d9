package components

import (
	"errors"
	"strings"
	"testing"

	"github.com/tenrai/leitor/pkg/services"
)

func TestProgressTrackerUpdate(t *testing.T) {
	tracker := NewProgressTracker(40)

	if tracker.HasActive() {
		t.Error("new tracker has no active downloads")
	}

	tracker.Update(services.DownloadProgress{
		WorkID: 7, ChapterID: 101, ChapterNumber: 12,
		CurrentPage: 3, TotalPages: 10, Status: "downloading",
	})
	if !tracker.HasActive() {
		t.Error("expected active download")
	}

	view := tracker.View()
	if !strings.Contains(view, "Capítulo 12") {
		t.Error("view missing chapter label")
	}
	if !strings.Contains(view, "3/10") {
		t.Error("view missing page counter")
	}
}

func TestProgressTrackerRemovesCompleted(t *testing.T) {
	tracker := NewProgressTracker(40)
	tracker.Update(services.DownloadProgress{WorkID: 7, ChapterID: 101, Status: "downloading"})
	tracker.Update(services.DownloadProgress{WorkID: 7, ChapterID: 101, Status: "complete"})

	if tracker.HasActive() {
		t.Error("completed download should be removed")
	}
	if tracker.View() != "" {
		t.Error("empty tracker renders nothing")
	}
}

func TestProgressTrackerShowsErrors(t *testing.T) {
	tracker := NewProgressTracker(40)
	tracker.Update(services.DownloadProgress{
		WorkID: 7, ChapterID: 101, ChapterNumber: 3,
		Status: "error", Error: errors.New("rede fora"),
	})

	if !strings.Contains(tracker.View(), "rede fora") {
		t.Error("view missing error message")
	}
}

func TestRenderProgressBar(t *testing.T) {
	bar := renderProgressBar(5, 10, 10)
	if !strings.Contains(bar, "█████") {
		t.Error("expected half-filled bar")
	}
	if renderProgressBar(1, 0, 10) != "" {
		t.Error("zero total renders nothing")
	}
}
