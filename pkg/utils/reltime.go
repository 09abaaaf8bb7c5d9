package utils

import (
	"fmt"
	"time"
)

// RelativeShort formats a past timestamp the way the updates list shows
// chapter ages: agora / Nmin / Nh / Nd up to 30 days, then an absolute
// pt-BR date.
func RelativeShort(t, now time.Time) string {
	diff := now.Sub(t)
	mins := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))

	switch {
	case mins < 1:
		return "agora"
	case mins < 60:
		return fmt.Sprintf("%dmin", mins)
	case hours < 24:
		return fmt.Sprintf("%dh", hours)
	case days < 30:
		return fmt.Sprintf("%dd", days)
	default:
		return absoluteDate(t)
	}
}

// RelativeLong is the work-detail variant: days only up to a week, then
// week and month buckets before falling back to an absolute date. The two
// views intentionally disagree on the day threshold.
func RelativeLong(t, now time.Time) string {
	diff := now.Sub(t)
	mins := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))
	weeks := days / 7
	months := days / 30

	switch {
	case mins < 1:
		return "agora"
	case mins < 60:
		return fmt.Sprintf("%dmin", mins)
	case hours < 24:
		return fmt.Sprintf("%dh", hours)
	case days < 7:
		return fmt.Sprintf("%dd", days)
	case weeks < 4:
		return fmt.Sprintf("%dsem", weeks)
	case months < 12:
		return fmt.Sprintf("%dmês", months)
	default:
		return absoluteDate(t)
	}
}

func absoluteDate(t time.Time) string {
	return t.Format("02/01/2006")
}
