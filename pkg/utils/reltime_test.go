package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestRelativeShortBoundaries(t *testing.T) {
	assert.Equal(t, "agora", RelativeShort(now.Add(-59*time.Second), now))
	assert.Equal(t, "1min", RelativeShort(now.Add(-61*time.Second), now))
	assert.Equal(t, "59min", RelativeShort(now.Add(-59*time.Minute), now))
	assert.Equal(t, "1h", RelativeShort(now.Add(-61*time.Minute), now))
	assert.Equal(t, "23h", RelativeShort(now.Add(-23*time.Hour), now))
	assert.Equal(t, "1d", RelativeShort(now.Add(-25*time.Hour), now))
	assert.Equal(t, "8d", RelativeShort(now.Add(-8*24*time.Hour), now))
	assert.Equal(t, "29d", RelativeShort(now.Add(-29*24*time.Hour), now))
	assert.Equal(t, "16/05/2025", RelativeShort(now.Add(-30*24*time.Hour), now))
}

func TestRelativeLongBoundaries(t *testing.T) {
	assert.Equal(t, "agora", RelativeLong(now.Add(-30*time.Second), now))
	assert.Equal(t, "6d", RelativeLong(now.Add(-6*24*time.Hour), now))
	// the detail view switches to week buckets after 7 days
	assert.Equal(t, "1sem", RelativeLong(now.Add(-8*24*time.Hour), now))
	assert.Equal(t, "3sem", RelativeLong(now.Add(-27*24*time.Hour), now))
	assert.Equal(t, "1mês", RelativeLong(now.Add(-35*24*time.Hour), now))
	assert.Equal(t, "11mês", RelativeLong(now.Add(-350*24*time.Hour), now))
	assert.Equal(t, "16/06/2024", RelativeLong(now.Add(-364*24*time.Hour), now))
}

func TestViewsDisagreeOnEightDays(t *testing.T) {
	in := now.Add(-8 * 24 * time.Hour)
	assert.Equal(t, "8d", RelativeShort(in, now))
	assert.Equal(t, "1sem", RelativeLong(in, now))
}
