package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvasFormats(t *testing.T) {
	assert.Len(t, CanvasFormats, 8)

	ppt, ok := CanvasFormats["ppt169"]
	require.True(t, ok)
	assert.Equal(t, 1280, ppt.Width)
	assert.Equal(t, 720, ppt.Height)
	assert.Equal(t, "0 0 1280 720", ppt.ViewBox())
	assert.Equal(t, "16:9", ppt.AspectRatio)
}

func TestNormalizeCanvasFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"xhs", "xiaohongshu"},
		{"wechat_moment", "moments"},
		{"wechat-moment", "moments"},
		{"  PPT169  ", "ppt169"},
		{"  WeChat_Moment ", "moments"},
		{"", ""},
		{"   ", ""},
		{"custom-format", "custom-format"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCanvasFormat(tt.in))
		})
	}
}

func TestParseProjectName(t *testing.T) {
	tests := []struct {
		name    string
		dir     string
		want    string
		format  string
		date    string
		dateFmt string
	}{
		{"standard", "demo_ppt169_20260210", "demo", "ppt169", "20260210", "2026-02-10"},
		{"keeps case", "Quarterly_Review_PPT43_20251231", "Quarterly_Review", "ppt43", "20251231", "2025-12-31"},
		{"alias format", "launch_xhs_20260101", "launch", "xiaohongshu", "20260101", "2026-01-01"},
		{"format without date", "poster_banner", "poster", "banner", UnknownDate, ""},
		{"unknown format", "notes_custom_20260210", "notes_custom", UnknownFormat, "20260210", "2026-02-10"},
		{"invalid date", "demo_a4_20261340", "demo", "a4", "20261340", ""},
		{"plain name", "scratch", "scratch", UnknownFormat, UnknownDate, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseProjectName(tt.dir)
			assert.Equal(t, tt.want, got.Name)
			assert.Equal(t, tt.format, got.Format)
			assert.Equal(t, tt.date, got.Date)
			assert.Equal(t, tt.dateFmt, got.DateFormatted)
		})
	}
}

func TestProjectInfo_Canvas(t *testing.T) {
	info := ProjectInfo{Name: ProjectName{Format: "story"}}
	f, ok := info.Canvas()
	require.True(t, ok)
	assert.Equal(t, 1920, f.Height)

	_, ok = ProjectInfo{Name: ProjectName{Format: UnknownFormat}}.Canvas()
	assert.False(t, ok)
}
