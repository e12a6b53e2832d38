package domain

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SlideDirName is the project sub-directory holding rendered slides.
const SlideDirName = "svg_output"

// Placeholders used when a project directory name cannot be parsed.
const (
	UnknownFormat = "unknown"
	UnknownDate   = "unknown"
)

// CanvasFormat describes a slide canvas size.
type CanvasFormat struct {
	Key         string
	Name        string
	Width       int
	Height      int
	AspectRatio string
	Category    string
}

// ViewBox returns the SVG viewBox for the canvas.
func (f CanvasFormat) ViewBox() string {
	return "0 0 " + strconv.Itoa(f.Width) + " " + strconv.Itoa(f.Height)
}

// CanvasFormats lists the supported canvas formats by key.
var CanvasFormats = map[string]CanvasFormat{
	"ppt169":      {Key: "ppt169", Name: "PPT 16:9", Width: 1280, Height: 720, AspectRatio: "16:9", Category: "presentation"},
	"ppt43":       {Key: "ppt43", Name: "PPT 4:3", Width: 1024, Height: 768, AspectRatio: "4:3", Category: "presentation"},
	"wechat":      {Key: "wechat", Name: "WeChat header", Width: 900, Height: 383, AspectRatio: "2.35:1", Category: "marketing"},
	"xiaohongshu": {Key: "xiaohongshu", Name: "Xiaohongshu", Width: 1242, Height: 1660, AspectRatio: "3:4", Category: "social"},
	"moments":     {Key: "moments", Name: "Moments/Instagram", Width: 1080, Height: 1080, AspectRatio: "1:1", Category: "social"},
	"story":       {Key: "story", Name: "Story", Width: 1080, Height: 1920, AspectRatio: "9:16", Category: "social"},
	"banner":      {Key: "banner", Name: "Banner", Width: 1920, Height: 1080, AspectRatio: "16:9", Category: "marketing"},
	"a4":          {Key: "a4", Name: "A4 print", Width: 1240, Height: 1754, AspectRatio: "1:1.414", Category: "document"},
}

var canvasFormatAliases = map[string]string{
	"xhs":           "xiaohongshu",
	"wechat_moment": "moments",
	"wechat-moment": "moments",
}

// NormalizeCanvasFormat lower-cases a format key and resolves aliases.
func NormalizeCanvasFormat(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "" {
		return ""
	}
	if alias, ok := canvasFormatAliases[k]; ok {
		return alias
	}
	return k
}

// ProjectName is the result of parsing a project directory name.
type ProjectName struct {
	Name   string
	Format string
	Date   string

	// DateFormatted is Date as YYYY-MM-DD, or empty when Date is not a valid day.
	DateFormatted string
}

var (
	projectDateRe = regexp.MustCompile(`_(\d{8})$`)
	projectFullRe = regexp.MustCompile(`(?i)^(.+)_([a-z0-9_-]+)_(\d{8})$`)
)

// ParseProjectName splits a directory name of the form name_format_YYYYMMDD.
// Missing parts are reported as UnknownFormat / UnknownDate.
func ParseProjectName(dirName string) ProjectName {
	result := ProjectName{Name: dirName, Format: UnknownFormat, Date: UnknownDate}

	if m := projectDateRe.FindStringSubmatch(dirName); m != nil {
		result.Date = m[1]
		if d, err := time.Parse("20060102", m[1]); err == nil {
			result.DateFormatted = d.Format("2006-01-02")
		}
	}

	if m := projectFullRe.FindStringSubmatch(dirName); m != nil {
		format := NormalizeCanvasFormat(m[2])
		if _, ok := CanvasFormats[format]; ok {
			result.Format = format
			result.Name = m[1]
			return result
		}
	}

	// Fall back to a trailing _format suffix, longest keys first so that
	// "ppt169" is not shadowed by a shorter key.
	lower := strings.ToLower(dirName)
	trimmed := projectDateRe.ReplaceAllString(lower, "")
	for _, key := range sortedFormatKeys() {
		if strings.HasSuffix(trimmed, "_"+key) {
			result.Format = key
			break
		}
	}

	name := projectDateRe.ReplaceAllString(dirName, "")
	if result.Format != UnknownFormat {
		name = name[:len(name)-len(result.Format)-1]
	}
	result.Name = name
	return result
}

func sortedFormatKeys() []string {
	keys := make([]string, 0, len(CanvasFormats))
	for k := range CanvasFormats {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// ProjectInfo describes an opened project.
type ProjectInfo struct {
	Root       string
	DirName    string
	Name       ProjectName
	SlideDir   string
	SlideCount int
}

// Canvas returns the canvas format of the project, if known.
func (p ProjectInfo) Canvas() (CanvasFormat, bool) {
	f, ok := CanvasFormats[p.Name.Format]
	return f, ok
}
