package pricing

import (
	"strconv"
	"strings"
)

// ParseSize parses a "WIDTHxHEIGHT" string in millimetres. The separator is
// case-insensitive.
func ParseSize(s string) (width, height float64, err error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, newError(CodeInvalidSize, "value", s)
	}
	width, err1 := strconv.ParseFloat(strings.TrimSpace(w), 64)
	height, err2 := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if err1 != nil || err2 != nil || width <= 0 || height <= 0 {
		return 0, 0, newError(CodeInvalidSize, "value", s)
	}
	return width, height, nil
}

// FormatSize renders a size selection as "W x H mm", preferring custom
// dimensions when the size is custom and both are set.
func FormatSize(s SizeSelection) string {
	w, h := s.CutWidth, s.CutHeight
	if s.IsCustom && s.CustomWidth != nil && s.CustomHeight != nil {
		w, h = *s.CustomWidth, *s.CustomHeight
	}
	return formatMM(w) + " x " + formatMM(h) + " mm"
}

func formatMM(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
