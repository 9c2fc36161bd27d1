// Package input parses the free-text prompts of the TUI.
package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/javiermolinar/daybar/internal/partition"
)

// ErrBadInput is returned for prompt text that cannot be parsed.
var ErrBadInput = errors.New("bad input")

// ParseHour parses "9", "9.5" or "9:30" into hours.
func ParseHour(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty hour", ErrBadInput)
	}

	if h, m, ok := strings.Cut(s, ":"); ok {
		hours, err := strconv.Atoi(h)
		if err != nil {
			return 0, fmt.Errorf("%w: hour %q", ErrBadInput, s)
		}
		mins, err := strconv.Atoi(m)
		if err != nil || len(m) != 2 || mins < 0 || mins >= 60 {
			return 0, fmt.Errorf("%w: minutes %q", ErrBadInput, s)
		}
		return float64(hours) + float64(mins)/60, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: hour %q", ErrBadInput, s)
	}
	return v, nil
}

// ParseRange parses "start end", "start-end" or "start,end".
// Bounds are not validated here; the engine rejects bad ranges.
func ParseRange(s string) (partition.Range, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == ','
	})
	if len(fields) != 2 {
		return partition.Range{}, fmt.Errorf("%w: want \"start end\", got %q", ErrBadInput, s)
	}
	start, err := ParseHour(fields[0])
	if err != nil {
		return partition.Range{}, err
	}
	end, err := ParseHour(fields[1])
	if err != nil {
		return partition.Range{}, err
	}
	return partition.Range{Start: start, End: end}, nil
}

// ParseCategory splits "Deep Reading #00bcd4" into a name and an optional
// trailing color.
func ParseCategory(s string) (string, partition.Color) {
	s = strings.TrimSpace(s)
	i := strings.LastIndexByte(s, ' ')
	if i < 0 {
		if isColor(s) {
			return "", partition.Color(strings.ToLower(s))
		}
		return s, ""
	}
	if last := s[i+1:]; isColor(last) {
		return strings.TrimSpace(s[:i]), partition.Color(strings.ToLower(last))
	}
	return s, ""
}

func isColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	_, err := strconv.ParseUint(s[1:], 16, 32)
	return err == nil
}
