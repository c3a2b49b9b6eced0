package grid

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DayStartHour is the hour the academy day starts. Earlier hours belong to the
// tail of the schedule, not its head.
const DayStartHour = 8

// Ordinal converts an "HH:MM" label into its display sort key. Hours before
// DayStartHour are shifted by 12 so they sort after the morning. Malformed
// labels yield 0.
func Ordinal(label string) int {
	h, m, ok := parseLabel(label)
	if !ok {
		return 0
	}
	if h < DayStartHour {
		h += 12
	}
	return h*60 + m
}

// NormalizeLabel returns the canonical zero-padded form of label ("9:05" -> "09:05").
func NormalizeLabel(label string) (string, error) {
	h, m, ok := parseLabel(label)
	if !ok {
		return "", fmt.Errorf("%w: time %q is not HH:MM", ErrValidation, label)
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}

// SortLabels deduplicates labels and orders them by Ordinal. Empty labels are dropped.
func SortLabels(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}

	sort.Slice(out, func(i, j int) bool {
		oi, oj := Ordinal(out[i]), Ordinal(out[j])
		if oi != oj {
			return oi < oj
		}
		return out[i] < out[j]
	})
	return out
}

func parseLabel(label string) (hour, minute int, ok bool) {
	hs, ms, found := strings.Cut(strings.TrimSpace(label), ":")
	if !found || len(hs) == 0 || len(hs) > 2 || len(ms) != 2 || !digits(hs) || !digits(ms) {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(hs)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(ms)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
