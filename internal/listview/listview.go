// Package listview implements the shared filter -> sort -> paginate
// pipeline behind every table endpoint (bookings, admins, vehicles,
// zones, transfers). Pages describe their fields through a Schema; the
// pipeline itself knows nothing about the entity type.
package listview

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// Sort selects the comparator key and direction. Key may be a dot-path
// when the schema accessor supports nested lookups.
type Sort struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// Filters are AND-combined; empty values are bypassed.
type Filters struct {
	Text   string `json:"text"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

// StatusAll is the sentinel that turns the status filter into a no-op.
const StatusAll = "all"

type Params struct {
	Filters  Filters `json:"filters"`
	Sort     *Sort   `json:"sort,omitempty"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
}

// Schema binds the pipeline to one entity type.
type Schema[T any] struct {
	// TextFields is the allowlist searched by the free-text filter.
	TextFields []string
	// DateField is the field compared by the date filter.
	DateField string
	// StatusField defaults to "status".
	StatusField string
	// DateKeys are sort keys whose values compare as timestamps.
	// booked_at / completed_at are always treated as dates.
	DateKeys map[string]bool
	// Get resolves a field by key. Returning ok=false makes the value
	// sort as an empty string and never match a filter.
	Get func(item T, key string) (any, bool)
}

type Result[T any] struct {
	PageItems  []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	TotalCount int `json:"total_count"`
}

// Query runs the full pipeline. Pages outside [1, totalPages] clamp;
// an empty filtered set yields totalPages == 0 and no items.
func (s Schema[T]) Query(items []T, p Params) Result[T] {
	filtered := s.filter(items, p.Filters)
	s.sortItems(filtered, p.Sort)

	if p.PageSize <= 0 {
		p.PageSize = 10
	}

	totalCount := len(filtered)
	totalPages := (totalCount + p.PageSize - 1) / p.PageSize

	page := p.Page
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * p.PageSize
	end := start + p.PageSize
	if start > totalCount {
		start = totalCount
	}
	if end > totalCount {
		end = totalCount
	}

	return Result[T]{
		PageItems:  filtered[start:end],
		Page:       page,
		PageSize:   p.PageSize,
		TotalPages: totalPages,
		TotalCount: totalCount,
	}
}

func (s Schema[T]) filter(items []T, f Filters) []T {
	text := strings.ToLower(strings.TrimSpace(f.Text))
	date := truncateDay(f.Date)
	status := strings.ToLower(strings.TrimSpace(f.Status))

	statusField := s.StatusField
	if statusField == "" {
		statusField = "status"
	}

	out := make([]T, 0, len(items))
	for _, it := range items {
		if text != "" && !s.matchesText(it, text) {
			continue
		}
		if date != "" && s.DateField != "" {
			if truncateDay(s.stringField(it, s.DateField)) != date {
				continue
			}
		}
		if status != "" && status != StatusAll {
			if strings.ToLower(strings.TrimSpace(s.stringField(it, statusField))) != status {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

func (s Schema[T]) matchesText(it T, needle string) bool {
	for _, field := range s.TextFields {
		if strings.Contains(strings.ToLower(s.stringField(it, field)), needle) {
			return true
		}
	}
	return false
}

func (s Schema[T]) stringField(it T, key string) string {
	v, ok := s.Get(it, key)
	if !ok || v == nil {
		return ""
	}
	return stringify(v)
}

func (s Schema[T]) sortItems(items []T, srt *Sort) {
	if srt == nil || strings.TrimSpace(srt.Key) == "" {
		return
	}
	key := srt.Key
	dateKey := s.isDateKey(key)
	desc := srt.Direction == Descending

	sort.SliceStable(items, func(i, j int) bool {
		a, _ := s.Get(items[i], key)
		b, _ := s.Get(items[j], key)
		cmp := compareValues(a, b, dateKey)
		if desc {
			cmp = -cmp
		}
		return cmp < 0
	})
}

func (s Schema[T]) isDateKey(key string) bool {
	if s.DateKeys[key] {
		return true
	}
	base := key
	if i := strings.LastIndex(key, "."); i >= 0 {
		base = key[i+1:]
	}
	return base == "booked_at" || base == "completed_at"
}

// compareValues is the type-aware comparator: booleans order true before
// false, numeric-looking values compare as floats, date keys as parsed
// timestamps, everything else as lower-cased strings. Ties return 0 so
// the stable sort keeps prior order.
func compareValues(a, b any, dateKey bool) int {
	if ab, aok := a.(bool); aok {
		if bb, bok := b.(bool); bok {
			if ab == bb {
				return 0
			}
			if ab {
				return -1
			}
			return 1
		}
	}

	as := stringify(a)
	bs := stringify(b)

	if dateKey {
		at, aerr := parseWhen(as)
		bt, berr := parseWhen(bs)
		if aerr == nil && berr == nil {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	}

	if af, aerr := strconv.ParseFloat(strings.TrimSpace(as), 64); aerr == nil {
		if bf, berr := strconv.ParseFloat(strings.TrimSpace(bs), 64); berr == nil {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}

	return strings.Compare(strings.ToLower(as), strings.ToLower(bs))
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", x)
	}
}

var whenLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseWhen(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range whenLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// truncateDay keeps the yyyy-MM-dd prefix of a date string.
func truncateDay(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
