package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/salespulse/internal/domain/apperr"
)

const dayLayout = "2006-01-02"

// ParseIDs reads a comma separated list of product ids.
func ParseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, apperr.InvalidRequestf("invalid product id %q", part)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, apperr.InvalidRequestf("empty product id list")
	}
	return ids, nil
}

// ParseBound parses YYYY-MM-DD or RFC3339. A date-only upper bound is moved
// to the last nanosecond of that day so the whole day is included.
func ParseBound(s string, upper bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return time.Time{}, apperr.InvalidRequestf("invalid date %q: want %s or RFC3339", s, dayLayout)
	}
	if upper {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, nil
}

// ParseRange parses a from/to pair.
func ParseRange(from, to string) (start, end time.Time, err error) {
	if start, err = ParseBound(from, false); err != nil {
		return start, end, fmt.Errorf("--from: %w", err)
	}
	if end, err = ParseBound(to, true); err != nil {
		return start, end, fmt.Errorf("--to: %w", err)
	}
	return start, end, nil
}
