package validation

import (
	"math"
	"net/url"
	"regexp"

	"github.com/tessellate-io/tessellate/pkg/cast"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func email(values ...any) bool {
	if len(values) != 1 {
		return false
	}

	s, ok := values[0].(string)
	if !ok {
		return false
	}

	return emailPattern.MatchString(s)
}

func absoluteURL(values ...any) bool {
	if len(values) != 1 {
		return false
	}

	s, ok := values[0].(string)
	if !ok {
		return false
	}

	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	return u.IsAbs() && u.Host != ""
}

// dateRange checks start < end. Unparseable dates fail the check.
func dateRange(values ...any) bool {
	if len(values) != 2 {
		return false
	}

	start := cast.Date(values[0])
	end := cast.Date(values[1])

	if start.IsZero() || end.IsZero() {
		return false
	}

	return start.Before(end)
}

// sumMatchesTotal checks that the values in the first argument sum to the
// second argument within a 0.01 tolerance.
func sumMatchesTotal(values ...any) bool {
	if len(values) != 2 {
		return false
	}

	total := cast.Number(values[1])

	var sum float64
	for _, item := range cast.Array(values[0]) {
		sum += cast.Number(item)
	}

	return math.Abs(sum-total) < 0.01
}
