package validation

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayouts are the accepted spellings of a calendar date, tried in order.
var DateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"02-01-2006",
	"01/02/2006",
	"January 2, 2006",
	"2 January 2006",
	"Jan 2, 2006",
}

// ParseDate parses s with the first matching layout in DateLayouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseInt parses an optionally signed base-10 integer.
func ParseInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil
}

// notBlank fails strings that are empty once surrounding whitespace is removed.
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func isInteger(fl validator.FieldLevel) bool {
	_, ok := ParseInt(fl.Field().String())
	return ok
}

func minInt(fl validator.FieldLevel) bool {
	n, ok := ParseInt(fl.Field().String())
	if !ok {
		return false
	}
	bound, err := strconv.ParseInt(fl.Param(), 10, 64)
	if err != nil {
		return false
	}
	return n >= bound
}

func isDate(fl validator.FieldLevel) bool {
	_, ok := ParseDate(fl.Field().String())
	return ok
}
