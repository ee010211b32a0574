// Package validation holds the field rules shared by forms, the dump importer and the desk API.
package validation

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/Astemirdum/librarian/librarian/internal/errs"
)

var phoneRe = regexp.MustCompile(`^\+7\d{10}$`)

func IsPhoneNumber(s string) bool {
	return phoneRe.MatchString(s)
}

func ValidatePhoneNumber(s string) error {
	if !IsPhoneNumber(s) {
		return &errs.FieldValidationError{Field: "phone", Reason: "must be +7 followed by 10 digits"}
	}
	return nil
}

// ValidateBookCount accepts int, int64, string or json.Number and returns the parsed count.
func ValidateBookCount(count any, takenCount int) (int, error) {
	var n int
	switch v := count.(type) {
	case int:
		n = v
	case int64:
		n = int(v)
	case string:
		return parseCount(v, takenCount)
	case json.Number:
		return parseCount(string(v), takenCount)
	default:
		return 0, &errs.FieldValidationError{Field: "count", Reason: "must be an integer"}
	}
	return checkCount(n, takenCount)
}

func parseCount(s string, takenCount int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &errs.FieldValidationError{Field: "count", Reason: "must be an integer"}
	}
	return checkCount(n, takenCount)
}

func checkCount(n, takenCount int) (int, error) {
	if n < 0 {
		return 0, &errs.FieldValidationError{Field: "count", Reason: "must not be negative"}
	}
	if n < takenCount {
		return 0, &errs.FieldValidationError{
			Field:  "count",
			Reason: "is less than the number of issued copies (" + strconv.Itoa(takenCount) + ")",
		}
	}
	return n, nil
}
