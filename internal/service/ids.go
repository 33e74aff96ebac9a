package service

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	EmployeeIDPrefix = "EMP"
	PropertyIDPrefix = "PROP"
	ClientIDPrefix   = "CLI"
)

// SuggestNextID returns prefix followed by max+1 zero-padded to five digits.
// Ids without the prefix or with a non-numeric suffix are ignored. Two callers
// can receive the same suggestion; uniqueness is enforced on create.
func SuggestNextID(ids []string, prefix string) (string, error) {
	highest := -1
	for _, id := range ids {
		suffix, ok := strings.CutPrefix(id, prefix)
		if !ok || suffix == "" || !isDigits(suffix) {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	if highest < 0 {
		return "", newError(ErrNoRecords, "No records found")
	}
	return fmt.Sprintf("%s%05d", prefix, highest+1), nil
}

func isDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
