package errors

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseHostOrdinal parses a host reference as given on the command line or in
// a query string. Hosts are addressed by their ordinal in the topology's host
// list, so the result is checked against hosts (the host count).
func ParseHostOrdinal(s string, hosts int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, New(ErrCodeInvalidHost, "host reference cannot be empty")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, Wrap(ErrCodeInvalidHost, err, "host reference %q is not a number", s)
	}
	if err := ValidateHostOrdinal(n, hosts); err != nil {
		return 0, err
	}
	return n, nil
}

// ValidateHostOrdinal checks that ordinal addresses one of hosts hosts.
func ValidateHostOrdinal(ordinal, hosts int) error {
	if ordinal < 0 || ordinal >= hosts {
		return New(ErrCodeInvalidHost, "host %d out of range [0, %d)", ordinal, hosts)
	}
	return nil
}

// ValidateOutputBase validates a base name used to derive output file names.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputBase(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "output name cannot be empty")
	}

	const maxLength = 500
	if len(name) > maxLength {
		return New(ErrCodeInvalidInput, "output name too long (max %d characters)", maxLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output name contains invalid characters")
		}
	}
	return nil
}
