package pipeline

import (
	"strings"

	errs "github.com/matzehuels/fattree/pkg/errors"
)

// ParseFormats splits a comma-separated format list such as "svg,png",
// dropping blanks and duplicates, and validates each entry.
func ParseFormats(s string) ([]string, error) {
	var formats []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		formats = append(formats, f)
	}
	return formats, nil
}

// ParseHosts turns the textual host references of a request into ordinals.
// Empty references are skipped, so "--from 3" alone selects one host.
// hosts is the host count of the topology the references apply to.
func ParseHosts(refs []string, hosts int) ([]int, error) {
	var out []int
	for _, ref := range refs {
		if strings.TrimSpace(ref) == "" {
			continue
		}
		ord, err := errs.ParseHostOrdinal(ref, hosts)
		if err != nil {
			return nil, err
		}
		out = append(out, ord)
	}
	if len(out) == 2 && out[0] == out[1] {
		return nil, errs.New(errs.ErrCodeInvalidHost, "cannot route host %d to itself", out[0])
	}
	return out, nil
}
