package power

import (
	"errors"
	"regexp"
	"strings"
)

// Scheme describes one power scheme reported by powercfg.
type Scheme struct {
	// GUID is the stable 36-character scheme identifier.
	GUID string

	// Name is the scheme's display label, e.g. "Balanced".
	Name string

	// Active indicates the scheme is currently active (trailing asterisk
	// in powercfg /list output).
	Active bool
}

// ErrNoActiveScheme indicates that the active scheme GUID could not be
// parsed from powercfg output.
var ErrNoActiveScheme = errors.New("active power scheme not found")

// schemeLine matches powercfg scheme lines:
//
//	Power Scheme GUID: 381b4222-f694-41f0-9685-ff5bb260df2e  (Balanced) *
var schemeLine = regexp.MustCompile(`(?i)GUID:\s*([0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})\s+\(([^)]*)\)\s*(\*)?`)

// ParseSchemes parses `powercfg /list` output into schemes. Lines that
// do not contain a scheme GUID (headers, separators) are skipped.
func ParseSchemes(out string) []Scheme {
	var schemes []Scheme
	for _, line := range strings.Split(out, "\n") {
		m := schemeLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		schemes = append(schemes, Scheme{
			GUID:   strings.ToLower(m[1]),
			Name:   strings.TrimSpace(m[2]),
			Active: m[3] == "*",
		})
	}
	return schemes
}

// ParseActiveScheme extracts the active scheme GUID from
// `powercfg /getactivescheme` output.
func ParseActiveScheme(out string) (string, error) {
	m := schemeLine.FindStringSubmatch(out)
	if m == nil {
		return "", ErrNoActiveScheme
	}
	return strings.ToLower(m[1]), nil
}

// FindByLabel returns the first scheme whose name matches the given
// label case-insensitively.
func FindByLabel(schemes []Scheme, label string) (Scheme, bool) {
	for _, s := range schemes {
		if strings.EqualFold(s.Name, label) {
			return s, true
		}
	}
	return Scheme{}, false
}
