package apiversion

import (
	"errors"
	"regexp"
	"strconv"
)

// Header is the name of the custom HTTP header conveying the requested API
// version. Header names are case-insensitive, so "X-Api-Version" works too.
const Header = "x-api-version"

// versionPattern matches a version designator: a literal 'v' followed by a
// number from 0 to 99 without leading zeros, e.g. "v0" or "v42".
var versionPattern = regexp.MustCompile(`^v(0|[1-9][0-9]?)$`)

// ErrInvalidVersion is returned by ParseVersion for values that do not match
// the version designator grammar.
var ErrInvalidVersion = errors.New("invalid version")

// Version identifies an API revision as a small non-negative integer.
// Versions are ordered numerically; the display form is "v" followed by the
// number, e.g. "v1".
type Version uint16

// ParseVersion parses a version designator like "v0" or "v99" into a Version.
// Anything else (missing 'v', leading zeros, more than two digits, empty
// string) fails with ErrInvalidVersion.
func ParseVersion(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, ErrInvalidVersion
	}

	n, err := strconv.ParseUint(m[1], 10, 16)
	if err != nil {
		return 0, ErrInvalidVersion
	}

	return Version(n), nil
}

// String returns the canonical display form, e.g. "v1". For values within the
// header grammar (0-99) this is also the exact wire form of the header.
func (v Version) String() string {
	return "v" + strconv.FormatUint(uint64(v), 10)
}
