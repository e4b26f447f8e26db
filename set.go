package apiversion

import "errors"

var (
	// ErrEmptySet is returned by NewSet when no versions are given.
	ErrEmptySet = errors.New("versions must not be empty")

	// ErrNotIncreasing is returned by NewSet when the versions are not
	// strictly increasing.
	ErrNotIncreasing = errors.New("versions must be strictly increasing")
)

// Set is the fixed, ordered collection of versions a deployment supports.
// It is validated once at construction and immutable afterwards, so it can be
// shared across concurrent requests without locking.
type Set struct {
	versions []Version
}

// NewSet creates a Set from the given versions, which must be non-empty and
// strictly increasing, e.g. [0, 1, 2].
func NewSet(versions []Version) (Set, error) {
	if len(versions) == 0 {
		return Set{}, ErrEmptySet
	}

	for i := 0; i < len(versions)-1; i++ {
		if versions[i] >= versions[i+1] {
			return Set{}, ErrNotIncreasing
		}
	}

	vs := make([]Version, len(versions))
	copy(vs, versions)

	return Set{versions: vs}, nil
}

// Contains reports whether v is a supported version.
func (s Set) Contains(v Version) bool {
	for _, sv := range s.versions {
		if sv == v {
			return true
		}
	}
	return false
}

// Default returns the default version: the last, i.e. highest, element.
func (s Set) Default() Version {
	return s.versions[len(s.versions)-1]
}

// Any reports whether fn returns true for any version in the set.
func (s Set) Any(fn func(Version) bool) bool {
	for _, sv := range s.versions {
		if fn(sv) {
			return true
		}
	}
	return false
}
