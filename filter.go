package apiversion

import "net/url"

// Filter decides which requests are rewritten. Requests are only rewritten if
// Allow returns true for their URL; others are forwarded unmodified. A Filter
// is shared across concurrent requests and must be safe for concurrent use.
type Filter interface {
	Allow(u *url.URL) bool
}

// FilterFunc adapts a plain function to the Filter interface.
type FilterFunc func(u *url.URL) bool

// Allow calls f(u).
func (f FilterFunc) Allow(u *url.URL) bool {
	return f(u)
}

// All is a Filter that makes every request be rewritten.
var All Filter = FilterFunc(func(*url.URL) bool { return true })
