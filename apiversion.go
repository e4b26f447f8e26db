// Package apiversion provides HTTP middleware that negotiates an API version
// for each request and rewrites the request path to carry an explicit version
// prefix, e.g. "/v1/resource". The version is taken from the "x-api-version"
// header if present and valid, otherwise the highest supported version is
// used. Route handlers are registered per version ("/v0/...", "/v1/...")
// behind the middleware.
package apiversion

import (
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
)

const collisionMessage = "path must not start with version prefix like '/v0'"

// Interceptor rewrites request paths based on a set of supported versions and
// an optional Filter. It holds no per-request state; a single Interceptor is
// shared across all concurrent requests.
//
// Requests for the readiness probe "/" are never rewritten. Request paths
// must not already start with a version prefix such as "/v0".
type Interceptor struct {
	versions Set
	filter   Filter
}

// New creates an Interceptor for the given versions, which must be non-empty
// and strictly increasing. A nil filter means all requests are rewritten.
func New(versions []Version, filter Filter) (*Interceptor, error) {
	set, err := NewSet(versions)
	if err != nil {
		return nil, err
	}

	if filter == nil {
		filter = All
	}

	return &Interceptor{versions: set, filter: filter}, nil
}

// Versions returns the supported version set.
func (i *Interceptor) Versions() Set {
	return i.versions
}

// Wrap returns a handler that applies version negotiation and path rewriting
// before delegating to next. Rejected requests are answered directly and
// never reach next.
func (i *Interceptor) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Match against the escaped path, i.e. the form sent on the wire,
		// so percent-encoded paths are judged the way the client wrote them.
		path := r.URL.EscapedPath()

		// Always serve "/", typically used as readiness probe, unmodified.
		if path == "/" {
			next.ServeHTTP(w, r)
			return
		}

		// The path must not already carry one of the valid version prefixes.
		// This is a plain prefix test, so "/v0x" collides with version 0.
		if i.versions.Any(func(v Version) bool {
			return strings.HasPrefix(path, "/"+v.String())
		}) {
			log.Printf("Rejecting %s: path already starts with a version prefix", path)
			reject(w, http.StatusBadRequest, collisionMessage)
			return
		}

		if !i.filter.Allow(r.URL) {
			next.ServeHTTP(w, r)
			return
		}

		// Determine the API version: the header if present and well-formed,
		// the highest supported version otherwise.
		version, err := ParseVersion(r.Header.Get(Header))
		if err != nil {
			version = i.versions.Default()
		}

		if !i.versions.Contains(version) {
			log.Printf("Rejecting %s: unknown version '%s'", path, version)
			reject(w, http.StatusNotFound, "unknown version '"+version.String()+"'")
			return
		}

		// Prepend the version prefix on a copy of the request, the way
		// http.StripPrefix does, so the caller's request is not rewritten
		// under it. The version display form needs no escaping, so Path and
		// RawPath stay consistent. The query string lives in URL.RawQuery
		// and is left untouched.
		r2 := new(http.Request)
		*r2 = *r
		r2.URL = new(url.URL)
		*r2.URL = *r.URL
		r2.URL.Path = "/" + version.String() + r.URL.Path
		if r.URL.RawPath != "" {
			r2.URL.RawPath = "/" + version.String() + r.URL.RawPath
		}
		next.ServeHTTP(w, r2)
	})
}

func reject(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, message)
}
