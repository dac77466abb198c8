// Package videoid resolves a user-supplied video URL or bare identifier
// to the identifier alone, so the panel can hand TVs a clean embed target.
package videoid

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalid is returned when the input is neither an identifier nor a
// recognizable video URL.
var ErrInvalid = errors.New("not a video id or url")

// idPattern matches a bare identifier: alphanumeric, underscore or
// hyphen, at least 6 characters.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{6,}$`)

// Resolve extracts the video identifier from raw. Accepted forms:
// a bare identifier, a youtu.be short link, a watch URL with a v query
// parameter, and embed/shorts style URLs whose last path segment is the
// identifier.
func Resolve(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrInvalid
	}

	if idPattern.MatchString(s) {
		return s, nil
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", ErrInvalid
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")

	if host == "youtu.be" {
		if id := firstSegment(u.Path); idPattern.MatchString(id) {
			return id, nil
		}
		return "", ErrInvalid
	}

	if v := u.Query().Get("v"); idPattern.MatchString(v) {
		return v, nil
	}

	// embed- and shorts-style links carry the id as the last segment
	if id := lastSegment(u.Path); idPattern.MatchString(id) {
		return id, nil
	}

	return "", ErrInvalid
}

func firstSegment(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

func lastSegment(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
