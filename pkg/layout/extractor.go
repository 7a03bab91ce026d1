// pkg/layout/extractor.go
package layout

import (
	"errors"
	"regexp"
)

// ErrParamNotFound indicates the request body did not carry the layout
// parameter. Callers treat such requests as unrelated traffic and pass them
// through unmodified.
var ErrParamNotFound = errors.New("layout parameter not found in request body")

// paramPattern matches a named parameter inside a URL-encoded request body.
// The value runs non-greedily up to the next '&'/'?' or the end of the body.
func paramPattern(param string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(param) + `=(.*?)([&?]|$)`)
}

// Extract locates the named parameter's value within a raw URL-encoded
// request body.
func Extract(rawBody, param string) (string, error) {
	m := paramPattern(param).FindStringSubmatch(rawBody)
	if m == nil {
		return "", ErrParamNotFound
	}
	return m[1], nil
}

// ReplaceParam substitutes the named parameter's value inside a URL-encoded
// request body, leaving every other byte of the body intact. Bodies without
// the parameter are returned unchanged.
func ReplaceParam(rawBody, param, value string) string {
	pattern := paramPattern(param)
	return pattern.ReplaceAllStringFunc(rawBody, func(match string) string {
		terminator := pattern.FindStringSubmatch(match)[2]
		return param + "=" + value + terminator
	})
}
