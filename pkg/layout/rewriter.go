// pkg/layout/rewriter.go
package layout

import (
	"strings"

	"github.com/David-Botos/report-migrator/pkg/model"
)

// ImagePolicy controls handling of embedded image markup during a rewrite.
type ImagePolicy struct {
	Strip       bool   `yaml:"strip"`
	Replacement string `yaml:"replacement"`
}

// Image markup inside a layout blob is stored in its percent-escaped form
// ('%3C' = '<', '%3E' = '>', '%2F' = '/'). Both the self-closing and the
// open/close-pair variants occur; markers operate on the escaped text, not
// decoded HTML.
const (
	imageOpenMarker  = "%3Cimg"
	imageTagEnd      = "%3E"
	imageSelfClose   = "%2F%3E"
	imageCloseMarker = "%3C%2Fimg%3E"
)

// emptyTagRemnant is what an image tag collapses to once its markup is
// removed; it gets substituted with the policy's replacement text.
const emptyTagRemnant = "%3C%3E"

// Rewrite returns a copy of blob in which every field reference present in m
// is replaced with its mapped target identifier, applying the image policy
// afterwards. References absent from m pass through untouched; the input is
// never mutated.
//
// Tokens share a fixed length and a disjoint value space, so the replacement
// order across distinct tokens cannot affect the result.
func Rewrite(blob string, m model.IdentifierMap, policy ImagePolicy) string {
	out := referencePattern.ReplaceAllStringFunc(blob, func(token string) string {
		if target, ok := m[model.CanonicalID(token)]; ok {
			return target
		}
		return token
	})

	if policy.Strip {
		out = stripImages(out, policy.Replacement)
	}
	return out
}

// stripImages removes encoded image markup and swaps any bare empty-tag
// remnant for the replacement text. Each open tag runs to its first encoded
// '>', so one image's markup can never extend into a neighboring image;
// an encoded '/' directly before that boundary marks the self-closing form,
// anything else consumes through the matching close tag.
func stripImages(blob, replacement string) string {
	var out strings.Builder
	rest := blob
	for {
		i := strings.Index(rest, imageOpenMarker)
		if i < 0 {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:i])
		tag := rest[i:]

		end := strings.Index(tag, imageTagEnd)
		if end < 0 {
			// Unterminated open tag; nothing sound to strip.
			out.WriteString(tag)
			break
		}
		openTag := tag[:end+len(imageTagEnd)]
		after := tag[end+len(imageTagEnd):]

		out.WriteString(replacement)
		if strings.HasSuffix(openTag, imageSelfClose) {
			rest = after
			continue
		}
		if j := strings.Index(after, imageCloseMarker); j >= 0 {
			rest = after[j+len(imageCloseMarker):]
			continue
		}
		rest = after
	}
	return strings.ReplaceAll(out.String(), emptyTagRemnant, replacement)
}
