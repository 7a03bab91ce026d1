// pkg/layout/scanner.go
package layout

import (
	"regexp"

	"github.com/David-Botos/report-migrator/pkg/model"
)

// referencePattern matches a custom-field identifier token embedded in a
// layout blob: the custom-field key prefix followed by exactly twelve
// alphanumerics.
var referencePattern = regexp.MustCompile(model.CustomFieldPrefix + `[a-zA-Z0-9]{12}`)

// Scan applies the reference pattern to every blob and returns the
// deduplicated union of all matches. The order of the result carries no
// meaning. Empty input yields an empty result; Scan has no side effects.
func Scan(blobs ...string) []model.FieldReference {
	seen := make(map[model.FieldReference]struct{})
	var refs []model.FieldReference
	for _, blob := range blobs {
		for _, match := range referencePattern.FindAllString(blob, -1) {
			ref := model.NewFieldReference(match)
			if _, ok := seen[ref]; ok {
				continue
			}
			seen[ref] = struct{}{}
			refs = append(refs, ref)
		}
	}
	return refs
}
