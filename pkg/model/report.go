// pkg/model/report.go
package model

// ReportSubtypes is the closed set of template variants layered under a
// named report template.
var ReportSubtypes = []string{"Tabular", "Summary", "Matrix", "Joined"}

// IsReportSubtype reports whether name is one of the four known subtypes.
func IsReportSubtype(name string) bool {
	for _, s := range ReportSubtypes {
		if s == name {
			return true
		}
	}
	return false
}

// LayoutBlob is the encoded layout fragment captured for one report/subtype
// combination. Rewrites produce a derived copy; the original is retained for
// auditing.
type LayoutBlob struct {
	Report  string
	Subtype string
	Encoded string
}
