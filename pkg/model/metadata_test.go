// pkg/model/metadata_test.go
package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualifiedNameWithNamespace(t *testing.T) {
	o := ObjectMetadata{NamespacePrefix: "acme", DeveloperName: "Invoice"}
	assert.Equal(t, "acme__Invoice", o.QualifiedName())
}

func TestQualifiedNameWithoutNamespace(t *testing.T) {
	o := ObjectMetadata{DeveloperName: "Invoice"}
	assert.Equal(t, "Invoice", o.QualifiedName())
}

func TestQualifiedField(t *testing.T) {
	k := NaturalKey{Table: "acme__Invoice", NamespacePrefix: "acme", DeveloperName: "Total"}
	assert.Equal(t, "acme__Invoice.acme__Total", k.QualifiedField())

	k = NaturalKey{Table: "Account", DeveloperName: "Region"}
	assert.Equal(t, "Account.Region", k.QualifiedField())
}

func TestIsReportSubtype(t *testing.T) {
	for _, s := range ReportSubtypes {
		assert.True(t, IsReportSubtype(s), s)
	}
	assert.False(t, IsReportSubtype("Pivot"))
	assert.False(t, IsReportSubtype(""))
}
