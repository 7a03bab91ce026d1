// pkg/catalog/query_test.go
package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/David-Botos/report-migrator/pkg/model"
)

func TestFieldsByIDsQuery(t *testing.T) {
	query, err := fieldsByIDsQuery([]string{"00NA00000000001", "00NA00000000002"})
	require.NoError(t, err)

	assert.Contains(t, query, "FROM CustomField")
	assert.Contains(t, query, "TableEnumOrId")
	assert.Contains(t, query, "'00NA00000000001'")
	assert.Contains(t, query, "'00NA00000000002'")
}

func TestObjectsByIDsQuery(t *testing.T) {
	query, err := objectsByIDsQuery([]string{"01IA00000000001"})
	require.NoError(t, err)

	assert.Contains(t, query, "FROM CustomObject")
	assert.Contains(t, query, "'01IA00000000001'")
}

func TestObjectsByNamesQueryCombinesKeysWithOr(t *testing.T) {
	query, err := objectsByNamesQuery([]model.ObjectKey{
		{NamespacePrefix: "acme", DeveloperName: "Invoice"},
		{DeveloperName: "Widget"},
	})
	require.NoError(t, err)

	assert.Contains(t, query, "FROM CustomObject")
	assert.Contains(t, query, " OR ")
	assert.Contains(t, query, "NamespacePrefix = 'acme'")
	assert.Contains(t, query, "'Invoice'")
	// Unmanaged objects store NULL, never an empty string.
	assert.Contains(t, query, "NamespacePrefix IS NULL")
	assert.Contains(t, query, "'Widget'")
}

func TestFieldsByNaturalKeysQuery(t *testing.T) {
	query, err := fieldsByNaturalKeysQuery([]model.NaturalKey{
		{Table: "Account", DeveloperName: "Region"},
		{Table: "01IB00000000009", NamespacePrefix: "acme", DeveloperName: "Total"},
	})
	require.NoError(t, err)

	assert.Contains(t, query, "FROM CustomField")
	assert.Contains(t, query, "TableEnumOrId = 'Account'")
	assert.Contains(t, query, "NamespacePrefix IS NULL")
	assert.Contains(t, query, "TableEnumOrId = '01IB00000000009'")
	assert.Contains(t, query, "NamespacePrefix = 'acme'")
	assert.Contains(t, query, " OR ")
}
