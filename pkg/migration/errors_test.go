// pkg/migration/errors_test.go
package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCollectorBatchesDetails(t *testing.T) {
	c := NewCollector(KindMissingReport, zap.NewNop())
	require.NoError(t, c.Err())

	c.Add("source: Pipeline Overview")
	c.Addf("source: %s", "Quarterly Revenue")

	err := c.Err()
	require.Error(t, err)

	var fatal *FatalError
	require.ErrorAs(t, err, &fatal)
	assert.Equal(t, KindMissingReport, fatal.Kind)
	assert.Equal(t, []string{"source: Pipeline Overview", "source: Quarterly Revenue"}, fatal.Details)
}

func TestFatalErrorMessageListsEveryDetail(t *testing.T) {
	err := &FatalError{
		Kind:    KindMissingSchemaReference,
		Details: []string{"Account.Region", "acme__Invoice.acme__Total"},
	}
	assert.Equal(t, "MissingSchemaReference: Account.Region; acme__Invoice.acme__Total", err.Error())
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "Configuration", KindConfiguration.String())
	assert.Equal(t, "Authentication", KindAuthentication.String())
	assert.Equal(t, "MissingReport", KindMissingReport.String())
	assert.Equal(t, "MissingSchemaReference", KindMissingSchemaReference.String())
	assert.Equal(t, "ExtractionFailure", KindExtractionFailure.String())
}
