// pkg/layout/extractor_test.go
package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMiddleOfBody(t *testing.T) {
	body := "id=42&reportLayout=col1%2Ccol2&save=1"

	value, err := Extract(body, "reportLayout")
	require.NoError(t, err)
	assert.Equal(t, "col1%2Ccol2", value)
}

func TestExtractEndOfBody(t *testing.T) {
	body := "id=42&reportLayout=col1%2Ccol2"

	value, err := Extract(body, "reportLayout")
	require.NoError(t, err)
	assert.Equal(t, "col1%2Ccol2", value)
}

func TestExtractEmptyValue(t *testing.T) {
	value, err := Extract("reportLayout=&save=1", "reportLayout")
	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestExtractMissingParam(t *testing.T) {
	_, err := Extract("id=42&save=1", "reportLayout")
	assert.ErrorIs(t, err, ErrParamNotFound)
}

func TestExtractQuestionMarkTerminator(t *testing.T) {
	value, err := Extract("reportLayout=abc?trailing", "reportLayout")
	require.NoError(t, err)
	assert.Equal(t, "abc", value)
}

func TestReplaceParamKeepsSurroundingBody(t *testing.T) {
	body := "id=42&reportLayout=old&save=1"

	out := ReplaceParam(body, "reportLayout", "new")
	assert.Equal(t, "id=42&reportLayout=new&save=1", out)
}

func TestReplaceParamAtEndOfBody(t *testing.T) {
	out := ReplaceParam("id=42&reportLayout=old", "reportLayout", "new")
	assert.Equal(t, "id=42&reportLayout=new", out)
}

func TestReplaceParamMissingParamLeavesBodyUntouched(t *testing.T) {
	body := "id=42&save=1"
	assert.Equal(t, body, ReplaceParam(body, "reportLayout", "new"))
}

func TestExtractRoundTripsThroughReplace(t *testing.T) {
	body := "a=1&reportLayout=first&b=2"

	replaced := ReplaceParam(body, "reportLayout", "second")
	value, err := Extract(replaced, "reportLayout")
	require.NoError(t, err)
	assert.Equal(t, "second", value)
}
