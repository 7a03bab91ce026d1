// pkg/migration/verify_test.go
package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/David-Botos/report-migrator/pkg/model"
)

func TestVerifyRewritesPassesOnCleanBlobs(t *testing.T) {
	idMap := model.IdentifierMap{"00NA00000000001": "00NB00000000002"}
	rewritten := []model.LayoutBlob{
		{Report: "Pipeline Overview", Subtype: "Tabular", Encoded: "head%2C00NB00000000002%2Ctail"},
	}

	findings := VerifyRewrites(rewritten, idMap, zap.NewNop())
	assert.Empty(t, findings)
}

func TestVerifyRewritesFlagsSurvivingSourceReference(t *testing.T) {
	idMap := model.IdentifierMap{"00NA00000000001": "00NB00000000002"}
	rewritten := []model.LayoutBlob{
		{Report: "Pipeline Overview", Subtype: "Matrix", Encoded: "x00NA00000000001x"},
	}

	findings := VerifyRewrites(rewritten, idMap, zap.NewNop())
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0], "Pipeline Overview/Matrix")
	assert.Contains(t, findings[0], "00NA00000000001")
}

func TestVerifyRewritesIgnoresUnmappedReferences(t *testing.T) {
	rewritten := []model.LayoutBlob{
		{Report: "R", Subtype: "Summary", Encoded: "x00NZ99999999999x"},
	}

	findings := VerifyRewrites(rewritten, model.IdentifierMap{}, zap.NewNop())
	assert.Empty(t, findings)
}
