// pkg/migration/verify.go
package migration

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/David-Botos/report-migrator/pkg/layout"
	"github.com/David-Botos/report-migrator/pkg/model"
)

// VerifyRewrites asserts that no mapped source reference survives in any
// rewritten blob. It returns one finding per surviving reference; an empty
// result means every rewrite held.
func VerifyRewrites(rewritten []model.LayoutBlob, idMap model.IdentifierMap, logger *zap.Logger) []string {
	var findings []string
	for _, blob := range rewritten {
		for _, ref := range layout.Scan(blob.Encoded) {
			if _, mapped := idMap[ref.String()]; !mapped {
				continue // unmapped references legitimately pass through
			}
			findings = append(findings,
				fmt.Sprintf("%s/%s still references %s", blob.Report, blob.Subtype, ref))
		}
	}

	if logger != nil {
		if len(findings) == 0 {
			logger.Info("Rewrite verification passed", zap.Int("blobs", len(rewritten)))
		} else {
			logger.Error("Rewrite verification failed", zap.Strings("findings", findings))
		}
	}
	return findings
}
