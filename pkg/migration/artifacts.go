// pkg/migration/artifacts.go
package migration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// errorLogName is the append-only log of fatal conditions.
const errorLogName = "errors.log"

// Stage labels for blob dumps.
const (
	StageCaptured = "captured"
	StageRewrote  = "rewritten"
)

// ArtifactWriter persists per-report blob dumps and the append-only error
// log for one run.
type ArtifactWriter struct {
	dir    string
	runID  string
	logger *zap.Logger
}

// blobRecord is the on-disk shape of one layout dump.
type blobRecord struct {
	RunID      string    `json:"runId"`
	Report     string    `json:"report"`
	Subtype    string    `json:"subtype"`
	Stage      string    `json:"stage"`
	CapturedAt time.Time `json:"capturedAt"`
	Encoded    string    `json:"encoded"`
}

// NewArtifactWriter creates the artifacts directory and assigns a run id.
// An empty dir disables blob dumps; the error log then lands in the working
// directory.
func NewArtifactWriter(dir string, logger *zap.Logger) (*ArtifactWriter, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create artifacts directory: %w", err)
		}
	}
	return &ArtifactWriter{dir: dir, runID: uuid.NewString(), logger: logger}, nil
}

// RunID returns the identifier shared by all artifacts of this run.
func (w *ArtifactWriter) RunID() string {
	return w.runID
}

// DumpBlob writes one pre- or post-rewrite layout blob as JSON. A disabled
// writer is a no-op.
func (w *ArtifactWriter) DumpBlob(report, subtype, stage, encoded string) error {
	if w.dir == "" {
		return nil
	}

	record := blobRecord{
		RunID:      w.runID,
		Report:     report,
		Subtype:    subtype,
		Stage:      stage,
		CapturedAt: time.Now(),
		Encoded:    encoded,
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal blob record: %w", err)
	}

	name := fmt.Sprintf("%s_%s_%s_%s.json",
		sanitizeName(report), strings.ToLower(subtype), stage, w.runID[:8])
	if err := os.WriteFile(filepath.Join(w.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write blob dump: %w", err)
	}

	if w.logger != nil {
		w.logger.Debug("Wrote blob dump",
			zap.String("report", report),
			zap.String("subtype", subtype),
			zap.String("stage", stage),
			zap.String("file", name))
	}
	return nil
}

// AppendError records a fatal condition in the error log with a timestamp.
func (w *ArtifactWriter) AppendError(runErr error) error {
	if runErr == nil {
		return nil
	}

	path := errorLogName
	if w.dir != "" {
		path = filepath.Join(w.dir, errorLogName)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open error log: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s run=%s %s\n", time.Now().Format(time.RFC3339), w.runID, runErr.Error())
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append to error log: %w", err)
	}
	return nil
}

// sanitizeName makes a report name safe for a filename.
func sanitizeName(name string) string {
	replacer := strings.NewReplacer(" ", "-", "/", "-", "\\", "-", ":", "-")
	return strings.ToLower(replacer.Replace(name))
}
