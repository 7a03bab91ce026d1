// pkg/migration/metrics.go
package migration

import (
	"time"

	"go.uber.org/zap"
)

// ReportMetrics tracks the outcome of one report's migration.
type ReportMetrics struct {
	Report        string
	StartTime     time.Time
	EndTime       time.Time
	BlobsCaptured int
	BlobsDeployed int
}

// Duration returns how long the report took, falling back to elapsed time
// while it is still in flight.
func (rm *ReportMetrics) Duration() time.Duration {
	if rm.EndTime.IsZero() {
		return time.Since(rm.StartTime)
	}
	return rm.EndTime.Sub(rm.StartTime)
}

// RunMetrics tracks per-report outcomes for the end-of-run summary. The
// pipeline is strictly sequential, so no locking is needed.
type RunMetrics struct {
	StartTime          time.Time
	Reports            map[string]*ReportMetrics
	ReferencesScanned  int
	ReferencesRemapped int
}

// NewRunMetrics creates a run metrics tracker.
func NewRunMetrics() *RunMetrics {
	return &RunMetrics{
		StartTime: time.Now(),
		Reports:   make(map[string]*ReportMetrics),
	}
}

// StartReport begins tracking one report.
func (m *RunMetrics) StartReport(report string) {
	m.Reports[report] = &ReportMetrics{Report: report, StartTime: time.Now()}
}

// EndReport completes tracking one report.
func (m *RunMetrics) EndReport(report string) {
	if rm, ok := m.Reports[report]; ok {
		rm.EndTime = time.Now()
	}
}

// AddCapture counts a captured blob against a report.
func (m *RunMetrics) AddCapture(report string) {
	if rm, ok := m.Reports[report]; ok {
		rm.BlobsCaptured++
	}
}

// AddDeploy counts a deployed blob against a report.
func (m *RunMetrics) AddDeploy(report string) {
	if rm, ok := m.Reports[report]; ok {
		rm.BlobsDeployed++
	}
}

// LogSummary emits the end-of-run summary.
func (m *RunMetrics) LogSummary(logger *zap.Logger) {
	if logger == nil {
		return
	}

	captured, deployed := 0, 0
	for _, rm := range m.Reports {
		captured += rm.BlobsCaptured
		deployed += rm.BlobsDeployed
	}

	logger.Info("Migration summary",
		zap.Int("reports", len(m.Reports)),
		zap.Int("blobsCaptured", captured),
		zap.Int("blobsDeployed", deployed),
		zap.Int("referencesScanned", m.ReferencesScanned),
		zap.Int("referencesRemapped", m.ReferencesRemapped),
		zap.Duration("elapsed", time.Since(m.StartTime)))

	for name, rm := range m.Reports {
		logger.Debug("Report timing",
			zap.String("report", name),
			zap.Duration("duration", rm.Duration()),
			zap.Int("blobsCaptured", rm.BlobsCaptured),
			zap.Int("blobsDeployed", rm.BlobsDeployed))
	}
}
