// pkg/migration/migrator.go
package migration

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/David-Botos/report-migrator/pkg/browser"
	"github.com/David-Botos/report-migrator/pkg/catalog"
	"github.com/David-Botos/report-migrator/pkg/config"
	"github.com/David-Botos/report-migrator/pkg/layout"
	"github.com/David-Botos/report-migrator/pkg/model"
)

// Admin-UI locations. The layout encoding only ever travels through the
// report editor's save submission; these selectors are the full extent of
// the tool's UI knowledge.
const (
	reportAdminPath = "/reports/admin"
	newReportPath   = "/reports/admin/new"
	reportNameInput = "#reportName"
	subtypeSelect   = "#reportFormat"
	saveButton      = "#saveLayout"
)

// CatalogFactory builds a metadata client for a logged-in org.
type CatalogFactory func(instanceURL, sessionToken string, logger *zap.Logger) catalog.Catalog

// Migrator runs the end-to-end layout migration between two orgs. Each
// pipeline stage takes the prior stage's output as a parameter and returns
// its own; no state is shared across stages beyond this struct's wiring.
type Migrator struct {
	cfg        *config.Config
	sourceCred browser.Credentials
	targetCred browser.Credentials
	artifacts  *ArtifactWriter
	metrics    *RunMetrics
	logger     *zap.Logger
	newCatalog CatalogFactory
}

// New creates a migrator.
func New(cfg *config.Config, source, target browser.Credentials, artifacts *ArtifactWriter, logger *zap.Logger) *Migrator {
	return &Migrator{
		cfg:        cfg,
		sourceCred: source,
		targetCred: target,
		artifacts:  artifacts,
		metrics:    NewRunMetrics(),
		logger:     logger,
		newCatalog: func(instanceURL, sessionToken string, l *zap.Logger) catalog.Catalog {
			return catalog.NewClient(instanceURL, sessionToken, cfg.APIVersion, l)
		},
	}
}

// Run executes the migration: capture from source, resolve identifiers,
// rewrite, deploy to target. Everything is sequential; one report/subtype at
// a time, source fully drained before the target is touched.
func (m *Migrator) Run(ctx context.Context) error {
	m.logger.Info("Starting layout migration",
		zap.String("runId", m.artifacts.RunID()),
		zap.Strings("reports", m.cfg.Reports),
		zap.Strings("subtypes", m.cfg.Subtypes),
		zap.Bool("headless", m.cfg.Headless))

	opts := browser.Options{
		Headless:         m.cfg.Headless,
		InterActionDelay: m.cfg.InterActionDelay(),
	}

	src, err := browser.NewSession(opts, m.logger.Named("source"))
	if err != nil {
		return err
	}
	defer src.Close()

	if err := src.Login(ctx, m.sourceCred); err != nil {
		return &FatalError{Kind: KindAuthentication, Details: []string{"source: " + err.Error()}}
	}
	srcBase, err := src.InstanceURL()
	if err != nil {
		return err
	}
	srcToken, err := src.SessionToken()
	if err != nil {
		return err
	}

	captured, err := m.captureSourceBlobs(src, srcBase)
	if err != nil {
		return err
	}

	encoded := make([]string, 0, len(captured))
	for _, b := range captured {
		encoded = append(encoded, b.Encoded)
	}
	refs := layout.Scan(encoded...)
	m.metrics.ReferencesScanned = len(refs)
	m.logger.Info("Scanned layout blobs",
		zap.Int("blobs", len(captured)),
		zap.Int("references", len(refs)))

	tgt, err := browser.NewSession(opts, m.logger.Named("target"))
	if err != nil {
		return err
	}
	defer tgt.Close()

	if err := tgt.Login(ctx, m.targetCred); err != nil {
		return &FatalError{Kind: KindAuthentication, Details: []string{"target: " + err.Error()}}
	}
	tgtBase, err := tgt.InstanceURL()
	if err != nil {
		return err
	}
	tgtToken, err := tgt.SessionToken()
	if err != nil {
		return err
	}

	idMap, err := catalog.Resolve(ctx, refs,
		m.newCatalog(srcBase, srcToken, m.logger.Named("source-catalog")),
		m.newCatalog(tgtBase, tgtToken, m.logger.Named("target-catalog")),
		m.logger)
	if err != nil {
		var missing *catalog.MissingReferenceError
		if errors.As(err, &missing) {
			return &FatalError{Kind: KindMissingSchemaReference, Details: missing.Missing}
		}
		return err
	}
	m.metrics.ReferencesRemapped = len(idMap)

	rewritten := m.rewriteBlobs(captured, idMap)

	// Nothing is written to the target until every rewrite is proven clean.
	if findings := VerifyRewrites(rewritten, idMap, m.logger); len(findings) > 0 {
		return fmt.Errorf("rewrite verification failed: %s", strings.Join(findings, "; "))
	}

	if err := m.deploy(tgt, tgtBase, rewritten); err != nil {
		return err
	}

	m.metrics.LogSummary(m.logger)
	return nil
}

// captureSourceBlobs walks the source report editor and intercepts the
// layout encoding for every configured report/subtype. Missing reports and
// capture misses are batch-collected within the stage.
func (m *Migrator) captureSourceBlobs(src *browser.Session, base string) ([]model.LayoutBlob, error) {
	missingReports := NewCollector(KindMissingReport, m.logger)
	extraction := NewCollector(KindExtractionFailure, m.logger)

	var blobs []model.LayoutBlob
	for _, report := range m.cfg.Reports {
		m.metrics.StartReport(report)

		if err := src.Navigate(base + reportAdminPath); err != nil {
			return nil, err
		}
		if !src.HasText(report) {
			missingReports.Add("source: " + report)
			m.metrics.EndReport(report)
			continue
		}

		for _, subtype := range m.cfg.Subtypes {
			if err := src.Navigate(base + reportAdminPath); err != nil {
				return nil, err
			}
			if err := src.ClickByText(report); err != nil {
				return nil, err
			}
			if err := src.SelectByLabel(subtypeSelect, subtype); err != nil {
				return nil, err
			}

			blob, err := src.CaptureLayout(m.cfg.LayoutParam, func() error {
				return src.Click(saveButton)
			})
			if errors.Is(err, browser.ErrNoCapture) {
				extraction.Addf("%s/%s: %v", report, subtype, err)
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("capture %s/%s: %w", report, subtype, err)
			}

			blobs = append(blobs, model.LayoutBlob{Report: report, Subtype: subtype, Encoded: blob})
			m.metrics.AddCapture(report)
			if err := m.artifacts.DumpBlob(report, subtype, StageCaptured, blob); err != nil {
				m.logger.Warn("Blob dump failed", zap.Error(err))
			}
		}
		m.metrics.EndReport(report)
	}

	if err := missingReports.Err(); err != nil {
		return nil, err
	}
	if err := extraction.Err(); err != nil {
		return nil, err
	}
	return blobs, nil
}

// rewriteBlobs applies the identifier map and image policy to every captured
// blob. Originals are kept; rewriting never mutates its input.
func (m *Migrator) rewriteBlobs(captured []model.LayoutBlob, idMap model.IdentifierMap) []model.LayoutBlob {
	rewritten := make([]model.LayoutBlob, 0, len(captured))
	for _, b := range captured {
		out := layout.Rewrite(b.Encoded, idMap, m.cfg.ImagePolicy)
		rewritten = append(rewritten, model.LayoutBlob{Report: b.Report, Subtype: b.Subtype, Encoded: out})
		if err := m.artifacts.DumpBlob(b.Report, b.Subtype, StageRewrote, out); err != nil {
			m.logger.Warn("Blob dump failed", zap.Error(err))
		}
	}
	return rewritten
}

// deploy replays the rewritten blobs into the target org. Every target
// report is checked (or created) before any layout is written, so a missing
// report never interrupts a half-finished deploy.
func (m *Migrator) deploy(tgt *browser.Session, base string, blobs []model.LayoutBlob) error {
	byReport := make(map[string][]model.LayoutBlob)
	for _, b := range blobs {
		byReport[b.Report] = append(byReport[b.Report], b)
	}

	missing := NewCollector(KindMissingReport, m.logger)
	for _, report := range m.cfg.Reports {
		if len(byReport[report]) == 0 {
			continue
		}
		if err := tgt.Navigate(base + reportAdminPath); err != nil {
			return err
		}
		if tgt.HasText(report) {
			continue
		}
		if !m.cfg.CreateMissingReports {
			missing.Add("target: " + report)
			continue
		}
		if err := m.createReport(tgt, base, report); err != nil {
			return err
		}
	}
	if err := missing.Err(); err != nil {
		return err
	}

	for _, report := range m.cfg.Reports {
		for _, b := range byReport[report] {
			if err := tgt.Navigate(base + reportAdminPath); err != nil {
				return err
			}
			if err := tgt.ClickByText(b.Report); err != nil {
				return err
			}
			if err := tgt.SelectByLabel(subtypeSelect, b.Subtype); err != nil {
				return err
			}
			if err := tgt.SubmitLayout(m.cfg.LayoutParam, b.Encoded, func() error {
				return tgt.Click(saveButton)
			}); err != nil {
				return fmt.Errorf("deploy %s/%s: %w", b.Report, b.Subtype, err)
			}
			m.metrics.AddDeploy(report)
			m.logger.Info("Deployed layout",
				zap.String("report", b.Report),
				zap.String("subtype", b.Subtype))
		}
	}
	return nil
}

// createReport drives the target's new-report flow for a name absent from
// the target org.
func (m *Migrator) createReport(tgt *browser.Session, base, report string) error {
	m.logger.Info("Creating missing target report", zap.String("report", report))
	if err := tgt.Navigate(base + newReportPath); err != nil {
		return err
	}
	if err := tgt.Type(reportNameInput, report); err != nil {
		return err
	}
	return tgt.Click(saveButton)
}
