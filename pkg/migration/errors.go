// pkg/migration/errors.go
package migration

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Kind identifies the class of a fatal migration error. Every kind halts the
// run; none is retried.
type Kind int

const (
	// KindConfiguration covers bad or missing run configuration,
	// detected pre-flight.
	KindConfiguration Kind = iota
	// KindAuthentication covers a failed org login.
	KindAuthentication
	// KindMissingReport covers named reports absent from an org.
	KindMissingReport
	// KindMissingSchemaReference covers fields or owning objects with no
	// target schema counterpart.
	KindMissingSchemaReference
	// KindExtractionFailure covers save flows that completed without a
	// layout-bearing submission.
	KindExtractionFailure
)

// String returns a string representation of the error kind.
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "Configuration"
	case KindAuthentication:
		return "Authentication"
	case KindMissingReport:
		return "MissingReport"
	case KindMissingSchemaReference:
		return "MissingSchemaReference"
	case KindExtractionFailure:
		return "ExtractionFailure"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// FatalError is a batch of same-stage failures surfaced together. Collecting
// the whole stage before halting keeps one run from being repeated once per
// missing item through the slow browser-driven stages.
type FatalError struct {
	Kind    Kind
	Details []string
}

// Error lists every failure in the batch.
func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, strings.Join(e.Details, "; "))
}

// Collector accumulates same-stage failures.
type Collector struct {
	kind    Kind
	details []string
	logger  *zap.Logger
}

// NewCollector creates a collector for one error kind.
func NewCollector(kind Kind, logger *zap.Logger) *Collector {
	return &Collector{kind: kind, logger: logger}
}

// Add records one failure.
func (c *Collector) Add(detail string) {
	c.details = append(c.details, detail)
	if c.logger != nil {
		c.logger.Warn("Recorded migration error",
			zap.String("kind", c.kind.String()),
			zap.String("detail", detail))
	}
}

// Addf records one formatted failure.
func (c *Collector) Addf(format string, args ...interface{}) {
	c.Add(fmt.Sprintf(format, args...))
}

// Err returns the batch as a FatalError, or nil when nothing was recorded.
func (c *Collector) Err() error {
	if len(c.details) == 0 {
		return nil
	}
	return &FatalError{Kind: c.kind, Details: c.details}
}
