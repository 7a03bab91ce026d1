// pkg/browser/intercept.go
package browser

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/David-Botos/report-migrator/pkg/layout"
)

// ErrNoCapture indicates the save flow completed without any submission
// carrying the layout parameter. Surfacing this keeps a silently lost report
// version from leaving a gap in the blob set.
var ErrNoCapture = errors.New("save flow completed without a layout-bearing submission")

// CaptureLayout watches outgoing form submissions while drive walks the UI
// through a save flow. The submission carrying the layout parameter is sent
// unmodified; its embedded layout encoding is returned. Requests without the
// parameter are unrelated traffic and pass straight through.
func (s *Session) CaptureLayout(param string, drive func() error) (string, error) {
	router := s.page.HijackRequests()
	captured := make(chan string, 1)

	err := router.Add("*", proto.NetworkResourceTypeDocument, func(h *rod.Hijack) {
		defer h.ContinueRequest(&proto.FetchContinueRequest{})

		if h.Request.Method() != http.MethodPost {
			return
		}
		blob, err := layout.Extract(h.Request.Body(), param)
		if err != nil {
			return // not the submission carrying layout data
		}
		select {
		case captured <- blob:
			if s.logger != nil {
				s.logger.Debug("Captured layout submission",
					zap.String("url", h.Request.URL().String()),
					zap.Int("encodedLength", len(blob)))
			}
		default:
		}
	})
	if err != nil {
		return "", fmt.Errorf("install capture hook: %w", err)
	}

	go router.Run()
	defer func() { _ = router.Stop() }()

	if err := drive(); err != nil {
		return "", err
	}

	select {
	case blob := <-captured:
		return blob, nil
	default:
		return "", ErrNoCapture
	}
}

// SubmitLayout substitutes the layout parameter of the matching form
// submission while drive walks the target UI through its save flow. All
// other requests pass through untouched.
func (s *Session) SubmitLayout(param, encoded string, drive func() error) error {
	router := s.page.HijackRequests()

	err := router.Add("*", proto.NetworkResourceTypeDocument, func(h *rod.Hijack) {
		if h.Request.Method() != http.MethodPost {
			h.ContinueRequest(&proto.FetchContinueRequest{})
			return
		}
		body := h.Request.Body()
		if _, err := layout.Extract(body, param); err != nil {
			h.ContinueRequest(&proto.FetchContinueRequest{})
			return
		}
		replaced := layout.ReplaceParam(body, param, encoded)
		if s.logger != nil {
			s.logger.Debug("Substituting layout submission",
				zap.String("url", h.Request.URL().String()),
				zap.Int("encodedLength", len(encoded)))
		}
		h.ContinueRequest(&proto.FetchContinueRequest{PostData: []byte(replaced)})
	})
	if err != nil {
		return fmt.Errorf("install substitution hook: %w", err)
	}

	go router.Run()
	defer func() { _ = router.Stop() }()

	return drive()
}
