package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	retry "github.com/avast/retry-go/v4"
	"github.com/rs/zerolog"
)

// FormRelay forwards contact-form submissions to the third-party
// form-to-email service. It runs alongside the database-backed submission
// and is strictly best effort: a dead relay never blocks an application.
type FormRelay struct {
	endpoint   string
	httpClient *http.Client
	log        zerolog.Logger
	attempts   uint
}

// NewFormRelay creates a relay client. An empty endpoint disables the relay
// entirely; Forward then reports success without sending anything.
func NewFormRelay(endpoint string, log zerolog.Logger) *FormRelay {
	return &FormRelay{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
		attempts:   3,
	}
}

// Forward posts the form payload to the relay, retrying transient failures
// a few times before giving up.
func (fr *FormRelay) Forward(ctx context.Context, form map[string]string) error {
	if fr.endpoint == "" {
		return nil
	}

	payload, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("[Forward] failed to encode form: %w", err)
	}

	err = retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, fr.endpoint, bytes.NewReader(payload))
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Content-Type", "application/json")
			resp, err := fr.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			io.Copy(io.Discard, resp.Body)
			if resp.StatusCode >= 500 {
				return fmt.Errorf("relay returned %d", resp.StatusCode)
			}
			if resp.StatusCode >= 400 {
				return retry.Unrecoverable(fmt.Errorf("relay rejected form: %d", resp.StatusCode))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(fr.attempts),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		fr.log.Warn().Err(err).Msg("form relay delivery failed")
		return fmt.Errorf("[Forward] relay delivery failed: %w", err)
	}
	return nil
}
