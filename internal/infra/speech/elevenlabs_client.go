// Package speech provides an ElevenLabs-compatible text-to-speech client and
// the classification of its failures into the narration taxonomy.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"weekly_toast_bot/internal/domain/toast"
)

// ProviderError is a speech-provider failure carrying its classified reason.
type ProviderError struct {
	Reason     toast.NarrationFailure
	StatusCode int
	Detail     string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("speech provider failure (%s, status %d): %s", e.Reason, e.StatusCode, e.Detail)
}

// Classify maps any error from SynthesizeSpeech to a narration failure
// reason. Unrecognized errors are UNKNOWN, never a panic or passthrough.
func Classify(err error) toast.NarrationFailure {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Reason
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return toast.NarrationFailureTimeout
	}
	// net/http wraps the context error in a *url.Error on client timeout.
	var timeoutErr interface{ Timeout() bool }
	if errors.As(err, &timeoutErr) && timeoutErr.Timeout() {
		return toast.NarrationFailureTimeout
	}
	return toast.NarrationFailureUnknown
}

// ElevenLabsClient implements provider.Speech.
type ElevenLabsClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

func NewElevenLabsClient(apiKey, baseURL string, timeout time.Duration) *ElevenLabsClient {
	return &ElevenLabsClient{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

type synthesizeRequest struct {
	Text          string         `json:"text"`
	ModelID       string         `json:"model_id"`
	VoiceSettings map[string]any `json:"voice_settings,omitempty"`
}

type providerErrorBody struct {
	Detail struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"detail"`
}

// SynthesizeSpeech converts text to audio bytes using the given voice ID.
// Failures come back as *ProviderError (or a timeout) so the caller can
// classify them; they never escape as panics.
func (c *ElevenLabsClient) SynthesizeSpeech(ctx context.Context, text, voiceID string) ([]byte, error) {
	payload, err := json.Marshal(synthesizeRequest{
		Text:    text,
		ModelID: "eleven_multilingual_v2",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode speech request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build speech request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &ProviderError{
			Reason:     classifyStatus(resp.StatusCode, body),
			StatusCode: resp.StatusCode,
			Detail:     truncate(string(body), 200),
		}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read speech response: %w", err)
	}
	if len(audio) == 0 {
		return nil, &ProviderError{Reason: toast.NarrationFailureUnknown, StatusCode: resp.StatusCode, Detail: "empty audio body"}
	}
	return audio, nil
}

func classifyStatus(status int, body []byte) toast.NarrationFailure {
	var parsed providerErrorBody
	_ = json.Unmarshal(body, &parsed)
	if strings.Contains(parsed.Detail.Status, "quota") {
		return toast.NarrationFailureQuotaExceeded
	}
	switch status {
	case http.StatusTooManyRequests:
		return toast.NarrationFailureRateLimited
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return toast.NarrationFailureTimeout
	case http.StatusPaymentRequired:
		return toast.NarrationFailureQuotaExceeded
	default:
		return toast.NarrationFailureUnknown
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
