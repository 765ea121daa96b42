package speech

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"weekly_toast_bot/internal/domain/toast"
	"weekly_toast_bot/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeSpeech_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/voice-123", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("xi-api-key"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("audio-bytes"))
	}))
	defer srv.Close()

	c := NewElevenLabsClient("test-key", srv.URL, 5*time.Second)
	audio, err := c.SynthesizeSpeech(context.Background(), "cheers", "voice-123")
	require.NoError(t, err)
	assert.Equal(t, []byte("audio-bytes"), audio)
}

func TestSynthesizeSpeech_FailureClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   toast.NarrationFailure
	}{
		{"rate limited", http.StatusTooManyRequests, `{}`, toast.NarrationFailureRateLimited},
		{"quota in body", http.StatusUnauthorized, `{"detail":{"status":"quota_exceeded","message":"out of credits"}}`, toast.NarrationFailureQuotaExceeded},
		{"payment required", http.StatusPaymentRequired, `{}`, toast.NarrationFailureQuotaExceeded},
		{"gateway timeout", http.StatusGatewayTimeout, `{}`, toast.NarrationFailureTimeout},
		{"server error", http.StatusInternalServerError, `{}`, toast.NarrationFailureUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewElevenLabsClient("test-key", srv.URL, 5*time.Second)
			_, err := c.SynthesizeSpeech(context.Background(), "cheers", "voice-123")
			require.Error(t, err)
			assert.Equal(t, tc.want, Classify(err))
		})
	}
}

func TestSynthesizeSpeech_TimeoutClassifiedAsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("too late"))
	}))
	defer srv.Close()

	c := NewElevenLabsClient("test-key", srv.URL, 50*time.Millisecond)
	_, err := c.SynthesizeSpeech(context.Background(), "cheers", "voice-123")
	require.Error(t, err)
	assert.Equal(t, toast.NarrationFailureTimeout, Classify(err))
}

func TestClassify_UnrecognizedError(t *testing.T) {
	assert.Equal(t, toast.NarrationFailureUnknown, Classify(fmt.Errorf("something else")))
}

func TestVoiceIDFor(t *testing.T) {
	assert.Equal(t, "AZnzlk1XvdvUeBnXmlld", VoiceIDFor(user.VoiceStyleEnergetic))
	// Unknown styles resolve to the default voice, never an error.
	assert.Equal(t, defaultVoiceID, VoiceIDFor(user.VoiceStyle("OPERATIC")))
	assert.Equal(t, defaultVoiceID, VoiceIDFor(""))
}
