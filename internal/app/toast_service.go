// internal/app/toast_service.go
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"weekly_toast_bot/internal/domain/activity"
	"weekly_toast_bot/internal/domain/note"
	"weekly_toast_bot/internal/domain/provider"
	"weekly_toast_bot/internal/domain/toast"
	"weekly_toast_bot/internal/domain/user"
	idb "weekly_toast_bot/internal/infra/database"
	"weekly_toast_bot/internal/infra/speech"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RunMode selects whether the pipeline persists its results. Simulated runs
// execute the identical pipeline with a no-op toast store and no idempotency
// history, so admins can exercise the flow without touching user data.
type RunMode int

const (
	RunModeProduction RunMode = iota
	RunModeSimulated
)

// ProcessOptions parameterizes one user's trip through the pipeline.
// Force bypasses the "is today the day" check only; the idempotency guard
// still applies (in production mode).
type ProcessOptions struct {
	Mode  RunMode
	Force bool
	Now   time.Time
}

// Skip conditions. These are not failures: a tick logs them at debug level
// and moves on, and the admin surface reports them as plain messages.
var (
	ErrNotEligibleToday = errors.New("today is not the user's toast day")
	ErrAlreadyGenerated = errors.New("a toast already covers this window")
)

// TickReport summarizes one scheduler tick.
type TickReport struct {
	Processed int
	Created   int
	Skipped   int
	Failed    int
}

func (r TickReport) Summary() string {
	return fmt.Sprintf("processed %d users: %d toasts created, %d skipped, %d failed",
		r.Processed, r.Created, r.Skipped, r.Failed)
}

const toastSystemPrompt = "You are a warm, encouraging friend writing a short celebratory toast. " +
	"Given a person's journal reflections from the past week, write an uplifting toast " +
	"that celebrates what they did and experienced. Keep it under 150 words, speak " +
	"directly to them, and end on an encouraging note. Do not invent events they did not mention."

// ToastServiceDeps wires the service's collaborators. Language and Speech may
// be nil: the pipeline then uses templated text and skips narration attempts.
type ToastServiceDeps struct {
	Users    user.Repository
	Notes    note.Repository
	Toasts   toast.Repository
	Activity activity.Logger
	Language provider.Language
	Speech   provider.Speech
	Storage  provider.ObjectStore
	VoiceFor func(user.VoiceStyle) string
	Logger   *logrus.Entry
	Now      func() time.Time
}

// ToastService runs the toast-generation pipeline: eligibility, idempotency
// guard, content synthesis, durable insert, narration, activity log.
type ToastService struct {
	users    user.Repository
	notes    note.Repository
	toasts   toast.Repository
	activity activity.Logger
	language provider.Language
	speech   provider.Speech
	storage  provider.ObjectStore
	voiceFor func(user.VoiceStyle) string
	logger   *logrus.Entry
	now      func() time.Time

	simToasts *noopToastRepository
}

func NewToastService(deps ToastServiceDeps) *ToastService {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.VoiceFor == nil {
		deps.VoiceFor = speech.VoiceIDFor
	}
	return &ToastService{
		users:     deps.Users,
		notes:     deps.Notes,
		toasts:    deps.Toasts,
		activity:  deps.Activity,
		language:  deps.Language,
		speech:    deps.Speech,
		storage:   deps.Storage,
		voiceFor:  deps.VoiceFor,
		logger:    deps.Logger,
		now:       deps.Now,
		simToasts: &noopToastRepository{},
	}
}

// RunTick enumerates active users and runs the per-user pipeline for each,
// sequentially. One user's failure never aborts the tick for the rest. The
// returned error is non-nil only for tick-fatal conditions (cannot enumerate
// users); the next scheduled tick retries naturally.
func (s *ToastService) RunTick(ctx context.Context, mode RunMode) (TickReport, error) {
	var report TickReport

	users, err := s.users.ListActive(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list active users: %w", err)
	}
	now := s.now()

	for _, u := range users {
		report.Processed++
		created, err := s.processUserIsolated(ctx, u, ProcessOptions{Mode: mode, Now: now})
		switch {
		case err == nil && created != nil:
			report.Created++
		case errors.Is(err, ErrNotEligibleToday),
			errors.Is(err, ErrAlreadyGenerated),
			errors.Is(err, toast.ErrNoReflections):
			report.Skipped++
			s.logger.WithField("user_id", u.ID).WithError(err).Debug("User skipped this tick")
		case err != nil:
			report.Failed++
			s.logger.WithField("user_id", u.ID).WithError(err).
				Error("Toast generation failed for user; continuing with remaining users")
		}
	}
	return report, nil
}

// GenerateForUser runs the pipeline for a single user on demand, bypassing
// only the eligibility-day check. Same code path as the scheduled tick.
func (s *ToastService) GenerateForUser(ctx context.Context, userID int64, mode RunMode) (*toast.Toast, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}
	return s.processUserIsolated(ctx, u, ProcessOptions{Mode: mode, Force: true, Now: s.now()})
}

// processUserIsolated converts panics from provider libraries or stores into
// errors so a single user can never take down the whole tick.
func (s *ToastService) processUserIsolated(ctx context.Context, u *user.User, opts ProcessOptions) (t *toast.Toast, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during toast generation for user %d: %v", u.ID, r)
		}
	}()
	return s.processUser(ctx, u, opts)
}

// processUser is the 8-step pipeline for one user. Text creation always
// happens before narration: a crash in between leaves a valid toast with a
// null audio_url, repairable by a later regenerate action.
func (s *ToastService) processUser(ctx context.Context, u *user.User, opts ProcessOptions) (*toast.Toast, error) {
	userLog := s.logger.WithField("user_id", u.ID)

	// Step 1–2: eligibility.
	if !opts.Force && !toast.IsToastDay(u.Timezone, time.Weekday(u.WeeklyToastDay), opts.Now) {
		return nil, ErrNotEligibleToday
	}
	windowStart, windowEnd := toast.WeeklyWindow(opts.Now)

	// Step 3: idempotency guard.
	generated, err := s.alreadyGenerated(ctx, opts.Mode, u.ID, toast.TypeWeekly, windowStart)
	if err != nil {
		return nil, fmt.Errorf("idempotency check failed: %w", err)
	}
	if generated {
		return nil, ErrAlreadyGenerated
	}

	// Step 4: gather notes; empty is a per-user skip, not an error.
	notes, err := s.notes.ListByUserAndDateRange(ctx, u.ID, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}
	if len(notes) == 0 {
		return nil, toast.ErrNoReflections
	}

	// Step 5: content synthesis (language provider with templated fallback).
	contents := make([]string, 0, len(notes))
	noteIDs := make([]int64, 0, len(notes))
	for _, n := range notes {
		contents = append(contents, n.Content)
		noteIDs = append(noteIDs, n.ID)
	}
	content, err := s.Synthesize(ctx, contents)
	if err != nil {
		return nil, err
	}

	// Re-check the guard right before the write: the provider call above may
	// have been slow enough for a concurrent trigger to slip in.
	generated, err = s.alreadyGenerated(ctx, opts.Mode, u.ID, toast.TypeWeekly, windowStart)
	if err != nil {
		return nil, fmt.Errorf("idempotency re-check failed: %w", err)
	}
	if generated {
		return nil, ErrAlreadyGenerated
	}

	// Step 6: durability checkpoint. The text artifact exists from here on
	// even if narration fails.
	t := &toast.Toast{
		UserID:        u.ID,
		Content:       content,
		NoteIDs:       noteIDs,
		Type:          toast.TypeWeekly,
		IntervalStart: windowStart,
		IntervalEnd:   windowEnd,
	}
	store := s.toastStore(opts.Mode)
	if err := store.Create(ctx, t); err != nil {
		if errors.Is(err, idb.ErrDuplicateToast) {
			// Lost the race to a concurrent trigger; the other toast stands.
			userLog.Info("Duplicate toast insert rejected by constraint; treating as already generated")
			return nil, ErrAlreadyGenerated
		}
		return nil, fmt.Errorf("failed to create toast: %w", err)
	}
	toastLog := userLog.WithField("toast_id", t.ID)
	toastLog.Info("Toast created")

	// Step 7: narration. Failure is never fatal to the toast's existence.
	if s.speech != nil && opts.Mode == RunModeProduction {
		result := s.narrate(ctx, t.Content, u.VoiceStyle, u.ID)
		if result.OK() {
			t.AudioURL = sql.NullString{String: result.AudioURL, Valid: true}
		} else {
			t.NarrationError = sql.NullString{String: string(result.Failure), Valid: true}
		}
		if err := store.UpdateNarration(ctx, t.ID, t.AudioURL, t.NarrationError); err != nil {
			toastLog.WithError(err).Error("Failed to record narration outcome")
		}
		if !result.OK() {
			s.logActivity(ctx, opts.Mode, u.ID, activity.EventNarrationFailed, map[string]any{
				"toast_id": t.ID,
				"reason":   string(result.Failure),
			})
		}
	}

	// Step 8: activity log, fire-and-forget.
	s.logActivity(ctx, opts.Mode, u.ID, activity.EventToastGenerated, map[string]any{
		"toast_id":   t.ID,
		"note_count": len(noteIDs),
		"narrated":   t.AudioURL.Valid,
	})
	return t, nil
}

// Synthesize turns ordered reflection texts into toast prose. A single
// attempt is made against the language provider; on any failure (or when no
// provider is configured) the deterministic templated fallback is used. An
// empty input fails with toast.ErrNoReflections.
func (s *ToastService) Synthesize(ctx context.Context, contents []string) (string, error) {
	if len(contents) == 0 {
		return "", toast.ErrNoReflections
	}
	if s.language == nil {
		return toast.FallbackMessage(len(contents)), nil
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Here are my %d reflections from this week:\n", len(contents))
	for i, c := range contents {
		fmt.Fprintf(&prompt, "%d. %s\n", i+1, c)
	}

	out, err := s.language.Complete(ctx, toastSystemPrompt, prompt.String())
	if err != nil || strings.TrimSpace(out) == "" {
		s.logger.WithError(err).Warn("Language provider unavailable, using templated fallback")
		return toast.FallbackMessage(len(contents)), nil
	}
	return strings.TrimSpace(out), nil
}

// narrate converts toast prose into an audio asset: speech synthesis, then
// upload (object storage with local-disk fallback). Always returns a
// terminal NarrationResult, never an error.
func (s *ToastService) narrate(ctx context.Context, text string, style user.VoiceStyle, userID int64) toast.NarrationResult {
	narrationLog := s.logger.WithField("user_id", userID)

	audio, err := s.speech.SynthesizeSpeech(ctx, text, s.voiceFor(style))
	if err != nil {
		reason := speech.Classify(err)
		narrationLog.WithError(err).WithField("reason", reason).Warn("Speech synthesis failed")
		return toast.NarrationFailed(reason)
	}

	filename := uuid.NewString() + ".mp3"
	url, err := s.storage.Upload(ctx, audio, filename)
	if err != nil {
		narrationLog.WithError(err).Warn("Audio upload failed")
		return toast.NarrationFailed(toast.NarrationFailureUnknown)
	}
	return toast.NarrationSuccess(url)
}

// alreadyGenerated is the Idempotency Guard: any toast of the same type
// created within the trailing window means this window is fulfilled.
// Simulated runs keep no history, so the guard always passes for them.
func (s *ToastService) alreadyGenerated(ctx context.Context, mode RunMode, userID int64, toastType toast.Type, windowStart time.Time) (bool, error) {
	if mode == RunModeSimulated {
		return false, nil
	}
	existing, err := s.toasts.ListByUserAndTypeSince(ctx, userID, toastType, windowStart)
	if err != nil {
		return false, err
	}
	return len(existing) > 0, nil
}

func (s *ToastService) toastStore(mode RunMode) toast.Repository {
	if mode == RunModeSimulated {
		return s.simToasts
	}
	return s.toasts
}

func (s *ToastService) logActivity(ctx context.Context, mode RunMode, userID int64, eventType string, metadata map[string]any) {
	if mode == RunModeSimulated || s.activity == nil {
		return
	}
	if err := s.activity.Log(ctx, userID, eventType, metadata); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("Failed to write activity log entry")
	}
}

// noopToastRepository is the no-op persistence adapter behind simulated runs.
// It hands out fake IDs so the rest of the pipeline behaves normally.
type noopToastRepository struct {
	nextID int64
}

func (r *noopToastRepository) Create(_ context.Context, t *toast.Toast) error {
	t.ID = atomic.AddInt64(&r.nextID, 1)
	t.CreatedAt = time.Now()
	return nil
}

func (r *noopToastRepository) UpdateNarration(context.Context, int64, sql.NullString, sql.NullString) error {
	return nil
}

func (r *noopToastRepository) GetByID(context.Context, int64) (*toast.Toast, error) {
	return nil, idb.ErrToastNotFound
}

func (r *noopToastRepository) ListByUserAndTypeSince(context.Context, int64, toast.Type, time.Time) ([]*toast.Toast, error) {
	return nil, nil
}
