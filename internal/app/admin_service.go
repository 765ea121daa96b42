package app

import (
	"context"
	"errors"
	"fmt"

	"weekly_toast_bot/internal/domain/toast"
	idb "weekly_toast_bot/internal/infra/database"
)

// Custom application-level errors for admin service
var ErrAdminNotAuthorized = fmt.Errorf("performing user is not authorized as an admin")

// AdminService exposes the operational trigger surface: run a tick now,
// force-generate for one user, or run a simulated pass. Used for testing and
// diagnostics, not part of the product API.
type AdminService struct {
	toastService    *ToastService
	adminTelegramID int64
}

func NewAdminService(ts *ToastService, adminID int64) *AdminService {
	return &AdminService{
		toastService:    ts,
		adminTelegramID: adminID,
	}
}

// TriggerTick runs one full scheduler tick immediately and reports a
// human-readable outcome.
func (s *AdminService) TriggerTick(ctx context.Context, performingAdminID int64) (string, error) {
	if performingAdminID != s.adminTelegramID {
		return "", ErrAdminNotAuthorized
	}

	report, err := s.toastService.RunTick(ctx, RunModeProduction)
	if err != nil {
		return "", fmt.Errorf("tick failed: %w", err)
	}
	return report.Summary(), nil
}

// GenerateToastForUser forces the pipeline for one user, bypassing only the
// eligibility-day check. The idempotency guard still applies.
func (s *AdminService) GenerateToastForUser(ctx context.Context, performingAdminID, userID int64) (string, error) {
	if performingAdminID != s.adminTelegramID {
		return "", ErrAdminNotAuthorized
	}

	t, err := s.toastService.GenerateForUser(ctx, userID, RunModeProduction)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyGenerated):
			return fmt.Sprintf("User %d already has a toast covering this window.", userID), nil
		case errors.Is(err, toast.ErrNoReflections):
			return fmt.Sprintf("User %d has no reflections in the last %d days; nothing to toast.", userID, toast.WeeklyWindowDays), nil
		case errors.Is(err, idb.ErrUserNotFound):
			return fmt.Sprintf("User %d not found.", userID), nil
		default:
			return "", err
		}
	}

	if t.AudioURL.Valid {
		return fmt.Sprintf("Toast %d created for user %d with narration: %s", t.ID, userID, t.AudioURL.String), nil
	}
	if t.NarrationError.Valid {
		reason := toast.NarrationFailure(t.NarrationError.String)
		return fmt.Sprintf("Toast %d created for user %d; narration failed (%s). %s", t.ID, userID, t.NarrationError.String, reason.Message()), nil
	}
	return fmt.Sprintf("Toast %d created for user %d (text only).", t.ID, userID), nil
}

// SimulateToastForUser runs the identical pipeline with the no-op
// persistence adapter and returns the text that would have been stored.
func (s *AdminService) SimulateToastForUser(ctx context.Context, performingAdminID, userID int64) (string, error) {
	if performingAdminID != s.adminTelegramID {
		return "", ErrAdminNotAuthorized
	}

	t, err := s.toastService.GenerateForUser(ctx, userID, RunModeSimulated)
	if err != nil {
		switch {
		case errors.Is(err, toast.ErrNoReflections):
			return fmt.Sprintf("User %d has no reflections in the last %d days; nothing to simulate.", userID, toast.WeeklyWindowDays), nil
		case errors.Is(err, idb.ErrUserNotFound):
			return fmt.Sprintf("User %d not found.", userID), nil
		default:
			return "", err
		}
	}
	return fmt.Sprintf("Simulated toast for user %d (not persisted):\n\n%s", userID, t.Content), nil
}
