package telegram

import (
	"context"
	"fmt"
	"strconv"

	"weekly_toast_bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterAdminHandlers registers the operational trigger commands. All
// commands are restricted to the configured admin Telegram ID.
func RegisterAdminHandlers(ctx context.Context, b *telebot.Bot, adminService *app.AdminService, adminTelegramID int64, baseLogger *logrus.Entry) {
	b.Handle("/run_tick", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/run_tick",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send("You are not authorized to run this command.")
		}

		summary, err := adminService.TriggerTick(ctx, c.Sender().ID)
		if err != nil {
			handlerLogger.WithError(err).Error("Manual tick failed")
			return c.Send(fmt.Sprintf("Tick failed: %s", err.Error()))
		}
		handlerLogger.Info("Manual tick completed")
		return c.Send("Tick completed: " + summary)
	})

	b.Handle("/generate_toast", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/generate_toast",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send("You are not authorized to run this command.")
		}

		userID, ok := parseUserIDArg(c)
		if !ok {
			return c.Send("Usage: /generate_toast <userID>")
		}
		handlerLogger = handlerLogger.WithField("target_user_id", userID)

		msg, err := adminService.GenerateToastForUser(ctx, c.Sender().ID, userID)
		if err != nil {
			handlerLogger.WithError(err).Error("Forced toast generation failed")
			return c.Send(fmt.Sprintf("Generation failed: %s", err.Error()))
		}
		handlerLogger.Info("Forced toast generation completed")
		return c.Send(msg)
	})

	b.Handle("/simulate_toast", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/simulate_toast",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send("You are not authorized to run this command.")
		}

		userID, ok := parseUserIDArg(c)
		if !ok {
			return c.Send("Usage: /simulate_toast <userID>")
		}
		handlerLogger = handlerLogger.WithField("target_user_id", userID)

		msg, err := adminService.SimulateToastForUser(ctx, c.Sender().ID, userID)
		if err != nil {
			handlerLogger.WithError(err).Error("Simulated toast run failed")
			return c.Send(fmt.Sprintf("Simulation failed: %s", err.Error()))
		}
		handlerLogger.Info("Simulated toast run completed")
		return c.Send(msg)
	})
}

func parseUserIDArg(c telebot.Context) (int64, bool) {
	args := c.Args()
	if len(args) != 1 {
		return 0, false
	}
	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || userID <= 0 {
		return 0, false
	}
	return userID, true
}
