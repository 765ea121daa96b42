package telegram

import "gopkg.in/telebot.v3"

// Client defines an interface for sending messages via the admin Telegram
// bot. It decouples the application services from the bot library.
type Client interface {
	SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error
}
