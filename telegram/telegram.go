// Copyright (c) 2025 BVK Chaitanya

// Package telegram sends one-shot notification messages.
package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
)

// Notify sends the text to the chat as the given bot.
func Notify(ctx context.Context, token, chatID, text string) error {
	b, err := bot.New(token)
	if err != nil {
		return fmt.Errorf("could not create telegram bot: %w", err)
	}

	slog.Info("sending notification", "chat-id", chatID, "message", text)
	m := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if _, err := b.SendMessage(ctx, m); err != nil {
		return fmt.Errorf("could not send telegram message: %w", err)
	}
	return nil
}
