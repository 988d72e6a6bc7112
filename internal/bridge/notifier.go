package bridge

import "context"

// Notifier delivers a text message to a chat. An empty chatID means the
// notifier's default chat.
type Notifier interface {
	Send(ctx context.Context, chatID, text string) error
}
