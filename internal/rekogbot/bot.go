package rekogbot

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/naseer2426/rekog/internal/rekog"
	"github.com/naseer2426/rekog/internal/settings"
)

// Bot ties the rewriter to the plugin options.
type Bot struct {
	Rewriter *rekog.Rewriter
	Settings settings.Store
	Logger   logrus.FieldLogger
}

func NewBot(rewriter *rekog.Rewriter, store settings.Store, logger logrus.FieldLogger) *Bot {
	return &Bot{
		Rewriter: rewriter,
		Settings: store,
		Logger:   logger,
	}
}

// HandleMessage rewrites the message text and reports whether anything changed.
// debug_mode is read on every call so option changes apply to the next message.
func (b *Bot) HandleMessage(ctx context.Context, requestID string, message *Message) (string, bool) {
	if message == nil || message.Text == "" {
		return "", false
	}

	debug := settings.DebugEnabled(b.Settings)
	rewritten := b.Rewriter.WithDebug(debug).Rewrite(ctx, message.Text)
	changed := rewritten != message.Text

	if changed && b.Logger != nil {
		b.Logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"from":       message.From.Username,
		}).Info("message rewritten")
	}
	return rewritten, changed
}
