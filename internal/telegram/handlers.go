package telegram

import (
	"context"
	"strings"

	tg "github.com/amarnathcjd/gogram/telegram"

	"github.com/ultraxas/musicbot/internal/bot"
)

// RegisterHandlers wires the command set and callback router onto the
// underlying client. ctx is the bot's base context; handlers stop doing work
// once it is cancelled.
func (c *Client) RegisterHandlers(ctx context.Context, cmds *bot.Commands, router *bot.Router) {
	type commandHandler func(context.Context, bot.MessageEvent)

	commands := map[string]commandHandler{
		"/start":    cmds.HandleStart,
		"/help":     cmds.HandleHelp,
		"/legal":    cmds.HandleLegal,
		"/language": cmds.HandleLanguage,
		"/stop":     cmds.HandleStop,
	}
	for pattern, handler := range commands {
		handler := handler
		c.tg.AddMessageHandler(pattern, func(m *tg.NewMessage) error {
			if ctx.Err() != nil {
				return nil
			}
			handler(ctx, messageEvent(m))
			return nil
		})
	}

	c.tg.AddMessageHandler(tg.OnNewMessage, func(m *tg.NewMessage) error {
		if ctx.Err() != nil {
			return nil
		}
		// Commands are dispatched by their own handlers above.
		if strings.HasPrefix(strings.TrimSpace(m.Text()), "/") {
			return nil
		}
		cmds.HandleText(ctx, messageEvent(m))
		return nil
	})

	c.tg.AddCallbackHandler(tg.OnCallbackQuery, func(q *tg.CallbackQuery) error {
		if ctx.Err() != nil {
			return nil
		}
		done := c.trackQuery(q)
		defer done()
		router.HandleCallback(ctx, bot.CallbackEvent{
			QueryID:   q.QueryID,
			ChatID:    q.ChatID,
			MessageID: q.MessageID,
			SenderID:  q.SenderID,
			Data:      q.DataString(),
		})
		return nil
	})
}

func messageEvent(m *tg.NewMessage) bot.MessageEvent {
	return bot.MessageEvent{
		ChatID:   m.ChatID(),
		SenderID: m.SenderID(),
		Text:     m.Text(),
	}
}
