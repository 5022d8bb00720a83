// Package telegram adapts the gogram MTProto client to the [bot.Messenger]
// interface. All gogram-specific types stay inside this package; the rest of
// the bot only sees the Messenger surface.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	tg "github.com/amarnathcjd/gogram/telegram"
	"golang.org/x/time/rate"

	"github.com/ultraxas/musicbot/internal/bot"
)

// Outgoing requests are throttled below Telegram's global bot limit so a
// burst of downloads finishing at once does not trip a FloodWait.
const (
	sendInterval = time.Second / 25
	sendBurst    = 5
)

// Config holds the MTProto credentials.
type Config struct {
	AppID    int32
	AppHash  string
	BotToken string
}

// Client wraps a gogram client and implements [bot.Messenger].
type Client struct {
	tg      *tg.Client
	limiter *rate.Limiter
	log     *slog.Logger

	// pending maps query IDs to their in-flight callback updates for the
	// duration of one dispatch; gogram answers a press through the update
	// object rather than the bare ID.
	mu      sync.Mutex
	pending map[int64]*tg.CallbackQuery
}

// New creates a Client. The connection is established by [Client.Connect].
func New(cfg Config, log *slog.Logger) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("telegram: bot token is required")
	}

	c, err := tg.NewClient(tg.ClientConfig{
		AppID:   cfg.AppID,
		AppHash: cfg.AppHash,
	})
	if err != nil {
		return nil, fmt.Errorf("telegram: create client: %w", err)
	}

	return &Client{
		tg:      c,
		limiter: rate.NewLimiter(rate.Every(sendInterval), sendBurst),
		log:     log,
		pending: make(map[int64]*tg.CallbackQuery),
	}, nil
}

// Connect dials Telegram and authenticates as the bot.
func (c *Client) Connect(cfg Config) error {
	if _, err := c.tg.Conn(); err != nil {
		return fmt.Errorf("telegram: connect: %w", err)
	}
	if err := c.tg.LoginBot(cfg.BotToken); err != nil {
		return fmt.Errorf("telegram: bot login: %w", err)
	}
	c.log.Info("telegram client connected")
	return nil
}

// Idle blocks until the client disconnects.
func (c *Client) Idle() {
	c.tg.Idle()
}

// Stop disconnects the client.
func (c *Client) Stop() {
	c.tg.Stop()
}

// Ready is the readiness probe: nil while the MTProto connection is up.
func (c *Client) Ready(context.Context) error {
	if !c.tg.IsConnected() {
		return fmt.Errorf("telegram: not connected")
	}
	return nil
}

// SendText implements [bot.Messenger].
func (c *Client) SendText(ctx context.Context, chatID int64, text string, kb bot.Keyboard) (int32, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	msg, err := c.tg.SendMessage(chatID, text, &tg.SendOptions{
		ReplyMarkup: buildMarkup(kb),
	})
	if err != nil {
		return 0, fmt.Errorf("telegram: send message: %w", err)
	}
	return msg.ID, nil
}

// EditText implements [bot.Messenger].
func (c *Client) EditText(ctx context.Context, chatID int64, messageID int32, text string, kb bot.Keyboard) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := c.tg.EditMessage(chatID, messageID, text, &tg.SendOptions{
		ReplyMarkup: buildMarkup(kb),
	})
	if err != nil {
		return fmt.Errorf("telegram: edit message: %w", err)
	}
	return nil
}

// SendAudio implements [bot.Messenger]. The title and performer attributes
// drive the audio player UI on the receiving client.
func (c *Client) SendAudio(ctx context.Context, chatID int64, audio bot.Audio) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := c.tg.SendMedia(chatID, audio.Path, &tg.MediaOptions{
		Caption: audio.Caption,
		Attributes: []tg.DocumentAttribute{
			&tg.DocumentAttributeAudio{
				Title:     audio.Title,
				Performer: audio.Performer,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("telegram: send audio: %w", err)
	}
	return nil
}

// AnswerCallback implements [bot.Messenger]. The press must still be in
// flight; the router acknowledges synchronously within its dispatch.
func (c *Client) AnswerCallback(_ context.Context, queryID int64, text string, alert bool) error {
	c.mu.Lock()
	q, ok := c.pending[queryID]
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("telegram: unknown callback query %d", queryID)
	}

	_, err := q.Answer(text, &tg.CallbackOptions{Alert: alert})
	if err != nil {
		return fmt.Errorf("telegram: answer callback: %w", err)
	}
	return nil
}

// trackQuery registers an in-flight press and returns its removal func.
func (c *Client) trackQuery(q *tg.CallbackQuery) func() {
	c.mu.Lock()
	c.pending[q.QueryID] = q
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.pending, q.QueryID)
		c.mu.Unlock()
	}
}

// buildMarkup converts the transport-neutral keyboard to gogram's inline
// markup. A nil keyboard yields nil markup, which clears buttons on edit.
func buildMarkup(kb bot.Keyboard) tg.ReplyMarkup {
	if kb == nil {
		return nil
	}
	b := tg.NewKeyboard()
	for _, row := range kb {
		buttons := make([]tg.KeyboardButton, 0, len(row))
		for _, btn := range row {
			buttons = append(buttons, tg.Button.Data(btn.Text, btn.Data))
		}
		b.AddRow(buttons...)
	}
	return b.Build()
}
