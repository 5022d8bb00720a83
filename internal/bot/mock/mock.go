// Package mock provides recording test doubles for the bot's transport and
// orchestrator interfaces.
package mock

import (
	"context"
	"sync"

	"github.com/ultraxas/musicbot/internal/bot"
)

// SentMessage records one SendText call.
type SentMessage struct {
	ChatID    int64
	Text      string
	Keyboard  bot.Keyboard
	MessageID int32
}

// Edit records one EditText call.
type Edit struct {
	ChatID    int64
	MessageID int32
	Text      string
	Keyboard  bot.Keyboard
}

// SentAudio records one SendAudio call.
type SentAudio struct {
	ChatID int64
	Audio  bot.Audio
}

// Ack records one AnswerCallback call.
type Ack struct {
	QueryID int64
	Text    string
	Alert   bool
}

// Messenger is a recording [bot.Messenger]. Message IDs are assigned
// sequentially starting at 1.
type Messenger struct {
	mu     sync.Mutex
	nextID int32

	// SendErr, EditErr and AudioErr are returned by the corresponding
	// methods when non-nil. The call is still recorded.
	SendErr  error
	EditErr  error
	AudioErr error

	Sent   []SentMessage
	Edits  []Edit
	Audios []SentAudio
	Acks   []Ack
}

// SendText records the call and returns the next message ID.
func (m *Messenger) SendText(_ context.Context, chatID int64, text string, kb bot.Keyboard) (int32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.Sent = append(m.Sent, SentMessage{ChatID: chatID, Text: text, Keyboard: kb, MessageID: m.nextID})
	if m.SendErr != nil {
		return 0, m.SendErr
	}
	return m.nextID, nil
}

// EditText records the call.
func (m *Messenger) EditText(_ context.Context, chatID int64, messageID int32, text string, kb bot.Keyboard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Edits = append(m.Edits, Edit{ChatID: chatID, MessageID: messageID, Text: text, Keyboard: kb})
	return m.EditErr
}

// SendAudio records the call.
func (m *Messenger) SendAudio(_ context.Context, chatID int64, audio bot.Audio) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Audios = append(m.Audios, SentAudio{ChatID: chatID, Audio: audio})
	return m.AudioErr
}

// AnswerCallback records the call.
func (m *Messenger) AnswerCallback(_ context.Context, queryID int64, text string, alert bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Acks = append(m.Acks, Ack{QueryID: queryID, Text: text, Alert: alert})
	return nil
}

// LastEdit returns the most recent recorded edit. ok is false when none
// happened.
func (m *Messenger) LastEdit() (Edit, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Edits) == 0 {
		return Edit{}, false
	}
	return m.Edits[len(m.Edits)-1], true
}

// Downloader is a recording [bot.Downloader].
type Downloader struct {
	mu       sync.Mutex
	Requests []bot.DownloadRequest
}

// Start records the request.
func (d *Downloader) Start(_ context.Context, req bot.DownloadRequest) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Requests = append(d.Requests, req)
}

// Searcher is a recording [bot.Searcher].
type Searcher struct {
	mu       sync.Mutex
	Err      error
	Requests []bot.SearchRequest
}

// Search records the request and returns the scripted error.
func (s *Searcher) Search(_ context.Context, req bot.SearchRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Requests = append(s.Requests, req)
	return s.Err
}
