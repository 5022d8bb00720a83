// Package bot contains the transport-neutral chat layer: the Messenger
// interface the bot speaks through, inline keyboard rendering, the callback
// router that drives the search/pick/download state machine, and the command
// handlers.
//
// The Telegram client itself lives in internal/telegram; everything here is
// written against [Messenger] so the whole interaction flow is testable with
// the recording mock in internal/bot/mock.
package bot

import (
	"context"

	"github.com/ultraxas/musicbot/pkg/provider/media"
)

// Button is one inline keyboard button carrying a callback payload.
type Button struct {
	Text string
	Data string
}

// Keyboard is an inline keyboard: rows of buttons. A nil Keyboard means no
// keyboard (and, on edit, removal of an existing one).
type Keyboard [][]Button

// Audio describes an audio file to deliver to a chat.
type Audio struct {
	// Path is the local file to upload.
	Path string

	// Title and Performer populate the player metadata shown by clients.
	Title     string
	Performer string

	// Caption is the message text attached to the audio.
	Caption string
}

// Messenger is the narrow surface the bot needs from the chat transport.
// Implementations must be safe for concurrent use.
type Messenger interface {
	// SendText sends a message and returns its identifier for later edits.
	SendText(ctx context.Context, chatID int64, text string, kb Keyboard) (messageID int32, err error)

	// EditText replaces the text and keyboard of an existing message.
	EditText(ctx context.Context, chatID int64, messageID int32, text string, kb Keyboard) error

	// SendAudio uploads and sends an audio file.
	SendAudio(ctx context.Context, chatID int64, audio Audio) error

	// AnswerCallback acknowledges an inline-button press. A non-empty text
	// with alert set pops a modal on the pressing client.
	AnswerCallback(ctx context.Context, queryID int64, text string, alert bool) error
}

// MessageEvent is an incoming text message.
type MessageEvent struct {
	ChatID   int64
	SenderID int64
	Text     string
}

// CallbackEvent is an incoming inline-button press.
type CallbackEvent struct {
	// QueryID acknowledges the press via [Messenger.AnswerCallback].
	QueryID int64

	// ChatID is the chat the pressed message lives in. Compared against the
	// chat embedded in the payload to reject cross-chat replays.
	ChatID int64

	// MessageID is the message carrying the keyboard, for in-place edits.
	MessageID int32

	// SenderID is the pressing user, for localization.
	SenderID int64

	// Data is the raw callback payload.
	Data string
}

// SearchRequest asks the search orchestrator to run one search and render the
// first result page into the chat.
type SearchRequest struct {
	ChatID int64
	UserID int64
	Query  string
}

// Searcher runs the search flow. Implemented by internal/search.
type Searcher interface {
	Search(ctx context.Context, req SearchRequest) error
}

// DownloadRequest asks the download orchestrator to fetch one candidate and
// deliver it to the chat.
type DownloadRequest struct {
	ChatID int64

	// MessageID is the result-list message, edited to show progress.
	MessageID int32

	UserID    int64
	Candidate media.Candidate
}

// Downloader starts one fetch-and-deliver cycle. Start returns as soon as the
// work is handed off; the orchestrator bounds its own concurrency and reports
// the outcome into the chat itself. Implemented by internal/download.
type Downloader interface {
	Start(ctx context.Context, req DownloadRequest)
}
