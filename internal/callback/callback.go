// Package callback defines the inline-button payload format and its typed
// representation.
//
// The wire format is a fixed three-field, pipe-delimited string:
//
//	action|chat_id|param
//
// where action is one of "page", "stop" or "download", chat_id is the decimal
// chat identifier the buttons were rendered for, and param is an integer whose
// meaning depends on the action (target page index, unused for stop, absolute
// result index for download). Encode and Parse round-trip exactly; no field
// may contain the delimiter.
package callback

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is wrapped by [Parse] for any payload that does not conform to
// the wire format.
var ErrMalformed = errors.New("callback: malformed payload")

// Action names as they appear on the wire.
const (
	actionPage     = "page"
	actionStop     = "stop"
	actionDownload = "download"
)

// Action is a parsed inline-button payload. Exactly three concrete types
// implement it: [Page], [Stop] and [Download].
type Action interface {
	// Chat returns the chat identifier embedded in the payload.
	Chat() int64

	// encode renders the wire form. Unexported so the variant set is closed.
	encode() string
}

// Page requests switching the result message to another page.
type Page struct {
	ChatID int64
	Target int
}

// Chat implements [Action].
func (p Page) Chat() int64 { return p.ChatID }

func (p Page) encode() string {
	return fmt.Sprintf("%s|%d|%d", actionPage, p.ChatID, p.Target)
}

// Stop requests terminating the active search session.
type Stop struct {
	ChatID int64
}

// Chat implements [Action].
func (s Stop) Chat() int64 { return s.ChatID }

func (s Stop) encode() string {
	return fmt.Sprintf("%s|%d|0", actionStop, s.ChatID)
}

// Download requests fetching the candidate at the absolute result index.
type Download struct {
	ChatID int64
	Index  int
}

// Chat implements [Action].
func (d Download) Chat() int64 { return d.ChatID }

func (d Download) encode() string {
	return fmt.Sprintf("%s|%d|%d", actionDownload, d.ChatID, d.Index)
}

// Encode renders a wire payload for a.
func Encode(a Action) string {
	return a.encode()
}

// Parse decodes a wire payload into its typed action. Errors wrap
// [ErrMalformed] so callers can treat every parse failure uniformly.
func Parse(data string) (Action, error) {
	fields := strings.Split(data, "|")
	if len(fields) != 3 {
		return nil, fmt.Errorf("%w: expected 3 fields, got %d", ErrMalformed, len(fields))
	}

	chatID, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: chat id %q", ErrMalformed, fields[1])
	}
	param, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("%w: param %q", ErrMalformed, fields[2])
	}

	switch fields[0] {
	case actionPage:
		return Page{ChatID: chatID, Target: param}, nil
	case actionStop:
		return Stop{ChatID: chatID}, nil
	case actionDownload:
		return Download{ChatID: chatID, Index: param}, nil
	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrMalformed, fields[0])
	}
}
