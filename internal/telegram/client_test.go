package telegram

import (
	"testing"

	"github.com/ultraxas/musicbot/internal/bot"
)

func TestBuildMarkupNilKeyboard(t *testing.T) {
	t.Parallel()

	if got := buildMarkup(nil); got != nil {
		t.Errorf("buildMarkup(nil) = %v, want nil", got)
	}
}

func TestBuildMarkupRows(t *testing.T) {
	t.Parallel()

	kb := bot.Keyboard{
		{{Text: "1. Track 1", Data: "download|5|0"}},
		{{Text: "Prev", Data: "page|5|0"}, {Text: "Next", Data: "page|5|2"}},
	}
	if got := buildMarkup(kb); got == nil {
		t.Fatal("buildMarkup returned nil for a populated keyboard")
	}
}
