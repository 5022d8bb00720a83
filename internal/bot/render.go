package bot

import (
	"fmt"

	"github.com/ultraxas/musicbot/internal/callback"
	"github.com/ultraxas/musicbot/internal/session"
)

// maxButtonRunes caps a result button label. Telegram truncates long button
// text anyway; clipping here keeps the payload size predictable.
const maxButtonRunes = 64

// Navigation button labels. Kept language-neutral so the keyboard does not
// need re-rendering when a user switches language mid-session.
const (
	labelPrev = "⬅️ Prev"
	labelNext = "Next ➡️"
	labelStop = "🚫 Stop"
)

// untitledLabel substitutes for candidates whose provider entry carries no
// title.
const untitledLabel = "(untitled)"

// ResultKeyboard renders the inline keyboard for one page of a result list:
// one numbered button per visible candidate, a navigation row when other
// pages exist, and a stop row. Numbering is absolute across pages so "11."
// on page two is the same track the user saw counted from page one.
func ResultKeyboard(chatID int64, p session.Pager) Keyboard {
	visible := p.VisibleSlice()
	kb := make(Keyboard, 0, len(visible)+2)

	start := p.Start()
	for i, c := range visible {
		index := start + i
		title := c.Title
		if title == "" {
			title = untitledLabel
		}
		kb = append(kb, []Button{{
			Text: truncate(fmt.Sprintf("%d. %s", index+1, title), maxButtonRunes),
			Data: callback.Encode(callback.Download{ChatID: chatID, Index: index}),
		}})
	}

	var nav []Button
	if p.HasPrev() {
		nav = append(nav, Button{
			Text: labelPrev,
			Data: callback.Encode(callback.Page{ChatID: chatID, Target: p.Page - 1}),
		})
	}
	if p.HasNext() {
		nav = append(nav, Button{
			Text: labelNext,
			Data: callback.Encode(callback.Page{ChatID: chatID, Target: p.Page + 1}),
		})
	}
	if len(nav) > 0 {
		kb = append(kb, nav)
	}

	kb = append(kb, []Button{{
		Text: labelStop,
		Data: callback.Encode(callback.Stop{ChatID: chatID}),
	}})
	return kb
}

// truncate clips s to at most n runes, appending an ellipsis when clipped.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
