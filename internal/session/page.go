package session

import "github.com/ultraxas/musicbot/pkg/provider/media"

// Pager computes the visible window of a result list for one page.
type Pager struct {
	Results  []media.Candidate
	Page     int
	PageSize int
}

// NewPager creates a Pager over a session's results at its current page.
func NewPager(sess Session, pageSize int) Pager {
	return Pager{Results: sess.Results, Page: sess.Page, PageSize: pageSize}
}

// Start returns the absolute index of the first visible candidate.
func (p Pager) Start() int {
	return p.Page * p.PageSize
}

// VisibleSlice returns the candidates on the current page, clipped to
// bounds. An out-of-range page yields an empty slice, never a panic.
func (p Pager) VisibleSlice() []media.Candidate {
	start := p.Start()
	if p.Page < 0 || p.PageSize <= 0 || start >= len(p.Results) {
		return nil
	}
	end := start + p.PageSize
	if end > len(p.Results) {
		end = len(p.Results)
	}
	return p.Results[start:end]
}

// HasPrev reports whether a previous page exists.
func (p Pager) HasPrev() bool {
	return p.Page > 0
}

// HasNext reports whether a further page holds at least one candidate.
func (p Pager) HasNext() bool {
	return (p.Page+1)*p.PageSize < len(p.Results)
}

// LastPage returns the index of the last non-empty page, 0 for an empty
// result list. Used to clamp forged page targets.
func (p Pager) LastPage() int {
	if len(p.Results) == 0 || p.PageSize <= 0 {
		return 0
	}
	return (len(p.Results) - 1) / p.PageSize
}
