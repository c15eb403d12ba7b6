package reader // import "github.com/openleaf/openleaf/reader"

import (
	"sync"

	"go.uber.org/zap"

	"github.com/openleaf/openleaf/log"
)

// Phase is the state of a page flip.
type Phase int

const (
	// PhaseIdle means no flip is in flight.
	PhaseIdle Phase = iota
	// PhaseAnimating means the flip animation is running.
	PhaseAnimating
	// PhaseCommitting means the new spread is being rendered and saved.
	PhaseCommitting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAnimating:
		return "animating"
	case PhaseCommitting:
		return "committing"
	}
	return "unknown"
}

// Page is one rendered page of a document.
type Page struct {
	Number int
	Text   string
}

// Spread is the pair of pages shown side by side. Right is nil on the
// last page of an odd-length document, and either slot is nil when its
// render failed.
type Spread struct {
	Left  *Page
	Right *Page
}

// Document supplies pages to a session.
type Document interface {
	NumPages() int
	RenderPage(n int) (*Page, error)
}

// Animator runs the visual flip. Implementations may block for the
// duration of the animation.
type Animator interface {
	FlipForward() error
	FlipBackward() error
}

// ProgressSink persists the reading position.
type ProgressSink interface {
	Save(currentPage, totalPages int) error
}

// Session owns the reading state for one open document. Flips are
// serialized: a trigger that arrives while a flip is in flight is
// dropped, not queued.
type Session struct {
	doc      Document
	animator Animator
	sink     ProgressSink

	mu      sync.Mutex
	current int
	total   int
	phase   Phase
	spread  Spread
}

// NewSession opens a session at the given page, clamped to the
// document bounds, and renders the first spread.
func NewSession(doc Document, animator Animator, sink ProgressSink, startPage int) *Session {
	s := &Session{
		doc:      doc,
		animator: animator,
		sink:     sink,
		total:    doc.NumPages(),
		phase:    PhaseIdle,
	}
	s.current = s.clamp(startPage)
	s.spread = s.renderSpread(s.current)
	// Writing the clamped position back repairs a stale or missing row.
	s.persist(s.current)
	return s
}

// CurrentPage returns the left page number of the visible spread.
func (s *Session) CurrentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// TotalPages returns the page count of the document.
func (s *Session) TotalPages() int {
	return s.total
}

// Phase returns the current flip phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Spread returns the currently visible pages.
func (s *Session) Spread() Spread {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spread
}

// NextPage flips forward by one spread. It reports whether the flip
// ran: a trigger during a flight or at the last spread is a no-op.
func (s *Session) NextPage() bool {
	return s.flip(2)
}

// PrevPage flips backward by one spread.
func (s *Session) PrevPage() bool {
	return s.flip(-2)
}

func (s *Session) flip(delta int) bool {
	s.mu.Lock()
	if s.phase != PhaseIdle {
		// A flip is already in flight, drop this trigger.
		s.mu.Unlock()
		return false
	}
	target := s.clamp(s.current + delta)
	if target == s.current {
		// At the boundary nothing moves, renders, or saves.
		s.mu.Unlock()
		return false
	}
	s.phase = PhaseAnimating
	s.mu.Unlock()

	var err error
	if delta > 0 {
		err = s.animator.FlipForward()
	} else {
		err = s.animator.FlipBackward()
	}
	if err != nil {
		log.Warn("Flip animation failed", zap.Error(err))
	}

	s.mu.Lock()
	s.phase = PhaseCommitting
	s.current = target
	s.mu.Unlock()

	spread := s.renderSpread(target)
	s.persist(target)

	s.mu.Lock()
	s.spread = spread
	s.phase = PhaseIdle
	s.mu.Unlock()
	return true
}

// GoToPage jumps straight to a page without animation and saves the
// position on every call, even when the page does not change.
func (s *Session) GoToPage(n int) {
	s.mu.Lock()
	if s.phase != PhaseIdle {
		s.mu.Unlock()
		return
	}
	target := s.clamp(n)
	s.phase = PhaseCommitting
	s.current = target
	s.mu.Unlock()

	spread := s.renderSpread(target)
	s.persist(target)

	s.mu.Lock()
	s.spread = spread
	s.phase = PhaseIdle
	s.mu.Unlock()
}

// renderSpread renders the pair (n, n+1). A failed render leaves a nil
// slot so the reader keeps going with the pages it has.
func (s *Session) renderSpread(n int) Spread {
	var spread Spread

	left, err := s.doc.RenderPage(n)
	if err != nil {
		log.Warn("Failed to render page", zap.Int("page", n), zap.Error(err))
	} else {
		spread.Left = left
	}

	if n+1 <= s.total {
		right, err := s.doc.RenderPage(n + 1)
		if err != nil {
			log.Warn("Failed to render page", zap.Int("page", n+1), zap.Error(err))
		} else {
			spread.Right = right
		}
	}

	return spread
}

// persist saves the position. A failed save never blocks reading.
func (s *Session) persist(page int) {
	if s.sink == nil {
		return
	}
	if err := s.sink.Save(page, s.total); err != nil {
		log.Warn("Failed to save reading progress",
			zap.Int("page", page),
			zap.Error(err))
	}
}

// clamp bounds a page number to the document. An empty document pins
// the position to page 1 so navigation stays a no-op.
func (s *Session) clamp(n int) int {
	if n < 1 || s.total == 0 {
		return 1
	}
	if n > s.total {
		return s.total
	}
	return n
}
