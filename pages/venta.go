package pages

import (
	"sync"

	"go.uber.org/zap"
)

// sale tracks the lines added to the sale in progress. The sale is reset
// when the page is left.
type sale struct {
	*page
	mu    sync.Mutex
	lines int
}

func newSale(events Events, log *zap.Logger) *sale {
	s := &sale{}
	s.page = newPage("venta", events, log,
		Action{ElementID: "add-line-btn", Name: "add-line", Do: s.addLine},
		Action{ElementID: "clear-sale-btn", Name: "clear-sale", Do: s.clear},
	)
	return s
}

func (s *sale) addLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines++
}

func (s *sale) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = 0
}

func (s *sale) Lines() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines
}

func (s *sale) Cleanup() {
	s.page.Cleanup()
	s.clear()
}
