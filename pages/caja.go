package pages

import (
	"sync"

	"go.uber.org/zap"
)

// register tracks whether the cash drawer is open.
type register struct {
	*page
	mu   sync.Mutex
	open bool
}

func newRegister(events Events, log *zap.Logger) *register {
	r := &register{}
	r.page = newPage("caja", events, log,
		Action{ElementID: "open-register-btn", Name: "open-register", Do: func() { r.setOpen(true) }},
		Action{ElementID: "close-register-btn", Name: "close-register", Do: func() { r.setOpen(false) }},
	)
	return r
}

func (r *register) setOpen(open bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.open == open {
		r.log.Warn("register already in requested state", zap.Bool("open", open))
		return
	}
	r.open = open
}

func (r *register) Open() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.open
}
