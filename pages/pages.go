// Package pages holds the behavior modules of the management site's pages.
package pages

import (
	"go.uber.org/zap"

	"github.com/jackielii/pageswap"
)

// Events is the DOM surface page modules bind to.
type Events interface {
	AddListener(id string, fn func()) (remove func())
}

// Action is a button handler a page binds while it is active.
type Action struct {
	ElementID string
	Name      string
	Do        func()
}

// page is a module that binds its actions on Init and releases them on
// Cleanup.
type page struct {
	name    string
	events  Events
	log     *zap.Logger
	actions []Action
	removes []func()
}

func newPage(name string, events Events, log *zap.Logger, actions ...Action) *page {
	return &page{name: name, events: events, log: log.With(zap.String("page", name)), actions: actions}
}

func (p *page) Init() {
	p.log.Debug("page initialized")
	for _, a := range p.actions {
		p.removes = append(p.removes, p.events.AddListener(a.ElementID, func() {
			p.log.Info("action", zap.String("action", a.Name))
			if a.Do != nil {
				a.Do()
			}
		}))
	}
}

func (p *page) Cleanup() {
	p.log.Debug("page cleaned up")
	for _, remove := range p.removes {
		remove()
	}
	p.removes = nil
}

// Register adds the site's page modules to reg. Pages without behavior
// (pedidos, items-tablajero, historial, trabajadores) are left out; the
// router treats them as having no module.
func Register(reg *pageswap.Registry, events Events, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	reg.Register("inicio", func() (pageswap.Module, error) {
		return newPage("inicio", events, log), nil
	})
	reg.Register("inventario", func() (pageswap.Module, error) {
		return newPage("inventario", events, log,
			Action{ElementID: "add-item-btn", Name: "add-item"},
		), nil
	})
	reg.Register("venta", func() (pageswap.Module, error) {
		return newSale(events, log), nil
	})
	reg.Register("clientes", func() (pageswap.Module, error) {
		return newPage("clientes", events, log,
			Action{ElementID: "add-client-btn", Name: "add-client"},
		), nil
	})
	reg.Register("caja", func() (pageswap.Module, error) {
		return newRegister(events, log), nil
	})
}
