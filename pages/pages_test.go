package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jackielii/pageswap"
	"github.com/jackielii/pageswap/memdom"
)

func TestRegister(t *testing.T) {
	reg := pageswap.NewRegistry()
	Register(reg, memdom.New(), nil)
	assert.Equal(t, []string{"caja", "clientes", "inicio", "inventario", "venta"}, reg.Names())

	for _, name := range []string{"pedidos", "items-tablajero", "historial", "trabajadores"} {
		_, err := reg.Load(name)
		assert.ErrorIs(t, err, pageswap.ErrModuleNotFound, name)
	}
}

func TestInventoryBindsAddButton(t *testing.T) {
	doc := memdom.New()
	reg := pageswap.NewRegistry()
	Register(reg, doc, zaptest.NewLogger(t))

	m, err := reg.Load("inventario")
	require.NoError(t, err)
	assert.Equal(t, 0, doc.ListenerCount("add-item-btn"))
	m.Init()
	assert.Equal(t, 1, doc.ListenerCount("add-item-btn"))
	m.Cleanup()
	assert.Equal(t, 0, doc.ListenerCount("add-item-btn"))
}

func TestSale(t *testing.T) {
	doc := memdom.New()
	doc.SetHTML(pageswap.SlotMain, `<button id="add-line-btn"></button><button id="clear-sale-btn"></button>`)
	s := newSale(doc, zaptest.NewLogger(t))
	s.Init()

	doc.Click("add-line-btn")
	doc.Click("add-line-btn")
	assert.Equal(t, 2, s.Lines())
	doc.Click("clear-sale-btn")
	assert.Equal(t, 0, s.Lines())

	doc.Click("add-line-btn")
	s.Cleanup()
	assert.Equal(t, 0, s.Lines(), "leaving the page resets the sale")
	doc.Click("add-line-btn")
	assert.Equal(t, 0, s.Lines(), "listeners are removed")
}

func TestRegisterDrawer(t *testing.T) {
	doc := memdom.New()
	doc.SetHTML(pageswap.SlotMain, `<button id="open-register-btn"></button><button id="close-register-btn"></button>`)
	r := newRegister(doc, zaptest.NewLogger(t))
	r.Init()
	defer r.Cleanup()

	assert.False(t, r.Open())
	doc.Click("open-register-btn")
	assert.True(t, r.Open())
	doc.Click("open-register-btn")
	assert.True(t, r.Open())
	doc.Click("close-register-btn")
	assert.False(t, r.Open())
}
