package memdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackielii/pageswap"
)

const navMarkup = `<ul>
<li><a href="/" data-link id="home"><span id="home-label">Inicio</span></a></li>
<li><a href="/caja" data-link class="big">Caja</a></li>
<li><a href="https://example.com">externo</a></li>
</ul>`

func TestSlots(t *testing.T) {
	d := New()
	assert.True(t, d.Hidden(pageswap.SlotLoader))
	assert.False(t, d.Hidden(pageswap.SlotMain))
	assert.True(t, d.HasClass(pageswap.SlotMain, "main"))

	d.SetHTML(pageswap.SlotMain, "<p>uno</p><p>dos</p>")
	assert.Equal(t, "<p>uno</p><p>dos</p>", d.HTML(pageswap.SlotMain))
	d.SetHTML(pageswap.SlotMain, "<section>tres</section>")
	assert.Equal(t, "<section>tres</section>", d.HTML(pageswap.SlotMain))

	d.SetHidden(pageswap.SlotLoader, false)
	assert.False(t, d.Hidden(pageswap.SlotLoader))

	d.SetClass(pageswap.SlotMain, "fade-out", true)
	d.SetClass(pageswap.SlotMain, "fade-out", true)
	assert.Contains(t, d.Render(), `<main class="main fade-out">`)
	d.SetClass(pageswap.SlotMain, "fade-out", false)
	assert.False(t, d.HasClass(pageswap.SlotMain, "fade-out"))
	assert.True(t, d.HasClass(pageswap.SlotMain, "main"))

	d.SetTitle("t")
	assert.Equal(t, "t", d.Title())
}

func TestSetText(t *testing.T) {
	d := New()
	d.SetHTML(pageswap.SlotHeader, `<h1 id="page-title">old <b>x</b></h1>`)
	require.True(t, d.SetText(pageswap.SlotHeader, "page-title", "Caja"))
	got, ok := d.TextByID("page-title")
	require.True(t, ok)
	assert.Equal(t, "Caja", got)

	require.True(t, d.SetText(pageswap.SlotHeader, "page-title", ""))
	got, _ = d.TextByID("page-title")
	assert.Equal(t, "", got)

	assert.False(t, d.SetText(pageswap.SlotMain, "page-title", "x"), "id is in another slot")
	assert.False(t, d.SetText(pageswap.SlotHeader, "missing", "x"))
}

func TestLinks(t *testing.T) {
	d := New()
	d.SetHTML(pageswap.SlotNav, navMarkup)
	links := d.Links(pageswap.SlotNav)
	want := []pageswap.Link{{Index: 0, Href: "/"}, {Index: 1, Href: "/caja"}}
	if diff := cmp.Diff(links, want); diff != "" {
		t.Errorf("Links() mismatch (-got +want):\n%s", diff)
	}

	d.SetLinkClass(pageswap.SlotNav, links[1], "active-link", true)
	assert.Equal(t, []string{"/caja"}, d.LinksWithClass(pageswap.SlotNav, "active-link"))
	assert.Equal(t, []string{"/caja"}, d.LinksWithClass(pageswap.SlotNav, "big"))
	d.SetLinkClass(pageswap.SlotNav, links[1], "active-link", false)
	assert.Empty(t, d.LinksWithClass(pageswap.SlotNav, "active-link"))

	// out of range is ignored
	d.SetLinkClass(pageswap.SlotNav, pageswap.Link{Index: 7}, "active-link", true)
	assert.Empty(t, d.LinksWithClass(pageswap.SlotNav, "active-link"))
}

func TestClick(t *testing.T) {
	d := New()
	d.SetHTML(pageswap.SlotNav, navMarkup)
	d.SetHTML(pageswap.SlotMain, `<button id="btn">ok</button>`)

	var hrefs []string
	stop := d.OnLinkClick(func(href string) { hrefs = append(hrefs, href) })
	var pressed int
	remove := d.AddListener("btn", func() { pressed++ })
	assert.Equal(t, 1, d.ListenerCount("btn"))

	assert.True(t, d.Click("home-label"), "span inside the anchor")
	assert.True(t, d.ClickLink("/caja"))
	assert.True(t, d.Click("btn"))
	assert.False(t, d.Click("nope"))
	assert.False(t, d.ClickLink("https://example.com"), "not a data-link anchor")

	assert.Equal(t, []string{"/", "/caja"}, hrefs)
	assert.Equal(t, 1, pressed)

	stop()
	remove()
	assert.Equal(t, 0, d.ListenerCount("btn"))
	d.Click("home")
	d.Click("btn")
	assert.Len(t, hrefs, 2)
	assert.Equal(t, 1, pressed)
}

func TestListenerMayCallBack(t *testing.T) {
	d := New()
	d.SetHTML(pageswap.SlotMain, `<button id="btn">ok</button>`)
	d.AddListener("btn", func() {
		d.SetHTML(pageswap.SlotMain, "<p>clicked</p>")
	})
	require.True(t, d.Click("btn"))
	assert.Equal(t, "<p>clicked</p>", d.HTML(pageswap.SlotMain))
}

func TestTransitionEnd(t *testing.T) {
	d := New()
	assert.False(t, d.EndTransition(pageswap.SlotMain))
	ch := d.TransitionEnd(pageswap.SlotMain)
	select {
	case <-ch:
		t.Fatal("transition ended before EndTransition")
	default:
	}
	assert.True(t, d.EndTransition(pageswap.SlotMain))
	<-ch

	instant := New(WithInstantTransitions())
	<-instant.TransitionEnd(pageswap.SlotMain)
}
