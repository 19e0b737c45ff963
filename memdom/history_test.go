package memdom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory(t *testing.T) {
	h := NewHistory("")
	assert.Equal(t, "/", h.Path())

	var popped []string
	stop := h.OnPopState(func(p string) { popped = append(popped, p) })

	h.Push("/a")
	h.Push("/b")
	assert.Equal(t, []string{"/", "/a", "/b"}, h.Entries())
	assert.Empty(t, popped, "push does not fire pop-state")

	assert.True(t, h.Back())
	assert.True(t, h.Back())
	assert.False(t, h.Back())
	assert.Equal(t, "/", h.Path())
	assert.True(t, h.Forward())
	assert.Equal(t, []string{"/a", "/", "/a"}, popped)

	// pushing from the middle drops forward entries
	h.Push("/c")
	assert.Equal(t, []string{"/", "/a", "/c"}, h.Entries())
	assert.False(t, h.Forward())

	stop()
	h.Back()
	assert.Len(t, popped, 3)
	assert.Equal(t, 3, h.Len())
}
