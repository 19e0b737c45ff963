package server

import (
	"bytes"
	"net/http"
	"sync"
)

var pagePool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// pageBuffer holds a rendered page until it is complete, so a render error
// never reaches the client as a truncated body.
type pageBuffer struct {
	*bytes.Buffer
}

func newPageBuffer() pageBuffer {
	return pageBuffer{Buffer: pagePool.Get().(*bytes.Buffer)}
}

// flush sends the buffered page with status, when non-zero.
func (b pageBuffer) flush(w http.ResponseWriter, status int) error {
	if status != 0 {
		w.WriteHeader(status)
	}
	_, err := w.Write(b.Bytes())
	return err
}

func (b pageBuffer) release() {
	b.Reset()
	pagePool.Put(b.Buffer)
}
