package tabs

import (
	"bytes"
	"net/http"
	"strings"
)

// responseBuffer captures a view's response so it can be wrapped into the
// screen layout, or replayed untouched.
type responseBuffer struct {
	header      http.Header
	statusCode  int
	body        bytes.Buffer
	headerWrote bool
}

func (b *responseBuffer) Header() http.Header {
	return b.header
}

func (b *responseBuffer) WriteHeader(status int) {
	if b.headerWrote {
		return
	}

	b.headerWrote = true
	b.statusCode = status
}

func (b *responseBuffer) Write(data []byte) (int, error) {
	b.headerWrote = true
	return b.body.Write(data)
}

func (b *responseBuffer) isHTMLFragment() bool {
	if b.statusCode != http.StatusOK {
		return false
	}

	contentType := b.header.Get("Content-Type")

	return contentType == "" || strings.HasPrefix(contentType, "text/html")
}

func (b *responseBuffer) replay(w http.ResponseWriter) {
	copyHeaders(w.Header(), b.header)
	w.WriteHeader(b.statusCode)
	w.Write(b.body.Bytes())
}

func copyHeaders(dst, src http.Header) {
	for key, values := range src {
		for _, value := range values {
			dst.Add(key, value)
		}
	}
}

func newResponseBuffer() *responseBuffer {
	return &responseBuffer{
		header:     make(http.Header),
		statusCode: http.StatusOK,
	}
}

var _ http.ResponseWriter = &responseBuffer{}
