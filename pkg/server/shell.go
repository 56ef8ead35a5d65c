package server

import (
	"bytes"
	"net/http"

	"github.com/verbosity-dev/verbosity/pkg/dom"
	"github.com/verbosity-dev/verbosity/pkg/render"
	"github.com/verbosity-dev/verbosity/pkg/vdom"
)

// Paths served by the framework.
const (
	WebSocketPath  = "/_verbosity/ws"
	ThinClientPath = "/_verbosity/client.js"
)

// Shell returns the page every application path is served with: the mount
// points, empty until the session fills them, and the client script.
func Shell(title string, mounts []dom.Element) *vdom.VNode {
	body := make([]any, 0, len(mounts)+1)
	for _, el := range mounts {
		body = append(body, vdom.Div(vdom.ID(el.ID())))
	}
	body = append(body, vdom.Script(
		vdom.Src(ThinClientPath),
		vdom.Data("ws", WebSocketPath),
		vdom.Attr{Key: "defer", Value: true},
	))

	return vdom.Html(
		vdom.Attr{Key: "lang", Value: "en"},
		vdom.Head(
			vdom.Meta(vdom.Charset("utf-8")),
			vdom.Meta(
				vdom.Attr{Key: "name", Value: "viewport"},
				vdom.Attr{Key: "content", Value: "width=device-width, initial-scale=1"},
			),
			vdom.Title(vdom.Text(title)),
		),
		vdom.Body(body...),
	)
}

func renderShell(title string, mounts []dom.Element) ([]byte, error) {
	var buf bytes.Buffer
	if err := render.Document(&buf, Shell(title, mounts)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// serveShell serves the shell for any path so deep links load the app.
func (s *Server) serveShell(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(s.shell)
}
