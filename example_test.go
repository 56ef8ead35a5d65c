package verbosity_test

import (
	"testing"

	verbosity "github.com/verbosity-dev/verbosity"
	"github.com/verbosity-dev/verbosity/pkg/dom"
	"github.com/verbosity-dev/verbosity/pkg/router"
	"github.com/verbosity-dev/verbosity/pkg/vdom"
	"github.com/verbosity-dev/verbosity/pkg/vtest"
)

func TestAppWithHarness(t *testing.T) {
	var hydrated []dom.Template
	h := vtest.NewApp(t,
		verbosity.WithMount("content"),
		verbosity.WithHydrater(func(tpl dom.Template) { hydrated = append(hydrated, tpl) }),
	)

	h.App.AddSimpleMount("nav-mount", vdom.Static(vdom.Nav(vdom.A(vdom.Href("/docs"), vdom.Link(), vdom.Text("Docs")))))
	h.App.AddRoute("/", router.View{Instance: func(router.Params) dom.Template {
		return vdom.Static(vdom.H1(vdom.Text("welcome")))
	}})
	h.App.AddRoute("/docs/:page", router.View{Instance: func(p router.Params) dom.Template {
		return vdom.Static(vdom.H1(vdom.Textf("docs: %s", p["page"])))
	}})
	h.App.AddRoute("/docs", router.View{Instance: nil, Guard: router.RedirectTo("/docs/intro")})

	h.Start("/")
	h.ExpectMounted("nav-mount", `href="/docs"`)
	h.ExpectMounted("content", "welcome")

	h.GoTo("/docs")
	h.ExpectPage("docs: intro")
	h.ExpectState("/docs/intro")

	h.Back()
	h.ExpectPage("welcome")

	if len(hydrated) != 4 {
		t.Errorf("hydrated %d templates, want 4", len(hydrated))
	}
}
