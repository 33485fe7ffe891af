package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/skilltreedocs/skilltreedocs/internal/model"
	"github.com/skilltreedocs/skilltreedocs/internal/registry"
	"github.com/skilltreedocs/skilltreedocs/internal/render"
	"github.com/skilltreedocs/skilltreedocs/internal/skilltree"
	"github.com/skilltreedocs/skilltreedocs/internal/store"
)

const handstandTab = `<svg xmlns="http://www.w3.org/2000/svg"><g>
<rect x="0" y="0" width="120" height="60" fill="#cce5ff"/>
<g><switch><foreignObject width="100%" height="100%"><div xmlns="http://www.w3.org/1999/xhtml"><div><div>Handstand</div></div></div></foreignObject><text>Handstand</text></switch></g>
<rect x="130" y="0" width="120" height="60" fill="#cce5ff"/>
<g><switch><foreignObject width="100%" height="100%"><div xmlns="http://www.w3.org/1999/xhtml"><div><div>Back Flip</div></div></div></foreignObject><text>Back Flip</text></switch></g>
</g></svg>`

func init() {
	gin.SetMode(gin.TestMode)
}

// testSite is a loaded site with one package ("gymnastics/floor"), one skill
// page ("handstand") and one missing reference ("Back Flip").
type testSite struct {
	reg    *registry.Registry
	engine *render.Engine
	store  store.Store
}

func setupSite(t *testing.T) *testSite {
	t.Helper()

	known := skilltree.NewSkillSet("handstand")
	collector := skilltree.NewCollector()
	res, err := skilltree.NewTransformer(known, collector).Transform(context.Background(), skilltree.TabSource{
		Package: "gymnastics",
		Tab:     "floor",
		Markup:  []byte(handstandTab),
	})
	require.NoError(t, err)

	reg := registry.New(
		[]model.Skill{{
			Identifier: "handstand",
			Title:      "Handstand",
			Content:    skilltree.SkillSkeleton.Fill("<p>Stand on your hands.</p>"),
		}},
		[]model.Package{{
			Identifier: "gymnastics",
			Tabs:       []model.Tab{{Identifier: "floor", Content: res.Content, Shapes: res.Annotated}},
		}},
		collector.Snapshot(),
	)

	engine, err := render.New()
	require.NoError(t, err)
	require.NoError(t, engine.RegisterSite(reg))

	s, cleanup := store.SetupTestDB(t)
	t.Cleanup(cleanup)

	return &testSite{reg: reg, engine: engine, store: s}
}

func performRequest(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
