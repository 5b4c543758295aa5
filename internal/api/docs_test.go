package api

import (
	"encoding/json"
	"strings"
	"testing"

	"inkhub/docs"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocs_CoverEveryAPIRoute(t *testing.T) {
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))

	r, _, _ := setupRouter(t, "")
	seen := 0
	err := r.(*mux.Router).Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		tmpl, err := route.GetPathTemplate()
		if err != nil || !strings.HasPrefix(tmpl, "/api/") {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			return nil
		}
		path := strings.TrimPrefix(tmpl, "/api")
		for _, m := range methods {
			seen++
			ops, ok := doc.Paths[path]
			if assert.True(t, ok, "no docs for %s", path) {
				assert.Contains(t, ops, strings.ToLower(m), "no docs for %s %s", m, path)
			}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 14, seen)
}
