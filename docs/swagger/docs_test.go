package swagger_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"content-catalog/docs/swagger"
	"content-catalog/feature/blacklist"
	"content-catalog/feature/catalog"

	"github.com/gofiber/fiber/v2"
	fiberSwagger "github.com/gofiber/swagger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type document struct {
	Info struct {
		Title string `json:"title"`
	} `json:"info"`
	Paths map[string]map[string]json.RawMessage `json:"paths"`
}

func readDocument(t *testing.T) document {
	t.Helper()
	raw, err := swag.ReadDoc(swagger.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

var routeParam = regexp.MustCompile(`:([A-Za-z]+)`)

func TestDocument_CoversEveryRoute(t *testing.T) {
	doc := readDocument(t)
	assert.Equal(t, "Content Catalog API", doc.Info.Title)

	app := fiber.New()
	require.NoError(t, catalog.NewFeature(catalog.NewService(catalog.Deps{})).Load(app))
	require.NoError(t, blacklist.NewFeature(blacklist.NewStore(nil, nil), nil).Load(app))

	routes := 0
	for _, r := range app.GetRoutes(true) {
		if r.Method == fiber.MethodHead {
			continue
		}
		path := routeParam.ReplaceAllString(r.Path, "{$1}")
		if len(path) > 1 {
			path = strings.TrimSuffix(path, "/")
		}
		ops, ok := doc.Paths[path]
		if !assert.True(t, ok, "undocumented path %s", path) {
			continue
		}
		assert.Contains(t, ops, strings.ToLower(r.Method), "undocumented %s %s", r.Method, path)
		routes++
	}
	assert.Equal(t, 11, routes)
}

func TestHandlerDefault_ServesDocument(t *testing.T) {
	app := fiber.New()
	app.Get("/swagger/*", fiberSwagger.HandlerDefault)

	resp, err := app.Test(httptest.NewRequest("GET", "/swagger/doc.json", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "/catalog/origins/{name}")
}
