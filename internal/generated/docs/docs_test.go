package docs_test

import (
	"testing"

	"dds/internal/generated/docs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestLoad(t *testing.T) {
	doc, err := docs.Load(t.Context())
	require.NoError(t, err)

	for _, path := range []string{
		"/api/v1/customers",
		"/api/v1/customers/pesquisa",
		"/api/v1/customers/{id}",
		"/api/v1/products",
		"/api/v1/products/pesquisa",
		"/api/v1/products/{id}",
		"/health",
	} {
		assert.NotNil(t, doc.Paths.Value(path), path)
	}

	item := doc.Paths.Value("/api/v1/products/{id}")
	require.NotNil(t, item.Delete)
	assert.NotNil(t, item.Delete.Responses.Value("404"))
	assert.NotNil(t, doc.Components.Schemas["Notification"])
}

func TestRegister(t *testing.T) {
	docs.Register()
	docs.Register()

	raw, err := swag.ReadDoc()
	require.NoError(t, err)
	assert.JSONEq(t, string(docs.JSON()), raw)
}
