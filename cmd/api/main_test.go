package main

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncerqueira/estoquebar-api/docs"
)

// O middleware de swagger lê o FilePath na inicialização e entra em pânico se o
// arquivo não existir; este teste garante que o artefato commitado em docs/
// continua presente e servível.
func TestSwaggerUIServeArtefatoCommitado(t *testing.T) {
	app := fiber.New()
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "../../docs/swagger.json",
		Path:     "docs",
		Title:    "EstoqueBar API",
	}))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/docs", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestDocsGeradosCobremRotasPrincipais(t *testing.T) {
	var spec struct {
		Swagger string                     `json:"swagger"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &spec))
	assert.Equal(t, "2.0", spec.Swagger)

	for _, rota := range []string{
		"/api/auth/login",
		"/api/auth/register",
		"/api/items",
		"/api/items/{id}",
		"/api/movements",
		"/api/movements/{id}",
		"/api/categories",
		"/api/users",
		"/api/dashboard/summary",
		"/api/dashboard/low-stock",
	} {
		assert.Contains(t, spec.Paths, rota)
	}
}
