package graphql_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appgraphql "github.com/ecotrackhq/ecotrack/app/graphql"
	"github.com/ecotrackhq/ecotrack/app/models"
	"github.com/ecotrackhq/ecotrack/app/repositories"
	"github.com/ecotrackhq/ecotrack/app/services"
	"github.com/ecotrackhq/ecotrack/pkg/database"
)

func catalogueHandler(t *testing.T) http.HandlerFunc {
	t.Helper()

	db, err := database.ConnectTest()
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Material{}, &models.Product{}))
	require.NoError(t, db.Exec("DELETE FROM materials").Error)
	require.NoError(t, db.Exec("DELETE FROM products").Error)

	require.NoError(t, db.Create(&models.Material{Name: "PET Plastic", Code: "PET", Unit: "kg", PricePerUnit: 45}).Error)
	require.NoError(t, db.Create(&models.Product{Name: "rPET Tote Bag", SKU: "TB-001", Type: "bags", Price: 850, Stock: 10}).Error)

	schema, err := appgraphql.NewSchema(
		services.NewMaterialService(repositories.NewMaterialRepository(db)),
		services.NewProductService(repositories.NewProductRepository(db)),
	)
	require.NoError(t, err)

	return appgraphql.Handler(schema)
}

func TestGraphQL_MaterialsQuery(t *testing.T) {
	handler := catalogueHandler(t)

	body := `{"query": "{ materials { name code pricePerUnit } }"}`
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"PET"`)
	assert.NotContains(t, rec.Body.String(), "errors")
}

func TestGraphQL_ProductsFilterByType(t *testing.T) {
	handler := catalogueHandler(t)

	body := `{"query": "query($t: String) { products(type: $t) { sku } }", "variables": {"t": "bags"}}`
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sku":"TB-001"`)
}

func TestGraphQL_MalformedBody(t *testing.T) {
	handler := catalogueHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader("{"))
	rec := httptest.NewRecorder()

	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
