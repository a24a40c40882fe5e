package product_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/storekit/backoffice/product"
	"github.com/storekit/backoffice/response"
)

func newCatalogApp(t *testing.T) (*fiber.App, *bun.DB) {
	t.Helper()

	db := newTestDB(t)
	service := product.NewService(product.NewStore(db))

	app := fiber.New()
	product.NewController(service).RegisterRoutes(app)
	product.NewAdminController(service).RegisterRoutes(app)

	return app, db
}

func request(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	res, err := app.Test(req)
	require.NoError(t, err)
	return res
}

func decode(t *testing.T, res *http.Response, out any) {
	t.Helper()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}

func createProduct(t *testing.T, app *fiber.App, body string) int64 {
	t.Helper()
	res := request(t, app, http.MethodPost, "/admin/product", body)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var envelope struct {
		Data product.Product `json:"data"`
	}
	decode(t, res, &envelope)
	require.NotZero(t, envelope.Data.ID)
	return envelope.Data.ID
}

const validProduct = `{
	"name": "Americano Beans",
	"description": "medium roast",
	"price": 12000,
	"shipping_fee": 2500,
	"status": 1,
	"options": [{"name": "250g", "additional_price": 0}]
}`

func TestAdminController_Create(t *testing.T) {
	t.Run("creates a product", func(t *testing.T) {
		app, _ := newCatalogApp(t)
		id := createProduct(t, app, validProduct)
		assert.NotZero(t, id)
	})

	t.Run("rejects invalid payloads", func(t *testing.T) {
		app, _ := newCatalogApp(t)

		cases := map[string]string{
			"missing name":     `{"description":"x","price":100}`,
			"zero price":       `{"name":"x","description":"x","price":0}`,
			"unknown status":   `{"name":"x","description":"x","price":100,"status":9}`,
			"too many options": `{"name":"x","description":"x","price":100,"options":[{"name":"a"},{"name":"b"},{"name":"c"},{"name":"d"}]}`,
		}

		for name, body := range cases {
			t.Run(name, func(t *testing.T) {
				res := request(t, app, http.MethodPost, "/admin/product", body)
				assert.Equal(t, http.StatusBadRequest, res.StatusCode)
			})
		}
	})
}

func TestController_ListAndDetail(t *testing.T) {
	app, _ := newCatalogApp(t)
	id := createProduct(t, app, validProduct)

	t.Run("lists products", func(t *testing.T) {
		res := request(t, app, http.MethodGet, "/product/list", "")
		require.Equal(t, http.StatusOK, res.StatusCode)

		var envelope struct {
			Data product.ListResult `json:"data"`
		}
		decode(t, res, &envelope)
		assert.Equal(t, 1, envelope.Data.Total)
		require.Len(t, envelope.Data.Items, 1)
		assert.Equal(t, "Americano Beans", envelope.Data.Items[0].Name)
	})

	t.Run("filters by name", func(t *testing.T) {
		res := request(t, app, http.MethodGet, "/product/list?name=Nothing", "")
		require.Equal(t, http.StatusOK, res.StatusCode)

		var envelope struct {
			Data product.ListResult `json:"data"`
		}
		decode(t, res, &envelope)
		assert.Equal(t, 0, envelope.Data.Total)
	})

	t.Run("returns the detail with options", func(t *testing.T) {
		res := request(t, app, http.MethodGet, "/product/detail/1", "")
		require.Equal(t, http.StatusOK, res.StatusCode)

		var envelope struct {
			Data product.Product `json:"data"`
		}
		decode(t, res, &envelope)
		assert.Equal(t, id, envelope.Data.ID)
		assert.Len(t, envelope.Data.Options, 1)
	})

	t.Run("answers 404 for a missing product", func(t *testing.T) {
		res := request(t, app, http.MethodGet, "/product/detail/999", "")
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})

	t.Run("answers 400 for a garbage id", func(t *testing.T) {
		res := request(t, app, http.MethodGet, "/product/detail/abc", "")
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})
}

func TestAdminController_UpdateAndDelete(t *testing.T) {
	t.Run("patches product fields", func(t *testing.T) {
		app, _ := newCatalogApp(t)
		id := createProduct(t, app, validProduct)

		res := request(t, app, http.MethodPatch, "/admin/product/1", `{"price": 15000, "status": 2}`)
		require.Equal(t, http.StatusOK, res.StatusCode)

		res = request(t, app, http.MethodGet, "/product/detail/1", "")
		var envelope struct {
			Data product.Product `json:"data"`
		}
		decode(t, res, &envelope)
		assert.Equal(t, id, envelope.Data.ID)
		assert.Equal(t, int64(15000), envelope.Data.Price)
		assert.Equal(t, product.StatusSoldOut, envelope.Data.Status)
	})

	t.Run("patching a missing product answers 404", func(t *testing.T) {
		app, _ := newCatalogApp(t)
		res := request(t, app, http.MethodPatch, "/admin/product/999", `{"price": 15000}`)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})

	t.Run("deletes a product", func(t *testing.T) {
		app, _ := newCatalogApp(t)
		createProduct(t, app, validProduct)

		res := request(t, app, http.MethodDelete, "/admin/product/1", "")
		require.Equal(t, http.StatusOK, res.StatusCode)

		res = request(t, app, http.MethodGet, "/product/detail/1", "")
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})
}

func TestAdminController_Options(t *testing.T) {
	t.Run("replaces and lists options", func(t *testing.T) {
		app, _ := newCatalogApp(t)
		createProduct(t, app, validProduct)

		res := request(t, app, http.MethodPut, "/admin/product-option/1", `{
			"options": [{"id": 1, "name": "200g"}, {"name": "1kg", "additional_price": 8000}]
		}`)
		require.Equal(t, http.StatusOK, res.StatusCode)

		res = request(t, app, http.MethodGet, "/admin/product-option/list/1", "")
		require.Equal(t, http.StatusOK, res.StatusCode)

		var envelope struct {
			Data []*product.Option `json:"data"`
		}
		decode(t, res, &envelope)
		require.Len(t, envelope.Data, 2)
		assert.Equal(t, "200g", envelope.Data[0].Name)
		assert.Equal(t, "1kg", envelope.Data[1].Name)
	})

	t.Run("enforces the option cap", func(t *testing.T) {
		app, _ := newCatalogApp(t)
		createProduct(t, app, validProduct)

		res := request(t, app, http.MethodPut, "/admin/product-option/1", `{
			"options": [{"name": "a"}, {"name": "b"}, {"name": "c"}]
		}`)
		require.Equal(t, http.StatusBadRequest, res.StatusCode)

		var envelope response.Error
		decode(t, res, &envelope)
		assert.Equal(t, product.ErrOptionLimitExceeded.Message, envelope.Message)
	})

	t.Run("deletes an option", func(t *testing.T) {
		app, _ := newCatalogApp(t)
		createProduct(t, app, validProduct)

		res := request(t, app, http.MethodDelete, "/admin/product-option/1", "")
		require.Equal(t, http.StatusOK, res.StatusCode)

		res = request(t, app, http.MethodGet, "/admin/product-option/list/1", "")
		var envelope struct {
			Data []*product.Option `json:"data"`
		}
		decode(t, res, &envelope)
		assert.Empty(t, envelope.Data)
	})

	t.Run("unknown product answers 404", func(t *testing.T) {
		app, _ := newCatalogApp(t)
		res := request(t, app, http.MethodPut, "/admin/product-option/999", `{"options": [{"name": "a"}]}`)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})
}

func TestAdminController_OptionOverview(t *testing.T) {
	app, _ := newCatalogApp(t)
	createProduct(t, app, validProduct)

	t.Run("lists products with their option counts", func(t *testing.T) {
		res := request(t, app, http.MethodGet, "/admin/product-option/list", "")
		require.Equal(t, http.StatusOK, res.StatusCode)

		var envelope struct {
			Data product.OptionOverviewResult `json:"data"`
		}
		decode(t, res, &envelope)
		assert.Equal(t, 1, envelope.Data.Total)
		require.Len(t, envelope.Data.Items, 1)
		assert.Equal(t, "Americano Beans", envelope.Data.Items[0].Name)
		assert.Equal(t, 1, envelope.Data.Items[0].OptionCount)
	})

	t.Run("filters by product name", func(t *testing.T) {
		res := request(t, app, http.MethodGet, "/admin/product-option/list?name=Nothing", "")
		require.Equal(t, http.StatusOK, res.StatusCode)

		var envelope struct {
			Data product.OptionOverviewResult `json:"data"`
		}
		decode(t, res, &envelope)
		assert.Equal(t, 0, envelope.Data.Total)
	})

	t.Run("the overview route does not shadow the per product listing", func(t *testing.T) {
		res := request(t, app, http.MethodGet, "/admin/product-option/list/1", "")
		require.Equal(t, http.StatusOK, res.StatusCode)

		var envelope struct {
			Data []*product.Option `json:"data"`
		}
		decode(t, res, &envelope)
		require.Len(t, envelope.Data, 1)
		assert.Equal(t, "250g", envelope.Data[0].Name)
	})
}

func TestAdminController_SelectOptions(t *testing.T) {
	app, db := newCatalogApp(t)

	pool := []*product.SelectOption{
		{Name: "Grind: Whole Bean"},
		{Name: "Grind: Espresso"},
	}
	_, err := db.NewInsert().Model(&pool).Exec(context.Background())
	require.NoError(t, err)

	res := request(t, app, http.MethodGet, "/admin/select-option", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var envelope struct {
		Data []*product.SelectOption `json:"data"`
	}
	decode(t, res, &envelope)
	require.Len(t, envelope.Data, 2)
	assert.Equal(t, "Grind: Whole Bean", envelope.Data[0].Name)
}
