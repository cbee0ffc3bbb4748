package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amrani/pharmacy-backend/internal/medication/domain"
	"github.com/amrani/pharmacy-backend/internal/medication/repository"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func setupRouter(t *testing.T) *mux.Router {
	t.Helper()

	repo := repository.NewMemoryMedicationRepository()
	require.NoError(t, repo.Create(&domain.Medication{
		ID:    "med-1",
		Name:  "Doliprane",
		Price: decimal.RequireFromString("3.50"),
		Stock: 10,
	}))

	handler := NewMedicationHandler(repo, repo, nil)
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func doRequest(t *testing.T, router *mux.Router, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func decodeStock(t *testing.T, env envelope) int {
	t.Helper()
	var med struct {
		Stock int `json:"stock"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &med))
	return med.Stock
}

func TestAdjustStockEndpoint(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		stock     int
		want      int
	}{
		{"add", "ajout", 5, 15},
		{"subtract", "retrait", 4, 6},
		{"set", "definir", 42, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(t)

			rec, env := doRequest(t, router, http.MethodPatch, "/medicaments/med-1/stock", map[string]interface{}{
				"stock":     tt.stock,
				"operation": tt.operation,
			})

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.True(t, env.Success)
			assert.Equal(t, tt.want, decodeStock(t, env))
		})
	}
}

func TestAdjustStockBelowZeroEndpoint(t *testing.T) {
	router := setupRouter(t)

	rec, env := doRequest(t, router, http.MethodPatch, "/medicaments/med-1/stock", map[string]interface{}{
		"stock":     11,
		"operation": "retrait",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "Doliprane")
}

func TestAdjustStockInvalidOperationEndpoint(t *testing.T) {
	router := setupRouter(t)

	rec, env := doRequest(t, router, http.MethodPatch, "/medicaments/med-1/stock", map[string]interface{}{
		"stock":     5,
		"operation": "double",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Errors, "operation")
}

func TestCreateMedicationEndpoint(t *testing.T) {
	router := setupRouter(t)

	rec, env := doRequest(t, router, http.MethodPost, "/medicaments", map[string]interface{}{
		"nom":   "Spasfon",
		"prix":  "4.20",
		"stock": 30,
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, 30, decodeStock(t, env))
}

func TestCreateMedicationValidationEndpoint(t *testing.T) {
	router := setupRouter(t)

	rec, env := doRequest(t, router, http.MethodPost, "/medicaments", map[string]interface{}{
		"prix": "-1.00",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Errors, "nom")
	assert.Contains(t, env.Errors, "prix")
}

func TestUpdateMedicationCannotTouchStock(t *testing.T) {
	router := setupRouter(t)

	// stock field on the generic patch is ignored, only the ledger moves stock
	rec, env := doRequest(t, router, http.MethodPatch, "/medicaments/med-1", map[string]interface{}{
		"nom":   "Doliprane 1000",
		"stock": 999,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, decodeStock(t, env))
}
