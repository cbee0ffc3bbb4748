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

	meddomain "github.com/amrani/pharmacy-backend/internal/medication/domain"
	medrepo "github.com/amrani/pharmacy-backend/internal/medication/repository"
	"github.com/amrani/pharmacy-backend/internal/order/repository"
	supplierdomain "github.com/amrani/pharmacy-backend/internal/supplier/domain"
	supplierrepo "github.com/amrani/pharmacy-backend/internal/supplier/repository"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func setupRouter(t *testing.T) (*mux.Router, *medrepo.MemoryMedicationRepository) {
	t.Helper()

	medications := medrepo.NewMemoryMedicationRepository()
	require.NoError(t, medications.Create(&meddomain.Medication{
		ID:    "med-1",
		Name:  "Paracetamol",
		Price: decimal.RequireFromString("8.00"),
		Stock: 5,
	}))

	suppliers := supplierrepo.NewMemorySupplierRepository()
	require.NoError(t, suppliers.Create(&supplierdomain.Supplier{ID: 1, Name: "Pharma Dist"}))

	orders := repository.NewMemoryOrderRepository(medications)
	handler := NewOrderHandler(orders, suppliers, medications, nil)

	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router, medications
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

func createOrder(t *testing.T, router *mux.Router) {
	t.Helper()

	rec, _ := doRequest(t, router, http.MethodPost, "/commandes", map[string]interface{}{
		"fournisseur_id": 1,
		"medicaments": []map[string]interface{}{
			{"medicament_id": "med-1", "quantite": 20, "prix_unitaire": "8.00"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateOrderEndpoint(t *testing.T) {
	router, medications := setupRouter(t)

	rec, env := doRequest(t, router, http.MethodPost, "/commandes", map[string]interface{}{
		"fournisseur_id": 1,
		"medicaments": []map[string]interface{}{
			{"medicament_id": "med-1", "quantite": 20, "prix_unitaire": "8.00"},
		},
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)

	var order struct {
		Total decimal.Decimal `json:"montant_total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, "160.00", order.Total.StringFixed(2))

	// creation must not move stock
	med, err := medications.FindByID("med-1")
	require.NoError(t, err)
	assert.Equal(t, 5, med.Stock)
}

func TestCreateOrderValidationEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	rec, env := doRequest(t, router, http.MethodPost, "/commandes", map[string]interface{}{
		"medicaments": []map[string]interface{}{
			{"medicament_id": "", "quantite": 0},
		},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Errors, "fournisseur_id")
	assert.Contains(t, env.Errors, "medicaments.0.medicament_id")
	assert.Contains(t, env.Errors, "medicaments.0.quantite")
}

func TestReceiveOrderEndpoint(t *testing.T) {
	router, medications := setupRouter(t)
	createOrder(t, router)

	rec, env := doRequest(t, router, http.MethodPatch, "/commandes/1/recevoir", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	med, err := medications.FindByID("med-1")
	require.NoError(t, err)
	assert.Equal(t, 25, med.Stock)
}

func TestReceiveOrderNotFoundEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	rec, env := doRequest(t, router, http.MethodPatch, "/commandes/42/recevoir", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Order not found", env.Message)
}

func TestReceiveOrderMedicationGoneEndpoint(t *testing.T) {
	router, medications := setupRouter(t)
	createOrder(t, router)

	// medication removed between order creation and receipt
	require.NoError(t, medications.Delete("med-1"))

	rec, env := doRequest(t, router, http.MethodPatch, "/commandes/1/recevoir", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Medication not found", env.Message)
}

func TestDeleteOrderEndpoint(t *testing.T) {
	router, medications := setupRouter(t)
	createOrder(t, router)

	rec, env := doRequest(t, router, http.MethodDelete, "/commandes/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	med, err := medications.FindByID("med-1")
	require.NoError(t, err)
	assert.Equal(t, 5, med.Stock)

	rec, env = doRequest(t, router, http.MethodGet, "/commandes/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
}
