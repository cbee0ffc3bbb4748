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

	clientdomain "github.com/amrani/pharmacy-backend/internal/client/domain"
	clientrepo "github.com/amrani/pharmacy-backend/internal/client/repository"
	"github.com/amrani/pharmacy-backend/internal/invoice/repository"
	meddomain "github.com/amrani/pharmacy-backend/internal/medication/domain"
	medrepo "github.com/amrani/pharmacy-backend/internal/medication/repository"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
	Error   string            `json:"error"`
}

func setupRouter(t *testing.T) (*mux.Router, *medrepo.MemoryMedicationRepository) {
	t.Helper()

	medications := medrepo.NewMemoryMedicationRepository()
	require.NoError(t, medications.Create(&meddomain.Medication{
		ID:    "med-1",
		Name:  "Amoxicillin",
		Price: decimal.RequireFromString("10.00"),
		Stock: 5,
	}))

	clients := clientrepo.NewMemoryClientRepository()
	require.NoError(t, clients.Create(&clientdomain.Client{ID: 1, Name: "Dupont"}))

	invoices := repository.NewMemoryInvoiceRepository(medications)
	handler := NewInvoiceHandler(invoices, clients, medications, nil)

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

func TestCreateInvoiceEndpoint(t *testing.T) {
	router, medications := setupRouter(t)

	rec, env := doRequest(t, router, http.MethodPost, "/factures", map[string]interface{}{
		"client_id": 1,
		"medicaments": []map[string]interface{}{
			{"medicament_id": "med-1", "quantite": 5, "prix_unitaire": "10.00"},
		},
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Invoice created successfully", env.Message)

	var invoice struct {
		Total decimal.Decimal `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &invoice))
	assert.Equal(t, "50.00", invoice.Total.StringFixed(2))

	med, err := medications.FindByID("med-1")
	require.NoError(t, err)
	assert.Equal(t, 0, med.Stock)
}

func TestCreateInvoiceInsufficientStockEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	rec, env := doRequest(t, router, http.MethodPost, "/factures", map[string]interface{}{
		"client_id": 1,
		"medicaments": []map[string]interface{}{
			{"medicament_id": "med-1", "quantite": 6, "prix_unitaire": "10.00"},
		},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "Amoxicillin")
}

func TestCreateInvoiceValidationEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	rec, env := doRequest(t, router, http.MethodPost, "/factures", map[string]interface{}{
		"medicaments": []map[string]interface{}{
			{"medicament_id": "", "quantite": 0},
		},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Errors, "client_id")
	assert.Contains(t, env.Errors, "medicaments.0.medicament_id")
	assert.Contains(t, env.Errors, "medicaments.0.quantite")
	assert.Contains(t, env.Errors, "medicaments.0.prix_unitaire")
}

func TestCreateInvoiceUnknownClientEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	rec, env := doRequest(t, router, http.MethodPost, "/factures", map[string]interface{}{
		"client_id": 99,
		"medicaments": []map[string]interface{}{
			{"medicament_id": "med-1", "quantite": 1, "prix_unitaire": "10.00"},
		},
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Client not found", env.Message)
}

func TestDeleteInvoiceEndpoint(t *testing.T) {
	router, medications := setupRouter(t)

	rec, _ := doRequest(t, router, http.MethodPost, "/factures", map[string]interface{}{
		"client_id": 1,
		"medicaments": []map[string]interface{}{
			{"medicament_id": "med-1", "quantite": 5, "prix_unitaire": "10.00"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := doRequest(t, router, http.MethodDelete, "/factures/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	med, err := medications.FindByID("med-1")
	require.NoError(t, err)
	assert.Equal(t, 5, med.Stock)

	rec, env = doRequest(t, router, http.MethodGet, "/factures/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
}

func TestGetInvoiceNotFoundEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	rec, env := doRequest(t, router, http.MethodGet, "/factures/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Invoice not found", env.Message)
}
