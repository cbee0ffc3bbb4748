package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/amrani/pharmacy-backend/internal/client/domain"
	"github.com/amrani/pharmacy-backend/internal/httputil"
	invoicedomain "github.com/amrani/pharmacy-backend/internal/invoice/domain"
	"github.com/amrani/pharmacy-backend/pkg/logger"
)

// ClientHandler handles HTTP requests for clients
type ClientHandler struct {
	repo     domain.ClientRepository
	invoices invoicedomain.InvoiceRepository
}

// NewClientHandler creates a new client handler
func NewClientHandler(repo domain.ClientRepository, invoices invoicedomain.InvoiceRepository) *ClientHandler {
	return &ClientHandler{repo: repo, invoices: invoices}
}

type clientRequest struct {
	Name    *string `json:"nom"`
	Address *string `json:"adresse"`
	Phone   *string `json:"telephone"`
	Email   *string `json:"email"`
}

// CreateClient handles POST /clients
func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == nil || *req.Name == "" {
		httputil.RespondValidation(w, map[string]string{"nom": "name is required"})
		return
	}

	client := &domain.Client{Name: *req.Name}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Email != nil {
		client.Email = *req.Email
	}

	if err := h.repo.Create(client); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create client")
		httputil.RespondJSON(w, http.StatusInternalServerError, httputil.Response{
			Success: false,
			Message: "Failed to create client",
			Error:   err.Error(),
		})
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, httputil.Response{
		Success: true,
		Message: "Client created successfully",
		Data:    client,
	})
}

// GetClient handles GET /clients/{id}
func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid client ID")
		return
	}

	client, err := h.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Client not found")
			return
		}
		logger.Logger.Error().Err(err).Uint("id", id).Msg("Failed to get client")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to get client")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{Success: true, Data: client})
}

// ListClients handles GET /clients
func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.repo.FindAll()
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list clients")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list clients")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{Success: true, Data: clients})
}

// UpdateClient handles PATCH /clients/{id}
func (h *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid client ID")
		return
	}

	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	client, err := h.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Client not found")
			return
		}
		logger.Logger.Error().Err(err).Uint("id", id).Msg("Failed to get client")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to update client")
		return
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Email != nil {
		client.Email = *req.Email
	}

	if err := h.repo.Update(client); err != nil {
		logger.Logger.Error().Err(err).Uint("id", id).Msg("Failed to update client")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to update client")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{
		Success: true,
		Message: "Client updated successfully",
		Data:    client,
	})
}

// DeleteClient handles DELETE /clients/{id}
func (h *ClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid client ID")
		return
	}

	if err := h.repo.Delete(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Client not found")
			return
		}
		logger.Logger.Error().Err(err).Uint("id", id).Msg("Failed to delete client")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete client")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{
		Success: true,
		Message: "Client deleted successfully",
	})
}

// ListClientInvoices handles GET /clients/{id}/factures
func (h *ClientHandler) ListClientInvoices(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid client ID")
		return
	}

	if _, err := h.repo.FindByID(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Client not found")
			return
		}
		logger.Logger.Error().Err(err).Uint("id", id).Msg("Failed to get client")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list client invoices")
		return
	}

	invoices, err := h.invoices.FindAll(invoicedomain.Filter{ClientID: &id})
	if err != nil {
		logger.Logger.Error().Err(err).Uint("id", id).Msg("Failed to list client invoices")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list client invoices")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{Success: true, Data: invoices})
}

// RegisterRoutes registers all client routes
func (h *ClientHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/clients", h.ListClients).Methods("GET")
	router.HandleFunc("/clients", h.CreateClient).Methods("POST")
	router.HandleFunc("/clients/{id}", h.GetClient).Methods("GET")
	router.HandleFunc("/clients/{id}", h.UpdateClient).Methods("PATCH")
	router.HandleFunc("/clients/{id}", h.DeleteClient).Methods("DELETE")
	router.HandleFunc("/clients/{id}/factures", h.ListClientInvoices).Methods("GET")
}

func parseID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
