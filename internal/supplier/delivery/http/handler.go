package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/amrani/pharmacy-backend/internal/httputil"
	orderdomain "github.com/amrani/pharmacy-backend/internal/order/domain"
	"github.com/amrani/pharmacy-backend/internal/supplier/domain"
	"github.com/amrani/pharmacy-backend/pkg/logger"
)

// SupplierHandler handles HTTP requests for suppliers
type SupplierHandler struct {
	repo   domain.SupplierRepository
	orders orderdomain.OrderRepository
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(repo domain.SupplierRepository, orders orderdomain.OrderRepository) *SupplierHandler {
	return &SupplierHandler{repo: repo, orders: orders}
}

type supplierRequest struct {
	Name    *string `json:"nom"`
	Address *string `json:"adresse"`
	Phone   *string `json:"telephone"`
	Email   *string `json:"email"`
}

// CreateSupplier handles POST /fournisseurs
func (h *SupplierHandler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req supplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == nil || *req.Name == "" {
		httputil.RespondValidation(w, map[string]string{"nom": "name is required"})
		return
	}

	supplier := &domain.Supplier{Name: *req.Name}
	if req.Address != nil {
		supplier.Address = *req.Address
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
	}
	if req.Email != nil {
		supplier.Email = *req.Email
	}

	if err := h.repo.Create(supplier); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create supplier")
		httputil.RespondJSON(w, http.StatusInternalServerError, httputil.Response{
			Success: false,
			Message: "Failed to create supplier",
			Error:   err.Error(),
		})
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, httputil.Response{
		Success: true,
		Message: "Supplier created successfully",
		Data:    supplier,
	})
}

// GetSupplier handles GET /fournisseurs/{id}
func (h *SupplierHandler) GetSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid supplier ID")
		return
	}

	supplier, err := h.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Supplier not found")
			return
		}
		logger.Logger.Error().Err(err).Uint("id", id).Msg("Failed to get supplier")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to get supplier")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{Success: true, Data: supplier})
}

// ListSuppliers handles GET /fournisseurs
func (h *SupplierHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.repo.FindAll()
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list suppliers")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list suppliers")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{Success: true, Data: suppliers})
}

// UpdateSupplier handles PATCH /fournisseurs/{id}
func (h *SupplierHandler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid supplier ID")
		return
	}

	var req supplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	supplier, err := h.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Supplier not found")
			return
		}
		logger.Logger.Error().Err(err).Uint("id", id).Msg("Failed to get supplier")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to update supplier")
		return
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.Address != nil {
		supplier.Address = *req.Address
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
	}
	if req.Email != nil {
		supplier.Email = *req.Email
	}

	if err := h.repo.Update(supplier); err != nil {
		logger.Logger.Error().Err(err).Uint("id", id).Msg("Failed to update supplier")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to update supplier")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{
		Success: true,
		Message: "Supplier updated successfully",
		Data:    supplier,
	})
}

// DeleteSupplier handles DELETE /fournisseurs/{id}
func (h *SupplierHandler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid supplier ID")
		return
	}

	if err := h.repo.Delete(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Supplier not found")
			return
		}
		logger.Logger.Error().Err(err).Uint("id", id).Msg("Failed to delete supplier")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete supplier")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{
		Success: true,
		Message: "Supplier deleted successfully",
	})
}

// ListSupplierOrders handles GET /fournisseurs/{id}/commandes
func (h *SupplierHandler) ListSupplierOrders(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid supplier ID")
		return
	}

	if _, err := h.repo.FindByID(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Supplier not found")
			return
		}
		logger.Logger.Error().Err(err).Uint("id", id).Msg("Failed to get supplier")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list supplier orders")
		return
	}

	orders, err := h.orders.FindAll(orderdomain.Filter{SupplierID: &id})
	if err != nil {
		logger.Logger.Error().Err(err).Uint("id", id).Msg("Failed to list supplier orders")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list supplier orders")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{Success: true, Data: orders})
}

// RegisterRoutes registers all supplier routes
func (h *SupplierHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/fournisseurs", h.ListSuppliers).Methods("GET")
	router.HandleFunc("/fournisseurs", h.CreateSupplier).Methods("POST")
	router.HandleFunc("/fournisseurs/{id}", h.GetSupplier).Methods("GET")
	router.HandleFunc("/fournisseurs/{id}", h.UpdateSupplier).Methods("PATCH")
	router.HandleFunc("/fournisseurs/{id}", h.DeleteSupplier).Methods("DELETE")
	router.HandleFunc("/fournisseurs/{id}/commandes", h.ListSupplierOrders).Methods("GET")
}

func parseID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
