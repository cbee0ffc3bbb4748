package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/amrani/pharmacy-backend/internal/httputil"
	"github.com/amrani/pharmacy-backend/internal/medication/domain"
	"github.com/amrani/pharmacy-backend/internal/medication/usecase/command"
	"github.com/amrani/pharmacy-backend/internal/medication/usecase/query"
	"github.com/amrani/pharmacy-backend/kafka"
	"github.com/amrani/pharmacy-backend/pkg/logger"
)

// MedicationHandler handles HTTP requests for medications using CQRS pattern
type MedicationHandler struct {
	createHandler *command.CreateMedicationHandler
	updateHandler *command.UpdateMedicationHandler
	deleteHandler *command.DeleteMedicationHandler
	adjustHandler *command.AdjustStockHandler

	getHandler  *query.GetMedicationHandler
	listHandler *query.ListMedicationsHandler

	// events is optional; nil disables publishing
	events *kafka.Publisher
}

// NewMedicationHandler creates a new medication handler
func NewMedicationHandler(repo domain.MedicationRepository, ledger domain.StockLedger, events *kafka.Publisher) *MedicationHandler {
	return &MedicationHandler{
		createHandler: command.NewCreateMedicationHandler(repo),
		updateHandler: command.NewUpdateMedicationHandler(repo),
		deleteHandler: command.NewDeleteMedicationHandler(repo),
		adjustHandler: command.NewAdjustStockHandler(ledger),
		getHandler:    query.NewGetMedicationHandler(repo),
		listHandler:   query.NewListMedicationsHandler(repo),
		events:        events,
	}
}

type medicationRequest struct {
	Name        *string          `json:"nom"`
	Description *string          `json:"description"`
	Dosage      *string          `json:"dosage"`
	Price       *decimal.Decimal `json:"prix"`
	Stock       *int             `json:"stock"`
	GroupID     *uint            `json:"groupe_id"`
}

// CreateMedication handles POST /medicaments
func (h *MedicationHandler) CreateMedication(w http.ResponseWriter, r *http.Request) {
	var req medicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fieldErrors := map[string]string{}
	if req.Name == nil || *req.Name == "" {
		fieldErrors["nom"] = "name is required"
	}
	if req.Price == nil {
		fieldErrors["prix"] = "price is required"
	} else if req.Price.IsNegative() {
		fieldErrors["prix"] = "price must not be negative"
	}
	if req.Stock != nil && *req.Stock < 0 {
		fieldErrors["stock"] = "stock must not be negative"
	}
	if len(fieldErrors) > 0 {
		httputil.RespondValidation(w, fieldErrors)
		return
	}

	cmd := command.CreateMedicationCommand{
		Name:    *req.Name,
		Price:   *req.Price,
		GroupID: req.GroupID,
	}
	if req.Description != nil {
		cmd.Description = *req.Description
	}
	if req.Dosage != nil {
		cmd.Dosage = *req.Dosage
	}
	if req.Stock != nil {
		cmd.Stock = *req.Stock
	}

	medication, err := h.createHandler.Handle(cmd)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create medication")
		httputil.RespondJSON(w, http.StatusInternalServerError, httputil.Response{
			Success: false,
			Message: "Failed to create medication",
			Error:   err.Error(),
		})
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, httputil.Response{
		Success: true,
		Message: "Medication created successfully",
		Data:    medication,
	})
}

// GetMedication handles GET /medicaments/{id}
func (h *MedicationHandler) GetMedication(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	medication, err := h.getHandler.Handle(query.GetMedicationQuery{ID: id})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Medication not found")
			return
		}
		logger.Logger.Error().Err(err).Str("id", id).Msg("Failed to get medication")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to get medication")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{
		Success: true,
		Data:    medication,
	})
}

// ListMedications handles GET /medicaments
func (h *MedicationHandler) ListMedications(w http.ResponseWriter, r *http.Request) {
	q := query.ListMedicationsQuery{
		Search: r.URL.Query().Get("search"),
	}
	if raw := r.URL.Query().Get("groupe_id"); raw != "" {
		groupID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Invalid group ID")
			return
		}
		id := uint(groupID)
		q.GroupID = &id
	}
	if raw := r.URL.Query().Get("stock_faible"); raw != "" {
		q.LowStock, _ = strconv.ParseBool(raw)
	}

	medications, err := h.listHandler.Handle(q)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list medications")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list medications")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{
		Success: true,
		Data:    medications,
	})
}

// UpdateMedication handles PATCH /medicaments/{id}
func (h *MedicationHandler) UpdateMedication(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req medicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Price != nil && req.Price.IsNegative() {
		httputil.RespondValidation(w, map[string]string{"prix": "price must not be negative"})
		return
	}

	medication, err := h.updateHandler.Handle(command.UpdateMedicationCommand{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Dosage:      req.Dosage,
		Price:       req.Price,
		GroupID:     req.GroupID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Medication not found")
			return
		}
		logger.Logger.Error().Err(err).Str("id", id).Msg("Failed to update medication")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to update medication")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{
		Success: true,
		Message: "Medication updated successfully",
		Data:    medication,
	})
}

// DeleteMedication handles DELETE /medicaments/{id}
func (h *MedicationHandler) DeleteMedication(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.deleteHandler.Handle(command.DeleteMedicationCommand{ID: id}); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Medication not found")
			return
		}
		logger.Logger.Error().Err(err).Str("id", id).Msg("Failed to delete medication")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete medication")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{
		Success: true,
		Message: "Medication deleted successfully",
	})
}

// AdjustStock handles PATCH /medicaments/{id}/stock
func (h *MedicationHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		Stock     *int   `json:"stock"`
		Operation string `json:"operation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fieldErrors := map[string]string{}
	if req.Stock == nil {
		fieldErrors["stock"] = "stock is required"
	} else if *req.Stock < 0 {
		fieldErrors["stock"] = "stock must not be negative"
	}
	switch domain.AdjustMode(req.Operation) {
	case domain.AdjustAdd, domain.AdjustSubtract, domain.AdjustSet:
	default:
		fieldErrors["operation"] = "operation must be one of ajout, retrait, definir"
	}
	if len(fieldErrors) > 0 {
		httputil.RespondValidation(w, fieldErrors)
		return
	}

	medication, err := h.adjustHandler.Handle(command.AdjustStockCommand{
		MedicationID: id,
		Quantity:     *req.Stock,
		Mode:         domain.AdjustMode(req.Operation),
	})
	if err != nil {
		var insufficient *domain.InsufficientStockError
		switch {
		case errors.Is(err, domain.ErrNotFound):
			httputil.RespondError(w, http.StatusNotFound, "Medication not found")
		case errors.As(err, &insufficient):
			httputil.RespondError(w, http.StatusBadRequest, insufficient.Error())
		default:
			logger.Logger.Error().Err(err).Str("id", id).Msg("Failed to adjust stock")
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to adjust stock")
		}
		return
	}

	if h.events != nil {
		err := h.events.PublishStockAdjusted(r.Context(), kafka.StockAdjustedEvent{
			MedicationID: medication.ID,
			Operation:    req.Operation,
			Quantity:     *req.Stock,
			NewStock:     medication.Stock,
		})
		if err != nil {
			logger.Logger.Warn().Err(err).Str("medication_id", medication.ID).Msg("Failed to publish stock adjusted event")
		}
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{
		Success: true,
		Message: "Stock updated successfully",
		Data:    medication,
	})
}

// RegisterRoutes registers all medication routes
func (h *MedicationHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/medicaments", h.ListMedications).Methods("GET")
	router.HandleFunc("/medicaments", h.CreateMedication).Methods("POST")
	router.HandleFunc("/medicaments/{id}", h.GetMedication).Methods("GET")
	router.HandleFunc("/medicaments/{id}", h.UpdateMedication).Methods("PATCH")
	router.HandleFunc("/medicaments/{id}", h.DeleteMedication).Methods("DELETE")
	router.HandleFunc("/medicaments/{id}/stock", h.AdjustStock).Methods("PATCH")
}
