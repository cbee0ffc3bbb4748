package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	clientdomain "github.com/amrani/pharmacy-backend/internal/client/domain"
	"github.com/amrani/pharmacy-backend/internal/httputil"
	"github.com/amrani/pharmacy-backend/internal/invoice/domain"
	"github.com/amrani/pharmacy-backend/internal/invoice/usecase/command"
	"github.com/amrani/pharmacy-backend/internal/invoice/usecase/query"
	meddomain "github.com/amrani/pharmacy-backend/internal/medication/domain"
	"github.com/amrani/pharmacy-backend/kafka"
	"github.com/amrani/pharmacy-backend/pkg/logger"
)

// InvoiceHandler handles HTTP requests for sales invoices using CQRS pattern
type InvoiceHandler struct {
	createHandler *command.CreateInvoiceHandler
	deleteHandler *command.DeleteInvoiceHandler
	updateHandler *command.UpdateInvoiceHandler

	getHandler  *query.GetInvoiceHandler
	listHandler *query.ListInvoicesHandler

	// events is optional; nil disables publishing
	events *kafka.Publisher
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(
	invoices domain.InvoiceRepository,
	clients clientdomain.ClientRepository,
	medications meddomain.MedicationRepository,
	events *kafka.Publisher,
) *InvoiceHandler {
	return &InvoiceHandler{
		createHandler: command.NewCreateInvoiceHandler(invoices, clients, medications, nil),
		deleteHandler: command.NewDeleteInvoiceHandler(invoices),
		updateHandler: command.NewUpdateInvoiceHandler(invoices, clients),
		getHandler:    query.NewGetInvoiceHandler(invoices),
		listHandler:   query.NewListInvoicesHandler(invoices),
		events:        events,
	}
}

type invoiceLineRequest struct {
	MedicationID string           `json:"medicament_id"`
	Quantity     *int             `json:"quantite"`
	UnitPrice    *decimal.Decimal `json:"prix_unitaire"`
}

type createInvoiceRequest struct {
	ClientID *uint                `json:"client_id"`
	Lines    []invoiceLineRequest `json:"medicaments"`
}

// CreateInvoice handles POST /factures
func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fieldErrors := validateLines(req.ClientID, "client_id", req.Lines); len(fieldErrors) > 0 {
		httputil.RespondValidation(w, fieldErrors)
		return
	}

	cmd := command.CreateInvoiceCommand{ClientID: *req.ClientID}
	for _, line := range req.Lines {
		cmd.Lines = append(cmd.Lines, command.InvoiceLineInput{
			MedicationID: line.MedicationID,
			Quantity:     *line.Quantity,
			UnitPrice:    *line.UnitPrice,
		})
	}

	invoice, err := h.createHandler.Handle(cmd)
	if err != nil {
		var insufficient *meddomain.InsufficientStockError
		switch {
		case errors.As(err, &insufficient):
			httputil.RespondError(w, http.StatusBadRequest, insufficient.Error())
		case errors.Is(err, clientdomain.ErrNotFound):
			httputil.RespondError(w, http.StatusNotFound, "Client not found")
		case errors.Is(err, meddomain.ErrNotFound):
			httputil.RespondError(w, http.StatusNotFound, "Medication not found")
		default:
			logger.Logger.Error().Err(err).Msg("Failed to create invoice")
			httputil.RespondJSON(w, http.StatusInternalServerError, httputil.Response{
				Success: false,
				Message: "Failed to create invoice",
				Error:   err.Error(),
			})
		}
		return
	}

	h.publishCreated(r.Context(), invoice)

	httputil.RespondJSON(w, http.StatusCreated, httputil.Response{
		Success: true,
		Message: "Invoice created successfully",
		Data:    invoice,
	})
}

// GetInvoice handles GET /factures/{id}
func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	invoice, err := h.getHandler.Handle(query.GetInvoiceQuery{ID: id})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Invoice not found")
			return
		}
		logger.Logger.Error().Err(err).Uint("id", id).Msg("Failed to get invoice")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to get invoice")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{Success: true, Data: invoice})
}

// ListInvoices handles GET /factures
func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	q := query.ListInvoicesQuery{}
	if raw := r.URL.Query().Get("client_id"); raw != "" {
		clientID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Invalid client ID")
			return
		}
		id := uint(clientID)
		q.ClientID = &id
	}
	var err error
	if q.From, err = parseDate(r.URL.Query().Get("date_debut")); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid date_debut")
		return
	}
	if q.To, err = parseDate(r.URL.Query().Get("date_fin")); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid date_fin")
		return
	}

	invoices, err := h.listHandler.Handle(q)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list invoices")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list invoices")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{Success: true, Data: invoices})
}

// UpdateInvoice handles PATCH /factures/{id}
func (h *InvoiceHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	var req struct {
		ClientID *uint   `json:"client_id"`
		IssuedAt *string `json:"date_facture"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdateInvoiceCommand{InvoiceID: id, ClientID: req.ClientID}
	if req.IssuedAt != nil {
		issuedAt, err := parseDate(*req.IssuedAt)
		if err != nil {
			httputil.RespondValidation(w, map[string]string{"date_facture": "invalid date"})
			return
		}
		cmd.IssuedAt = issuedAt
	}

	invoice, err := h.updateHandler.Handle(cmd)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			httputil.RespondError(w, http.StatusNotFound, "Invoice not found")
		case errors.Is(err, clientdomain.ErrNotFound):
			httputil.RespondError(w, http.StatusNotFound, "Client not found")
		default:
			logger.Logger.Error().Err(err).Uint("id", id).Msg("Failed to update invoice")
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to update invoice")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{
		Success: true,
		Message: "Invoice updated successfully",
		Data:    invoice,
	})
}

// DeleteInvoice handles DELETE /factures/{id}
func (h *InvoiceHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteInvoiceCommand{InvoiceID: id}); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Invoice not found")
			return
		}
		logger.Logger.Error().Err(err).Uint("id", id).Msg("Failed to delete invoice")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete invoice")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{
		Success: true,
		Message: "Invoice deleted successfully. Stock restored.",
	})
}

func (h *InvoiceHandler) publishCreated(ctx context.Context, invoice *domain.Invoice) {
	if h.events == nil {
		return
	}
	err := h.events.PublishInvoiceCreated(ctx, kafka.InvoiceCreatedEvent{
		InvoiceID: invoice.ID,
		ClientID:  invoice.ClientID,
		Total:     invoice.Total.StringFixed(2),
		LineCount: len(invoice.Lines),
	})
	if err != nil {
		logger.Logger.Warn().Err(err).Uint("invoice_id", invoice.ID).Msg("Failed to publish invoice created event")
	}
}

// RegisterRoutes registers all invoice routes
func (h *InvoiceHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/factures", h.ListInvoices).Methods("GET")
	router.HandleFunc("/factures", h.CreateInvoice).Methods("POST")
	router.HandleFunc("/factures/{id}", h.GetInvoice).Methods("GET")
	router.HandleFunc("/factures/{id}", h.UpdateInvoice).Methods("PATCH")
	router.HandleFunc("/factures/{id}", h.DeleteInvoice).Methods("DELETE")
}

func validateLines(clientID *uint, counterpartField string, lines []invoiceLineRequest) map[string]string {
	fieldErrors := map[string]string{}
	if clientID == nil || *clientID == 0 {
		fieldErrors[counterpartField] = counterpartField + " is required"
	}
	if len(lines) == 0 {
		fieldErrors["medicaments"] = "at least one line is required"
	}
	for i, line := range lines {
		if line.MedicationID == "" {
			fieldErrors["medicaments."+strconv.Itoa(i)+".medicament_id"] = "medicament_id is required"
		}
		if line.Quantity == nil || *line.Quantity < 1 {
			fieldErrors["medicaments."+strconv.Itoa(i)+".quantite"] = "quantite must be at least 1"
		}
		if line.UnitPrice == nil || line.UnitPrice.IsNegative() {
			fieldErrors["medicaments."+strconv.Itoa(i)+".prix_unitaire"] = "prix_unitaire must not be negative"
		}
	}
	return fieldErrors
}

func parseID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parseDate accepts RFC3339 or plain yyyy-mm-dd; empty means unset
func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
