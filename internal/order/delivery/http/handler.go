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

	"github.com/amrani/pharmacy-backend/internal/httputil"
	meddomain "github.com/amrani/pharmacy-backend/internal/medication/domain"
	"github.com/amrani/pharmacy-backend/internal/order/domain"
	"github.com/amrani/pharmacy-backend/internal/order/usecase/command"
	"github.com/amrani/pharmacy-backend/internal/order/usecase/query"
	supplierdomain "github.com/amrani/pharmacy-backend/internal/supplier/domain"
	"github.com/amrani/pharmacy-backend/kafka"
	"github.com/amrani/pharmacy-backend/pkg/logger"
)

// OrderHandler handles HTTP requests for purchase orders using CQRS pattern
type OrderHandler struct {
	createHandler  *command.CreateOrderHandler
	receiveHandler *command.ReceiveOrderHandler
	deleteHandler  *command.DeleteOrderHandler
	updateHandler  *command.UpdateOrderHandler

	getHandler  *query.GetOrderHandler
	listHandler *query.ListOrdersHandler

	// events is optional; nil disables publishing
	events *kafka.Publisher
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	orders domain.OrderRepository,
	suppliers supplierdomain.SupplierRepository,
	medications meddomain.MedicationRepository,
	events *kafka.Publisher,
) *OrderHandler {
	return &OrderHandler{
		createHandler:  command.NewCreateOrderHandler(orders, suppliers, medications, nil),
		receiveHandler: command.NewReceiveOrderHandler(orders),
		deleteHandler:  command.NewDeleteOrderHandler(orders),
		updateHandler:  command.NewUpdateOrderHandler(orders, suppliers),
		getHandler:     query.NewGetOrderHandler(orders),
		listHandler:    query.NewListOrdersHandler(orders),
		events:         events,
	}
}

type orderLineRequest struct {
	MedicationID string           `json:"medicament_id"`
	Quantity     *int             `json:"quantite"`
	UnitPrice    *decimal.Decimal `json:"prix_unitaire"`
}

type createOrderRequest struct {
	SupplierID *uint              `json:"fournisseur_id"`
	Lines      []orderLineRequest `json:"medicaments"`
}

// CreateOrder handles POST /commandes
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fieldErrors := validateLines(req.SupplierID, "fournisseur_id", req.Lines); len(fieldErrors) > 0 {
		httputil.RespondValidation(w, fieldErrors)
		return
	}

	cmd := command.CreateOrderCommand{SupplierID: *req.SupplierID}
	for _, line := range req.Lines {
		cmd.Lines = append(cmd.Lines, command.OrderLineInput{
			MedicationID: line.MedicationID,
			Quantity:     *line.Quantity,
			UnitPrice:    *line.UnitPrice,
		})
	}

	order, err := h.createHandler.Handle(cmd)
	if err != nil {
		switch {
		case errors.Is(err, supplierdomain.ErrNotFound):
			httputil.RespondError(w, http.StatusNotFound, "Supplier not found")
		case errors.Is(err, meddomain.ErrNotFound):
			httputil.RespondError(w, http.StatusNotFound, "Medication not found")
		default:
			logger.Logger.Error().Err(err).Msg("Failed to create order")
			httputil.RespondJSON(w, http.StatusInternalServerError, httputil.Response{
				Success: false,
				Message: "Failed to create order",
				Error:   err.Error(),
			})
		}
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, httputil.Response{
		Success: true,
		Message: "Order created successfully",
		Data:    order,
	})
}

// GetOrder handles GET /commandes/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.getHandler.Handle(query.GetOrderQuery{ID: id})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Order not found")
			return
		}
		logger.Logger.Error().Err(err).Uint("id", id).Msg("Failed to get order")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to get order")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{Success: true, Data: order})
}

// ListOrders handles GET /commandes
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := query.ListOrdersQuery{}
	if raw := r.URL.Query().Get("fournisseur_id"); raw != "" {
		supplierID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Invalid supplier ID")
			return
		}
		id := uint(supplierID)
		q.SupplierID = &id
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

	orders, err := h.listHandler.Handle(q)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list orders")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to list orders")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{Success: true, Data: orders})
}

// UpdateOrder handles PATCH /commandes/{id}
func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req struct {
		SupplierID *uint   `json:"fournisseur_id"`
		OrderedAt  *string `json:"date_commande"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdateOrderCommand{OrderID: id, SupplierID: req.SupplierID}
	if req.OrderedAt != nil {
		orderedAt, err := parseDate(*req.OrderedAt)
		if err != nil {
			httputil.RespondValidation(w, map[string]string{"date_commande": "invalid date"})
			return
		}
		cmd.OrderedAt = orderedAt
	}

	order, err := h.updateHandler.Handle(cmd)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			httputil.RespondError(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, supplierdomain.ErrNotFound):
			httputil.RespondError(w, http.StatusNotFound, "Supplier not found")
		default:
			logger.Logger.Error().Err(err).Uint("id", id).Msg("Failed to update order")
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to update order")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{
		Success: true,
		Message: "Order updated successfully",
		Data:    order,
	})
}

// ReceiveOrder handles PATCH /commandes/{id}/recevoir
func (h *OrderHandler) ReceiveOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.receiveHandler.Handle(command.ReceiveOrderCommand{OrderID: id})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Order not found")
			return
		}
		if errors.Is(err, meddomain.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Medication not found")
			return
		}
		logger.Logger.Error().Err(err).Uint("id", id).Msg("Failed to receive order")
		httputil.RespondJSON(w, http.StatusInternalServerError, httputil.Response{
			Success: false,
			Message: "Failed to receive order",
			Error:   err.Error(),
		})
		return
	}

	h.publishReceived(r.Context(), order)

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{
		Success: true,
		Message: "Order received successfully. Stock updated.",
	})
}

// DeleteOrder handles DELETE /commandes/{id}
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteOrderCommand{OrderID: id}); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Order not found")
			return
		}
		logger.Logger.Error().Err(err).Uint("id", id).Msg("Failed to delete order")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete order")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, httputil.Response{
		Success: true,
		Message: "Order deleted successfully",
	})
}

func (h *OrderHandler) publishReceived(ctx context.Context, order *domain.Order) {
	if h.events == nil {
		return
	}
	err := h.events.PublishOrderReceived(ctx, kafka.OrderReceivedEvent{
		OrderID:    order.ID,
		SupplierID: order.SupplierID,
		LineCount:  len(order.Lines),
	})
	if err != nil {
		logger.Logger.Warn().Err(err).Uint("order_id", order.ID).Msg("Failed to publish order received event")
	}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/commandes", h.ListOrders).Methods("GET")
	router.HandleFunc("/commandes", h.CreateOrder).Methods("POST")
	router.HandleFunc("/commandes/{id}", h.GetOrder).Methods("GET")
	router.HandleFunc("/commandes/{id}", h.UpdateOrder).Methods("PATCH")
	router.HandleFunc("/commandes/{id}", h.DeleteOrder).Methods("DELETE")
	router.HandleFunc("/commandes/{id}/recevoir", h.ReceiveOrder).Methods("PATCH")
}

// validateLines validates the shared create-document body shape
func validateLines(counterpartID *uint, counterpartField string, lines []orderLineRequest) map[string]string {
	fieldErrors := map[string]string{}
	if counterpartID == nil || *counterpartID == 0 {
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
