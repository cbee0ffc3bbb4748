package kafka

import "time"

// InvoiceCreatedEvent is emitted after an invoice commits and stock is debited
type InvoiceCreatedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	InvoiceID uint      `json:"invoice_id"`
	ClientID  uint      `json:"client_id"`
	Total     string    `json:"total"`
	LineCount int       `json:"line_count"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderReceivedEvent is emitted after an order receipt credits stock
type OrderReceivedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OrderID    uint      `json:"order_id"`
	SupplierID uint      `json:"supplier_id"`
	LineCount  int       `json:"line_count"`
	Timestamp  time.Time `json:"timestamp"`
}

// StockAdjustedEvent is emitted after an administrative stock override
type StockAdjustedEvent struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	MedicationID string    `json:"medication_id"`
	Operation    string    `json:"operation"`
	Quantity     int       `json:"quantity"`
	NewStock     int       `json:"new_stock"`
	Timestamp    time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeInvoiceCreated = "invoice.created"
	EventTypeOrderReceived  = "order.received"
	EventTypeStockAdjusted  = "stock.adjusted"
)

// Kafka topics
const (
	TopicInvoiceCreated = "invoice-created"
	TopicOrderReceived  = "order-received"
	TopicStockAdjusted  = "stock-adjusted"
)
