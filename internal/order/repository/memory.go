package repository

import (
	"sort"
	"sync"

	meddomain "github.com/amrani/pharmacy-backend/internal/medication/domain"
	"github.com/amrani/pharmacy-backend/internal/order/domain"
)

// MemoryOrderRepository is an in-memory OrderRepository for tests.
// It shares a StockLedger with the medication repository so workflow
// tests observe real stock movement.
type MemoryOrderRepository struct {
	mu     sync.Mutex
	nextID uint
	orders map[uint]domain.Order
	ledger meddomain.StockLedger
}

func NewMemoryOrderRepository(ledger meddomain.StockLedger) *MemoryOrderRepository {
	return &MemoryOrderRepository{nextID: 1, orders: make(map[uint]domain.Order), ledger: ledger}
}

func (r *MemoryOrderRepository) Create(order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == 0 {
		order.ID = r.nextID
		r.nextID++
	}
	for i := range order.Lines {
		order.Lines[i].OrderID = order.ID
	}
	r.orders[order.ID] = *order
	return nil
}

func (r *MemoryOrderRepository) FindByID(id uint) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &order, nil
}

func (r *MemoryOrderRepository) FindAll(filter domain.Filter) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var orders []domain.Order
	for _, o := range r.orders {
		if filter.SupplierID != nil && o.SupplierID != *filter.SupplierID {
			continue
		}
		if filter.From != nil && o.OrderedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && o.OrderedAt.After(*filter.To) {
			continue
		}
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].OrderedAt.After(orders[j].OrderedAt) })
	return orders, nil
}

func (r *MemoryOrderRepository) UpdateHeader(id uint, patch domain.HeaderPatch) (*domain.Order, error) {
	r.mu.Lock()

	order, ok := r.orders[id]
	if !ok {
		r.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	if patch.SupplierID != nil {
		order.SupplierID = *patch.SupplierID
	}
	if patch.OrderedAt != nil {
		order.OrderedAt = *patch.OrderedAt
	}
	r.orders[id] = order
	r.mu.Unlock()

	return r.FindByID(id)
}

func (r *MemoryOrderRepository) Receive(id uint) (*domain.Order, error) {
	order, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	for _, line := range order.Lines {
		if err := r.ledger.Increment(nil, line.MedicationID, line.Quantity); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func (r *MemoryOrderRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *MemoryOrderRepository) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.orders)), nil
}
