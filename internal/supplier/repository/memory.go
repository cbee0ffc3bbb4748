package repository

import (
	"sort"
	"sync"

	"github.com/amrani/pharmacy-backend/internal/supplier/domain"
)

// MemorySupplierRepository is an in-memory SupplierRepository for tests
type MemorySupplierRepository struct {
	mu        sync.Mutex
	nextID    uint
	suppliers map[uint]domain.Supplier
}

func NewMemorySupplierRepository() *MemorySupplierRepository {
	return &MemorySupplierRepository{nextID: 1, suppliers: make(map[uint]domain.Supplier)}
}

func (r *MemorySupplierRepository) Create(supplier *domain.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if supplier.ID == 0 {
		supplier.ID = r.nextID
		r.nextID++
	}
	r.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *MemorySupplierRepository) FindByID(id uint) (*domain.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	supplier, ok := r.suppliers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &supplier, nil
}

func (r *MemorySupplierRepository) FindAll() ([]domain.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	suppliers := make([]domain.Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		suppliers = append(suppliers, s)
	}
	sort.Slice(suppliers, func(i, j int) bool { return suppliers[i].Name < suppliers[j].Name })
	return suppliers, nil
}

func (r *MemorySupplierRepository) Update(supplier *domain.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.suppliers[supplier.ID]; !ok {
		return domain.ErrNotFound
	}
	r.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *MemorySupplierRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.suppliers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.suppliers, id)
	return nil
}

func (r *MemorySupplierRepository) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.suppliers)), nil
}
