package repository

import (
	"sort"
	"sync"

	"github.com/amrani/pharmacy-backend/internal/client/domain"
)

// MemoryClientRepository is an in-memory ClientRepository for tests
type MemoryClientRepository struct {
	mu      sync.Mutex
	nextID  uint
	clients map[uint]domain.Client
}

func NewMemoryClientRepository() *MemoryClientRepository {
	return &MemoryClientRepository{nextID: 1, clients: make(map[uint]domain.Client)}
}

func (r *MemoryClientRepository) Create(client *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if client.ID == 0 {
		client.ID = r.nextID
		r.nextID++
	}
	r.clients[client.ID] = *client
	return nil
}

func (r *MemoryClientRepository) FindByID(id uint) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	client, ok := r.clients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &client, nil
}

func (r *MemoryClientRepository) FindAll() ([]domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clients := make([]domain.Client, 0, len(r.clients))
	for _, c := range r.clients {
		clients = append(clients, c)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].Name < clients[j].Name })
	return clients, nil
}

func (r *MemoryClientRepository) Update(client *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[client.ID]; !ok {
		return domain.ErrNotFound
	}
	r.clients[client.ID] = *client
	return nil
}

func (r *MemoryClientRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.clients, id)
	return nil
}

func (r *MemoryClientRepository) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.clients)), nil
}
