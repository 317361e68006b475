package services

import (
	"context"
	"sync"

	"torget-app-io/api/internal/common"
	"torget-app-io/api/pkg/models"

	"github.com/pkg/errors"
)

// CartStore is the single source of truth for one owner's cart. Lines are
// keyed by (product, variant selection); every mutation synchronously writes
// the full collection to the configured storage.
type CartStore struct {
	mu      sync.Mutex
	ownerID string
	items   []models.CartItem
	storage CartStorage
}

// NewCartStore constructs a store and hydrates it from storage. A missing
// stored cart is not an error; the store starts empty.
func NewCartStore(ctx context.Context, ownerID string, storage CartStorage) (*CartStore, error) {
	items, err := storage.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return &CartStore{
		ownerID: ownerID,
		items:   items,
		storage: storage,
	}, nil
}

// AddItem merges into an existing line when product and variant selection
// match, otherwise appends a new line.
func (cs *CartStore) AddItem(ctx context.Context, req models.CartItemRequest) error {
	if err := common.Validate.Struct(&req); err != nil {
		return err
	}

	item := models.CartItem{
		ProductId: req.ProductId,
		Title:     req.Title,
		Thumbnail: req.Thumbnail,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Variant:   req.Variant,
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	if idx := cs.findLine(item.ProductId, item.Variant); idx >= 0 {
		merged := cs.items[idx].Quantity + item.Quantity
		if merged > common.MAX_CART_QUANTITY {
			return errors.Errorf("quantity limit exceeded for %q", item.ProductId)
		}
		cs.items[idx].Quantity = merged
	} else {
		cs.items = append(cs.items, item)
	}

	return cs.persist(ctx)
}

// RemoveItem deletes the matching line. Removing an absent line is a no-op.
func (cs *CartStore) RemoveItem(ctx context.Context, productID string, variant models.VariantSelection) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	idx := cs.findLine(productID, variant)
	if idx < 0 {
		return nil
	}

	cs.items = append(cs.items[:idx], cs.items[idx+1:]...)
	return cs.persist(ctx)
}

// UpdateQuantity sets the line's quantity to the given absolute value. A
// value of zero or less removes the line.
func (cs *CartStore) UpdateQuantity(ctx context.Context, productID string, variant models.VariantSelection, quantity int) error {
	if quantity <= 0 {
		return cs.RemoveItem(ctx, productID, variant)
	}
	if quantity > common.MAX_CART_QUANTITY {
		return errors.Errorf("quantity limit exceeded for %q", productID)
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	idx := cs.findLine(productID, variant)
	if idx < 0 {
		return nil
	}

	cs.items[idx].Quantity = quantity
	return cs.persist(ctx)
}

// Clear empties the cart and removes the stored copy.
func (cs *CartStore) Clear(ctx context.Context) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.items = nil
	return cs.storage.Delete(ctx, cs.ownerID)
}

// Items returns a copy of the current lines in insertion order.
func (cs *CartStore) Items() []models.CartItem {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	out := make([]models.CartItem, len(cs.items))
	copy(out, cs.items)
	return out
}

// ItemCount is the sum of quantities across all lines.
func (cs *CartStore) ItemCount() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	count := 0
	for _, item := range cs.items {
		count += item.Quantity
	}
	return count
}

// Total is the sum of line totals, recomputed from the current lines.
func (cs *CartStore) Total() float64 {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	total := 0.0
	for _, item := range cs.items {
		total += item.LineTotal()
	}
	return total
}

// Snapshot bundles items, count and total in one read.
func (cs *CartStore) Snapshot() models.CartSnapshot {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	items := make([]models.CartItem, len(cs.items))
	copy(items, cs.items)

	count := 0
	total := 0.0
	for _, item := range cs.items {
		count += item.Quantity
		total += item.LineTotal()
	}

	return models.CartSnapshot{Items: items, ItemCount: count, Total: total}
}

// IsEmpty reports whether the cart has no lines.
func (cs *CartStore) IsEmpty() bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return len(cs.items) == 0
}

// caller must hold cs.mu
func (cs *CartStore) findLine(productID string, variant models.VariantSelection) int {
	for i, item := range cs.items {
		if item.ProductId == productID && item.Variant.Equal(variant) {
			return i
		}
	}
	return -1
}

// caller must hold cs.mu
func (cs *CartStore) persist(ctx context.Context) error {
	return cs.storage.Save(ctx, cs.ownerID, cs.items)
}

// CartService hands out the per-owner cart stores. Stores are hydrated from
// storage on first access and dropped from memory on Dispose; the persisted
// copy survives.
type CartService struct {
	mu      sync.Mutex
	storage CartStorage
	stores  map[string]*CartStore
}

func NewCartService(storage CartStorage) *CartService {
	return &CartService{
		storage: storage,
		stores:  make(map[string]*CartStore),
	}
}

// StoreFor returns the owner's cart store, constructing it on first use.
// Hydration hits storage, so it runs outside the registry lock; when two
// callers hydrate the same owner at once the first insert wins.
func (s *CartService) StoreFor(ctx context.Context, ownerID string) (*CartStore, error) {
	s.mu.Lock()
	if store, ok := s.stores[ownerID]; ok {
		s.mu.Unlock()
		return store, nil
	}
	s.mu.Unlock()

	store, err := NewCartStore(ctx, ownerID, s.storage)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.stores[ownerID]; ok {
		return existing, nil
	}
	s.stores[ownerID] = store
	return store, nil
}

// Dispose forgets the in-memory store for the owner.
func (s *CartService) Dispose(ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stores, ownerID)
}
