package services

import (
	"fmt"
	"sync"
	"tumble_cup/internal/models"
)

// CartStore keeps the per-session carts. Get returns (nil, nil) when no
// cart exists for the session.
type CartStore interface {
	Get(sessionID string) (*models.Cart, error)
	Save(sessionID string, cart *models.Cart) error
	Delete(sessionID string) error
}

// MemoryCartStore is the fallback CartStore when no Redis is configured.
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string]*models.Cart
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[string]*models.Cart)}
}

func (s *MemoryCartStore) Get(sessionID string) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cart, ok := s.carts[sessionID]
	if !ok {
		return nil, nil
	}
	cp := models.Cart{Lines: append([]models.CartLine(nil), cart.Lines...)}
	return &cp, nil
}

func (s *MemoryCartStore) Save(sessionID string, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = &models.Cart{Lines: append([]models.CartLine(nil), cart.Lines...)}
	return nil
}

func (s *MemoryCartStore) Delete(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

type CartService interface {
	GetCart(sessionID string) (*models.Cart, error)
	AddItem(sessionID, itemName, style string, quantity int) (*models.Cart, error)
	RemoveItem(sessionID, itemName, style string) (*models.Cart, error)
	ClearCart(sessionID string) error
	Catalog() *models.Catalog
}

type cartService struct {
	catalog *models.Catalog
	store   CartStore
}

func NewCartService(catalog *models.Catalog, store CartStore) CartService {
	return &cartService{catalog: catalog, store: store}
}

func (s *cartService) Catalog() *models.Catalog {
	return s.catalog
}

func (s *cartService) GetCart(sessionID string) (*models.Cart, error) {
	cart, err := s.store.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		cart = models.NewCart()
	}
	return cart, nil
}

// AddItem prices the line against the catalog and merges it into the
// session cart. The cart is left untouched on any validation failure.
func (s *cartService) AddItem(sessionID, itemName, style string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, models.ErrInvalidQuantity
	}
	unitPrice, err := s.catalog.UnitPrice(itemName, style)
	if err != nil {
		return nil, err
	}

	cart, err := s.GetCart(sessionID)
	if err != nil {
		return nil, err
	}
	cart.Add(itemName, style, quantity, unitPrice)

	if err := s.store.Save(sessionID, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

func (s *cartService) RemoveItem(sessionID, itemName, style string) (*models.Cart, error) {
	cart, err := s.GetCart(sessionID)
	if err != nil {
		return nil, err
	}
	cart.Remove(itemName, style)

	if err := s.store.Save(sessionID, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

func (s *cartService) ClearCart(sessionID string) error {
	return s.store.Delete(sessionID)
}
