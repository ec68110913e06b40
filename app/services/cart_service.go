package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tiendita/storefront/app/models"
	"github.com/tiendita/storefront/app/repositories"
	"github.com/tiendita/storefront/app/utils/calc"
	"gorm.io/gorm"
)

// CartService owns cart identity and item merge/quantity logic. It never
// mutates stock; that happens only when an order is placed. Prices flowing
// out of here are always read from the catalog at call time, never from a
// client cache.
type CartService struct {
	cartRepo     repositories.CartRepositoryImpl
	cartItemRepo repositories.CartItemRepositoryImpl
	catalogRepo  repositories.CatalogRepositoryImpl
}

func NewCartService(cartRepo repositories.CartRepositoryImpl, cartItemRepo repositories.CartItemRepositoryImpl, catalogRepo repositories.CatalogRepositoryImpl) *CartService {
	return &CartService{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		catalogRepo:  catalogRepo,
	}
}

// GetCart is the canonical cart read. It returns (nil, nil) when the session
// has no cart yet and never creates one. Items come back with variant and
// product snapshots and display totals derived from the catalog at read
// time.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up cart for session: %w", err)
	}
	if cart == nil {
		return nil, nil
	}

	detailed, err := s.cartRepo.GetWithItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}
	if detailed == nil {
		return nil, nil
	}

	s.computeTotals(detailed)
	return detailed, nil
}

// GetOrCreateCart is idempotent: it returns the session's cart, creating an
// empty one if needed. A concurrent create for the same session loses the
// insert on the session_id unique index and falls back to reading the
// winner's row.
func (s *CartService) GetOrCreateCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up cart for session: %w", err)
	}
	if cart != nil {
		return cart, nil
	}

	cart = &models.Cart{SessionID: sessionID}
	err = s.cartRepo.Create(ctx, cart)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	// Lost the creation race; the row exists now.
	cart, err = s.cartRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read cart after duplicate insert: %w", err)
	}
	if cart == nil {
		return nil, ErrConflict
	}
	return cart, nil
}

// AddItem puts qty units of a variant into the session's cart, merging into
// the existing row for that variant if there is one. Stock is checked here
// as an early courtesy; the authoritative check happens again at checkout.
func (s *CartService) AddItem(ctx context.Context, sessionID, variantID string, qty int) (*models.CartItem, error) {
	if qty <= 0 {
		qty = 1
	}

	variant, err := s.catalogRepo.FindVariant(ctx, variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("variant %s: %w", variantID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up variant: %w", err)
	}

	if variant.Stock < qty {
		return nil, &OutOfStockError{VariantID: variant.ID, Available: variant.Stock, Requested: qty}
	}

	cart, err := s.GetOrCreateCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Increment-first upsert: the atomic UPDATE covers the common case, the
	// insert covers the first add, and a duplicate-key failure on the insert
	// means a concurrent add won — retry the increment once.
	rows, err := s.cartItemRepo.IncrementQty(ctx, cart.ID, variantID, qty)
	if err != nil {
		return nil, fmt.Errorf("failed to increment cart item: %w", err)
	}
	if rows == 0 {
		item := &models.CartItem{CartID: cart.ID, VariantID: variantID, Quantity: qty}
		err = s.cartItemRepo.Insert(ctx, item)
		if err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, fmt.Errorf("failed to insert cart item: %w", err)
			}
			rows, err = s.cartItemRepo.IncrementQty(ctx, cart.ID, variantID, qty)
			if err != nil {
				return nil, fmt.Errorf("failed to increment cart item after lost insert: %w", err)
			}
			if rows == 0 {
				return nil, ErrConflict
			}
		}
	}

	item, err := s.cartItemRepo.GetByCartAndVariant(ctx, cart.ID, variantID)
	if err != nil {
		return nil, fmt.Errorf("failed to read back cart item: %w", err)
	}
	item.Variant = variant
	item.UnitPrice = variant.EffectivePrice()
	item.Subtotal = item.UnitPrice * int64(item.Quantity)
	return item, nil
}

// UpdateItemQuantity sets an item's quantity in place. A quantity of zero or
// less deletes the row entirely; the returned flag reports removal.
func (s *CartService) UpdateItemQuantity(ctx context.Context, itemID string, qty int) (*models.CartItem, bool, error) {
	item, err := s.cartItemRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fmt.Errorf("cart item %s: %w", itemID, ErrNotFound)
		}
		return nil, false, fmt.Errorf("failed to look up cart item: %w", err)
	}

	if qty <= 0 {
		if _, err := s.cartItemRepo.Delete(ctx, itemID); err != nil {
			return nil, false, fmt.Errorf("failed to remove cart item: %w", err)
		}
		return nil, true, nil
	}

	variant, err := s.catalogRepo.FindVariant(ctx, item.VariantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fmt.Errorf("variant %s: %w", item.VariantID, ErrNotFound)
		}
		return nil, false, fmt.Errorf("failed to look up variant: %w", err)
	}
	if variant.Stock < qty {
		return nil, false, &OutOfStockError{VariantID: variant.ID, Available: variant.Stock, Requested: qty}
	}

	if err := s.cartItemRepo.UpdateQty(ctx, itemID, qty); err != nil {
		return nil, false, fmt.Errorf("failed to update cart item quantity: %w", err)
	}

	item.Quantity = qty
	item.Variant = variant
	item.UnitPrice = variant.EffectivePrice()
	item.Subtotal = item.UnitPrice * int64(qty)
	return item, false, nil
}

// RemoveItem deletes a cart item. Removing an already-removed item is a
// no-op, so retried deletes stay safe.
func (s *CartService) RemoveItem(ctx context.Context, itemID string) error {
	if _, err := s.cartItemRepo.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

// ClearCart deletes every item of the session's cart; the cart row itself
// persists empty.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	cart, err := s.cartRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to look up cart for session: %w", err)
	}
	if cart == nil {
		return nil
	}
	if err := s.cartItemRepo.ClearCartItems(ctx, nil, cart.ID); err != nil {
		return fmt.Errorf("failed to clear cart items: %w", err)
	}
	return nil
}

// computeTotals fills the display figures on a loaded cart: per-item unit
// price and subtotal from the effective price read moments ago, the cart
// subtotal, and the flat tax on top.
func (s *CartService) computeTotals(cart *models.Cart) {
	var subtotal int64
	var totalItems int

	for i := range cart.CartItems {
		item := &cart.CartItems[i]
		if item.Variant == nil {
			continue
		}
		item.UnitPrice = item.Variant.EffectivePrice()
		item.Subtotal = item.UnitPrice * int64(item.Quantity)
		subtotal += item.Subtotal
		totalItems += item.Quantity
	}

	cart.Subtotal = subtotal
	cart.TaxAmount = calc.CalculateTax(subtotal)
	cart.GrandTotal = cart.Subtotal + cart.TaxAmount
	cart.TotalItems = totalItems
}
