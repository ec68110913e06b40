package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/tiendita/storefront/app/models"
	"github.com/tiendita/storefront/app/repositories"
	"github.com/tiendita/storefront/app/utils/calc"
	"gorm.io/gorm"
)

// CheckoutService converts a populated cart into an immutable order. The
// order row, its items, the stock decrements and the cart clear commit as
// one transaction; any failure leaves cart and stock untouched.
type CheckoutService struct {
	db            *gorm.DB
	cartRepo      repositories.CartRepositoryImpl
	cartItemRepo  repositories.CartItemRepositoryImpl
	catalogRepo   repositories.CatalogRepositoryImpl
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	userRepo      repositories.UserRepositoryImpl
}

func NewCheckoutService(
	db *gorm.DB,
	cartRepo repositories.CartRepositoryImpl,
	cartItemRepo repositories.CartItemRepositoryImpl,
	catalogRepo repositories.CatalogRepositoryImpl,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	userRepo repositories.UserRepositoryImpl,
) *CheckoutService {
	return &CheckoutService{
		db:            db,
		cartRepo:      cartRepo,
		cartItemRepo:  cartItemRepo,
		catalogRepo:   catalogRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		userRepo:      userRepo,
	}
}

// PlaceOrder checks the session's cart out. userID may be empty for guest
// checkout. For every item the stock decrement is a single conditional
// update evaluated inside the transaction, so two checkouts racing for the
// last unit can never both succeed. The price frozen into each order item is
// the effective price read at this moment, immune to later catalog edits.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID, userID string) (*models.Order, error) {
	cart, err := s.cartRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up cart for session: %w", err)
	}
	if cart == nil {
		return nil, ErrEmptyCart
	}

	// A session can carry a user id that no longer resolves (stale cookie,
	// deleted account); such orders go through as guest checkouts.
	if userID != "" {
		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		if user == nil {
			userID = ""
		}
	}

	detailed, err := s.cartRepo.GetWithItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}
	if detailed == nil || len(detailed.CartItems) == 0 {
		return nil, ErrEmptyCart
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("PlaceOrder: rolling back transaction after panic: %v", r)
			tx.Rollback()
			panic(r)
		}
	}()

	var subtotal int64
	orderItems := make([]models.OrderItem, 0, len(detailed.CartItems))

	for _, cartItem := range detailed.CartItems {
		if cartItem.Variant == nil || cartItem.Variant.Product == nil {
			tx.Rollback()
			return nil, fmt.Errorf("variant %s: %w", cartItem.VariantID, ErrNotFound)
		}

		ok, err := s.catalogRepo.DecrementStock(ctx, tx, cartItem.VariantID, cartItem.Quantity)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to decrement stock for variant %s: %w", cartItem.VariantID, err)
		}
		if !ok {
			tx.Rollback()
			return nil, s.outOfStock(ctx, cartItem.VariantID, cartItem.Quantity)
		}

		price := cartItem.Variant.EffectivePrice()
		subtotal += price * int64(cartItem.Quantity)

		orderItems = append(orderItems, models.OrderItem{
			VariantID:   cartItem.VariantID,
			ProductName: cartItem.Variant.Product.Name,
			VariantName: cartItem.Variant.Name,
			Sku:         cartItem.Variant.Sku,
			Quantity:    cartItem.Quantity,
			Price:       price,
		})
	}

	taxAmount := calc.CalculateTax(subtotal)

	order := &models.Order{
		OrderCode:  generateOrderCode(),
		OrderDate:  time.Now(),
		Subtotal:   subtotal,
		TaxAmount:  taxAmount,
		GrandTotal: subtotal + taxAmount,
		Status:     models.OrderStatusPending,
	}
	if userID != "" {
		order.UserID = &userID
	}

	if err := s.orderRepo.Create(ctx, tx, order); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for i := range orderItems {
		orderItems[i].OrderID = order.ID
	}
	if err := s.orderItemRepo.BulkCreate(ctx, tx, orderItems); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err := s.cartItemRepo.ClearCartItems(ctx, tx, cart.ID); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit checkout transaction: %w", err)
	}

	order.OrderItems = orderItems
	log.Printf("PlaceOrder: order %s created for session %s, total %d", order.OrderCode, sessionID, order.GrandTotal)
	return order, nil
}

// MarkPaid simulates payment capture: the order moves PENDING → PAID. Real
// payment processing is an external collaborator.
func (s *CheckoutService) MarkPaid(ctx context.Context, orderID string) (*models.Order, error) {
	return s.UpdateOrderStatus(ctx, orderID, models.OrderStatusPaid)
}

// Cancel moves an order to CANCELLED; only PENDING and PAID orders qualify.
// Cancelling does not restock.
func (s *CheckoutService) Cancel(ctx context.Context, orderID string) (*models.Order, error) {
	return s.UpdateOrderStatus(ctx, orderID, models.OrderStatusCancelled)
}

// UpdateOrderStatus applies one step of the forward-only status machine.
func (s *CheckoutService) UpdateOrderStatus(ctx context.Context, orderID string, status int) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}

	if !models.ValidOrderTransition(order.Status, status) {
		return nil, fmt.Errorf("%s to %s: %w",
			models.OrderStatusLabel(order.Status), models.OrderStatusLabel(status), ErrInvalidStatusTransition)
	}

	// The update is conditional on the status just validated; losing that
	// race means another transition committed in between.
	rows, err := s.orderRepo.UpdateStatus(ctx, orderID, order.Status, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("order %s status changed concurrently: %w", orderID, ErrConflict)
	}

	order.Status = status
	return order, nil
}

// outOfStock builds the failure after a refused decrement, re-reading the
// variant so the error can say how much really is available.
func (s *CheckoutService) outOfStock(ctx context.Context, variantID string, requested int) error {
	available := 0
	if variant, err := s.catalogRepo.FindVariant(ctx, variantID); err == nil {
		available = variant.Stock
	}
	return &OutOfStockError{VariantID: variantID, Available: available, Requested: requested}
}

func generateOrderCode() string {
	return fmt.Sprintf("INV-%s-%s", time.Now().Format("20060102"), uuid.New().String()[:8])
}
