package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiendita/storefront/app/db/testdb"
	"github.com/tiendita/storefront/app/models"
	"gorm.io/gorm"
)

func mustCreateOrder(t *testing.T, db *gorm.DB, code string, userID *string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderCode:  code,
		UserID:     userID,
		OrderDate:  time.Now(),
		Subtotal:   2999,
		GrandTotal: 2999,
		Status:     models.OrderStatusPending,
	}
	require.NoError(t, db.Create(order).Error)
	require.NoError(t, db.Create(&models.OrderItem{
		OrderID:     order.ID,
		VariantID:   "v1",
		ProductName: "camiseta",
		VariantName: "Default",
		Quantity:    1,
		Price:       2999,
	}).Error)
	return order
}

func TestFindByCode(t *testing.T) {
	db := testdb.Open(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	created := mustCreateOrder(t, db, "INV-20260831-aaaa0001", nil)

	found, err := repo.FindByCode(ctx, created.OrderCode)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
	require.Len(t, found.OrderItems, 1)

	missing, err := repo.FindByCode(ctx, "INV-00000000-missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFindByUserID(t *testing.T) {
	db := testdb.Open(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	user := &models.User{FirstName: "Ana", LastName: "García", Email: "ana@tienda.local", Password: "x"}
	require.NoError(t, db.Create(user).Error)

	mustCreateOrder(t, db, "INV-20260831-aaaa0001", &user.ID)
	mustCreateOrder(t, db, "INV-20260831-aaaa0002", &user.ID)
	mustCreateOrder(t, db, "INV-20260831-aaaa0003", nil)

	orders, err := repo.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	all, err := repo.GetAllOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdateStatusConditional(t *testing.T) {
	db := testdb.Open(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := mustCreateOrder(t, db, "INV-20260831-aaaa0001", nil)

	rows, err := repo.UpdateStatus(ctx, order.ID, models.OrderStatusPending, models.OrderStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// The row is PAID now; an update still expecting PENDING must not apply.
	rows, err = repo.UpdateStatus(ctx, order.ID, models.OrderStatusPending, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Zero(t, rows)

	reloaded, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, reloaded.Status)
}

func TestOrderCodeUnique(t *testing.T) {
	db := testdb.Open(t)

	mustCreateOrder(t, db, "INV-20260831-aaaa0001", nil)
	err := db.Create(&models.Order{
		OrderCode: "INV-20260831-aaaa0001",
		OrderDate: time.Now(),
		Status:    models.OrderStatusPending,
	}).Error
	assert.Error(t, err)
}
