package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiendita/storefront/app/db/testdb"
	"github.com/tiendita/storefront/app/models"
	"gorm.io/gorm"
)

func TestUserCreateAndLookup(t *testing.T) {
	db := testdb.Open(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{FirstName: "Ana", LastName: "García", Email: "ana@tienda.local"}
	require.NoError(t, user.SetPassword("secret"))
	require.NoError(t, repo.Create(ctx, user))
	assert.Equal(t, models.RoleCustomer, userRole(t, db, user.ID))

	byEmail, err := repo.FindByEmail(ctx, "ana@tienda.local")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "ana@tienda.local", byID.Email)
}

func TestUserLookupAbsent(t *testing.T) {
	db := testdb.Open(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user, err := repo.FindByEmail(ctx, "nobody@tienda.local")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = repo.FindByID(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserEmailUnique(t *testing.T) {
	db := testdb.Open(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &models.User{FirstName: "Ana", LastName: "García", Email: "ana@tienda.local", Password: "x"}
	require.NoError(t, repo.Create(ctx, first))

	second := &models.User{FirstName: "Otra", LastName: "Ana", Email: "ana@tienda.local", Password: "x"}
	err := repo.Create(ctx, second)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func userRole(t *testing.T, db *gorm.DB, userID string) string {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	return user.Role
}
