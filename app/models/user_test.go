package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPasswordHashing(t *testing.T) {
	user := &User{Email: "ana@tienda.local"}
	require.NoError(t, user.SetPassword("secret"))

	assert.NotEqual(t, "secret", user.Password)
	assert.True(t, user.CheckPassword("secret"))
	assert.False(t, user.CheckPassword("wrong"))
}
