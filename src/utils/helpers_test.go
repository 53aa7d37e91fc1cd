package utils

import (
	"carebook/src/types"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestGenerateJWT(t *testing.T) {
	token, err := GenerateJWT("someone@example.com", 42, types.ROLE_USER)
	assert.Nil(t, err)
	assert.NotEmpty(t, token)

	claims := &types.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return jwtKey, nil
	})
	assert.Nil(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "someone@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	assert.Nil(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword("s3cret-pass", hash))
	assert.False(t, CheckPassword("wrong-pass", hash))
}

func TestPaginate(t *testing.T) {
	offset, limit := Paginate(1, 10)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 10, limit)

	offset, limit = Paginate(3, 25)
	assert.Equal(t, 50, offset)
	assert.Equal(t, 25, limit)

	offset, limit = Paginate(0, 0)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 10, limit)

	_, limit = Paginate(1, 500)
	assert.Equal(t, 100, limit)
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(0, 1, 10)
	assert.Equal(t, int64(0), p.Total)
	assert.Equal(t, 0, p.Pages)

	p = NewPagination(25, 2, 10)
	assert.Equal(t, 3, p.Pages)
	assert.Equal(t, 2, p.Page)

	p = NewPagination(30, 1, 10)
	assert.Equal(t, 3, p.Pages)
}

func TestILikePattern(t *testing.T) {
	assert.Equal(t, "%baby%", ILikePattern("baby"))
	assert.Equal(t, "%baby care%", ILikePattern("  baby care "))
}
