package utils

import (
	"carebook/src/types"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

func GenerateJWT(email string, userId uint, role types.Role) (string, error) {
	now := time.Now()
	claims := &types.Claims{
		Email: email,
		Role:  string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userId),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Paginate normalizes page/limit and returns the query offset.
func Paginate(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return (page - 1) * limit, limit
}

func NewPagination(total int64, page, limit int) types.Pagination {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return types.Pagination{Total: total, Page: page, Pages: pages}
}

// ILikePattern builds the pattern for case-insensitive substring search.
func ILikePattern(search string) string {
	return "%" + strings.TrimSpace(search) + "%"
}
