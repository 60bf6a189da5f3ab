// internal/service/auth_service.go
package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/autovilla/dealership-backend/internal/config"
	appErrors "github.com/autovilla/dealership-backend/internal/errors"
	"github.com/autovilla/dealership-backend/internal/model"
	"github.com/autovilla/dealership-backend/internal/repository"
)

type AuthService struct {
	AdminRepo repository.AdminRepositoryInterface
	JWT       config.JWTConfig
}

// Claims is the JWT payload issued at login.
type Claims struct {
	AdminID int    `json:"admin_id"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// Login verifies credentials and issues a signed token.
func (s *AuthService) Login(email, password string) (string, *model.Admin, error) {
	admin, err := s.AdminRepo.GetByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if admin == nil || !admin.Active {
		return "", nil, appErrors.NewValidation("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, appErrors.NewValidation("invalid credentials")
	}

	now := time.Now()
	claims := Claims{
		AdminID: admin.ID,
		Role:    admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", admin.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.JWT.TTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.JWT.Secret))
	if err != nil {
		return "", nil, fmt.Errorf("signing token: %w", err)
	}
	return token, admin, nil
}

// ParseToken validates a bearer token and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func (s *AuthService) GetAdmin(id int) (*model.Admin, error) {
	return s.AdminRepo.GetByID(id)
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", appErrors.NewValidation("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
