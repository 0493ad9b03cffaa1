package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ChurchSite/models"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	TokenTTL          = 24 * time.Hour
	MinPasswordLength = 6
	// MaxPasswordBytes is the bcrypt input limit.
	MaxPasswordBytes = 72
)

var (
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrPasswordTooLong = fmt.Errorf("password exceeds %d bytes", MaxPasswordBytes)

	// PasswordCost is lowered by tests to keep hashing fast.
	PasswordCost = bcrypt.DefaultCost
)

type Claims struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

type TokenService struct {
	Secret []byte
	TTL    time.Duration
}

func NewTokenService(secret string) TokenService {
	return TokenService{Secret: []byte(secret), TTL: TokenTTL}
}

// CreateToken signs the user's public identity with a fixed expiry.
func (t TokenService) CreateToken(user models.Identity) (string, time.Time, error) {
	ttl := t.TTL
	if ttl == 0 {
		ttl = TokenTTL
	}
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Name:     user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expiresAt, nil
}

// ParseToken verifies signature and expiry and returns the embedded identity.
func (t TokenService) ParseToken(tokenString string) (models.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.Secret, nil
	})
	if err != nil || !token.Valid {
		return models.Identity{}, ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return models.Identity{}, ErrInvalidToken
	}

	return models.Identity{
		ID:       claims.ID,
		Email:    claims.Email,
		Username: claims.Username,
		Name:     claims.Name,
	}, nil
}

func HashPassword(raw string) (string, error) {
	if len(raw) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// CompareDummyPassword burns the same bcrypt work as a real check. Login calls
// it for unknown users so response time does not reveal which usernames exist.
func CompareDummyPassword(raw string) {
	dummyHashOnce.Do(func() {
		buf := make([]byte, 16)
		_, _ = rand.Read(buf)
		dummyHash, _ = HashPassword(hex.EncodeToString(buf))
	})
	CheckPassword(dummyHash, raw)
}
