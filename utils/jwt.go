package utils

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var JWTSecret []byte

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Default hanya untuk development.
		secret = "SmartCafeDevSecret2026"
	}
	JWTSecret = []byte(secret)
}

type CustomClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken membuat access token HS256 berumur 24 jam.
func GenerateToken(userID, role string) (string, error) {
	claims := &CustomClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "SmartCafeOrderingApp",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

// GenerateResetToken membuat token pendek (15 menit) khusus reset password.
// Subject dibedakan supaya reset token tidak bisa dipakai sebagai access token.
func GenerateResetToken(userID string) (string, error) {
	claims := &CustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "password_reset",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "SmartCafeOrderingApp",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

// ParseToken memvalidasi signature dan expiry, lalu mengembalikan claims.
func ParseToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// ParseResetToken menerima hanya token dengan subject password_reset.
func ParseResetToken(tokenString string) (*CustomClaims, error) {
	claims, err := ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Subject != "password_reset" {
		return nil, errors.New("not a password reset token")
	}
	return claims, nil
}

// Blacklist token untuk logout. Entry disimpan sampai melewati expiry
// aslinya lalu dibersihkan oleh job terjadwal.
var (
	blacklist   = make(map[string]time.Time)
	blacklistMu sync.RWMutex
)

// BlacklistToken menandai token tidak valid lagi sampai waktu expirynya.
func BlacklistToken(tokenString string) {
	claims, err := ParseToken(tokenString)
	expiry := time.Now().Add(24 * time.Hour)
	if err == nil && claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}

	blacklistMu.Lock()
	defer blacklistMu.Unlock()
	blacklist[tokenString] = expiry
}

// IsTokenBlacklisted -> true kalau token sudah di-logout.
func IsTokenBlacklisted(tokenString string) bool {
	blacklistMu.RLock()
	defer blacklistMu.RUnlock()
	_, found := blacklist[tokenString]
	return found
}

// PurgeExpiredBlacklist membuang entry yang sudah lewat expiry. Dipanggil
// berkala oleh scheduler di main.
func PurgeExpiredBlacklist() {
	now := time.Now()
	blacklistMu.Lock()
	defer blacklistMu.Unlock()
	for token, expiry := range blacklist {
		if now.After(expiry) {
			delete(blacklist, token)
		}
	}
}
