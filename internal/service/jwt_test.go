package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	testSecret        = "test-secret-key-at-least-32-chars-long"
	testAccessExpiry  = 15 * time.Minute
	testRefreshExpiry = 720 * time.Hour
)

func newTestJWTService(t *testing.T) *jwtService {
	t.Helper()
	svc, err := NewJWTService(testSecret, testAccessExpiry, testRefreshExpiry)
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}
	return svc.(*jwtService)
}

// =============================================================================
// Constructor Tests
// =============================================================================

func TestNewJWTService(t *testing.T) {
	service := newTestJWTService(t)

	if got := service.GetAccessExpiry(); got != testAccessExpiry {
		t.Errorf("GetAccessExpiry() = %v, want %v", got, testAccessExpiry)
	}

	if got := service.GetRefreshExpiry(); got != testRefreshExpiry {
		t.Errorf("GetRefreshExpiry() = %v, want %v", got, testRefreshExpiry)
	}
}

func TestNewJWTService_InvalidArguments(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		access  time.Duration
		refresh time.Duration
	}{
		{"empty secret", "", testAccessExpiry, testRefreshExpiry},
		{"short secret", "short", testAccessExpiry, testRefreshExpiry},
		{"zero access expiry", testSecret, 0, testRefreshExpiry},
		{"negative refresh expiry", testSecret, testAccessExpiry, -time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, err := NewJWTService(tt.secret, tt.access, tt.refresh)
			if err == nil {
				t.Error("NewJWTService() should return an error")
			}
			if service != nil {
				t.Error("NewJWTService() should return nil service on error")
			}
		})
	}
}

// =============================================================================
// Generate Tests
// =============================================================================

func TestGenerateAccessToken(t *testing.T) {
	service := newTestJWTService(t)

	tests := []struct {
		name   string
		userID int64
		fresh  bool
	}{
		{name: "fresh token", userID: 1, fresh: true},
		{name: "stale token", userID: 42, fresh: false},
		{name: "zero user ID", userID: 0, fresh: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := service.GenerateAccessToken(tt.userID, tt.fresh)
			if err != nil {
				t.Fatalf("GenerateAccessToken() error = %v", err)
			}

			claims, err := service.ValidateToken(token)
			if err != nil {
				t.Fatalf("ValidateToken() error = %v", err)
			}
			if claims.UserID != tt.userID {
				t.Errorf("Claims.UserID = %v, want %v", claims.UserID, tt.userID)
			}
			if claims.Fresh != tt.fresh {
				t.Errorf("Claims.Fresh = %v, want %v", claims.Fresh, tt.fresh)
			}
			if claims.Type != TokenTypeAccess {
				t.Errorf("Claims.Type = %q, want %q", claims.Type, TokenTypeAccess)
			}
			if claims.ID == "" {
				t.Error("Claims.ID (jti) should be set")
			}
			if claims.IsRefresh() {
				t.Error("access token should not report IsRefresh")
			}

			ttl := time.Until(claims.ExpiresAt.Time)
			if ttl <= 0 || ttl > testAccessExpiry {
				t.Errorf("access token TTL = %v, want within (0, %v]", ttl, testAccessExpiry)
			}
		})
	}
}

func TestGenerateRefreshToken(t *testing.T) {
	service := newTestJWTService(t)

	token, err := service.GenerateRefreshToken(7)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if !claims.IsRefresh() {
		t.Errorf("Claims.Type = %q, want refresh", claims.Type)
	}
	if claims.Fresh {
		t.Error("refresh tokens must never be fresh")
	}
	if claims.Subject != "7" {
		t.Errorf("Claims.Subject = %q, want 7", claims.Subject)
	}
	if ttl := time.Until(claims.ExpiresAt.Time); ttl <= testAccessExpiry {
		t.Errorf("refresh TTL = %v, should exceed access expiry", ttl)
	}
}

func TestGenerate_UniqueJTI(t *testing.T) {
	service := newTestJWTService(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, err := service.GenerateAccessToken(1, true)
		if err != nil {
			t.Fatalf("GenerateAccessToken() error = %v", err)
		}
		claims, err := service.ValidateToken(token)
		if err != nil {
			t.Fatalf("ValidateToken() error = %v", err)
		}
		if seen[claims.ID] {
			t.Fatalf("duplicate jti %s", claims.ID)
		}
		seen[claims.ID] = true
	}
}

// =============================================================================
// ValidateToken Tests
// =============================================================================

func TestValidateToken_Expired(t *testing.T) {
	service := newTestJWTService(t)
	service.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, err := service.GenerateAccessToken(1, true)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	service.now = time.Now
	_, err = service.ValidateToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("ValidateToken() error = %v, want ErrTokenExpired", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	service := newTestJWTService(t)
	other, err := NewJWTService("another-secret-that-is-32-bytes-long!", testAccessExpiry, testRefreshExpiry)
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}

	token, _ := other.GenerateAccessToken(1, true)

	_, err = service.ValidateToken(token)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidSignature", err)
	}
}

func TestValidateToken_TamperedPayload(t *testing.T) {
	service := newTestJWTService(t)
	token, _ := service.GenerateAccessToken(1, false)

	parts := strings.Split(token, ".")
	forged, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: 1,
		Type:   TokenTypeAccess,
		Fresh:  true,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "forged",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("attacker-secret-attacker-secret-xx"))
	forgedParts := strings.Split(forged, ".")

	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]
	_, err := service.ValidateToken(tampered)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidSignature", err)
	}
}

func TestValidateToken_WrongAlgorithm(t *testing.T) {
	service := newTestJWTService(t)

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: 1,
		Type:   TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "none-alg",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build none-alg token: %v", err)
	}

	_, err = service.ValidateToken(token)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidSignature", err)
	}
}

func TestValidateToken_Malformed(t *testing.T) {
	service := newTestJWTService(t)

	tests := []string{
		"",
		"not-a-token",
		"a.b",
		"a.b.c",
	}

	for _, token := range tests {
		_, err := service.ValidateToken(token)
		if !errors.Is(err, ErrMalformedToken) {
			t.Errorf("ValidateToken(%q) error = %v, want ErrMalformedToken", token, err)
		}
	}
}

func TestValidateToken_MissingClaims(t *testing.T) {
	service := newTestJWTService(t)

	sign := func(claims Claims) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		if err != nil {
			t.Fatalf("SignedString() error = %v", err)
		}
		return token
	}
	expiry := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name   string
		claims Claims
	}{
		{"no jti", Claims{Type: TokenTypeAccess, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: expiry}}},
		{"unknown type", Claims{Type: "id", RegisteredClaims: jwt.RegisteredClaims{ID: "x", ExpiresAt: expiry}}},
		{"no expiry", Claims{Type: TokenTypeAccess, RegisteredClaims: jwt.RegisteredClaims{ID: "x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ValidateToken(sign(tt.claims))
			if !errors.Is(err, ErrMalformedToken) {
				t.Errorf("ValidateToken() error = %v, want ErrMalformedToken", err)
			}
		})
	}
}
