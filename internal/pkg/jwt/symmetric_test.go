package jwt

import (
	"errors"
	"strconv"
	"testing"
	"time"

	libJWT "github.com/golang-jwt/jwt/v5"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type staticGenerator struct{ id string }

func (g staticGenerator) Generate() string { return g.id }

func testConfig(now time.Time) Config {
	return Config{
		Secret:     []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
		Issuer:     "servizo",
		Audiences:  []string{"servizo-api"},
		TTLMinutes: time.Hour,
		Clock:      fixedClock{now: now},
		UUID:       staticGenerator{id: "token-id"},
	}
}

func TestSymmetricGenerateVerify(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		// Arrange
		s, err := NewHS512(testConfig(time.Now()))
		if err != nil {
			t.Fatalf("NewHS512() error = %v", err)
		}

		// Act
		token, err := s.Generate(7, "client@servizo.com")
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		clm, err := s.Verify(token)

		// Assert
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if clm.UserID != 7 {
			t.Fatalf("Verify() UserID = %d, want 7", clm.UserID)
		}
		if clm.UserEmail != "client@servizo.com" {
			t.Fatalf("Verify() UserEmail = %q", clm.UserEmail)
		}
		if clm.IsAdmin() {
			t.Fatalf("Verify() claims without role must not be admin")
		}
	})

	t.Run("RoleClaimFromExternalIssuer", func(t *testing.T) {
		// Arrange
		cfg := testConfig(time.Now())
		s, err := NewHS512(cfg)
		if err != nil {
			t.Fatalf("NewHS512() error = %v", err)
		}
		now := time.Now()
		token, err := libJWT.
			NewWithClaims(libJWT.SigningMethodHS512, Claims{
				RegisteredClaims: libJWT.RegisteredClaims{
					ID:        "external-id",
					Subject:   strconv.FormatInt(42, 10),
					Issuer:    cfg.Issuer,
					Audience:  cfg.Audiences,
					IssuedAt:  libJWT.NewNumericDate(now),
					ExpiresAt: libJWT.NewNumericDate(now.Add(time.Hour)),
				},
				UserID:    42,
				UserEmail: "ops@servizo.com",
				UserRole:  "super_admin",
			}).
			SignedString(cfg.Secret)
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}

		// Act
		clm, err := s.Verify(token)

		// Assert
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if clm.UserRole != "super_admin" {
			t.Fatalf("Verify() UserRole = %q, want super_admin", clm.UserRole)
		}
		if !clm.IsAdmin() {
			t.Fatalf("Verify() super_admin claims must be admin")
		}
	})

	t.Run("Expired", func(t *testing.T) {
		// Arrange
		s, err := NewHS512(testConfig(time.Now().Add(-2 * time.Hour)))
		if err != nil {
			t.Fatalf("NewHS512() error = %v", err)
		}
		token, err := s.Generate(7, "client@servizo.com")
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		// Act
		_, err = s.Verify(token)

		// Assert
		if !errors.Is(err, ErrTokenExpired) {
			t.Fatalf("Verify() error = %v, want ErrTokenExpired", err)
		}
	})

	t.Run("ShortSecretRejected", func(t *testing.T) {
		// Arrange
		cfg := testConfig(time.Now())
		cfg.Secret = []byte("too-short")

		// Act
		_, err := NewHS512(cfg)

		// Assert
		if !errors.Is(err, ErrSigningKeyTooShort) {
			t.Fatalf("NewHS512() error = %v, want ErrSigningKeyTooShort", err)
		}
	})
}
