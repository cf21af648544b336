package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Scheme     = "pbkdf2-sha256"
	pbkdf2SaltLength = 16
	pbkdf2KeyLength  = 32
	// DefaultPasswordRounds is the PBKDF2 iteration count for new digests.
	DefaultPasswordRounds = 29000
	minPasswordRounds     = 1000
)

// ErrInvalidDigest is returned when a stored digest cannot be parsed.
var ErrInvalidDigest = errors.New("invalid password digest")

// adaptedEncoding is unpadded standard base64 with '.' in place of '+'.
var adaptedEncoding = base64.NewEncoding(
	"ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789./",
).WithPadding(base64.NoPadding)

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) (bool, error)
}

type pbkdf2Hasher struct {
	rounds int
}

// NewPasswordHasher creates a PBKDF2-SHA256 hasher producing digests of the
// form $pbkdf2-sha256$<rounds>$<salt>$<checksum>.
func NewPasswordHasher(rounds int) (PasswordHasher, error) {
	if rounds < minPasswordRounds {
		return nil, fmt.Errorf("password rounds must be at least %d", minPasswordRounds)
	}
	return &pbkdf2Hasher{rounds: rounds}, nil
}

func (h *pbkdf2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, pbkdf2SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	sum := pbkdf2.Key([]byte(password), salt, h.rounds, pbkdf2KeyLength, sha256.New)

	return fmt.Sprintf("$%s$%d$%s$%s",
		pbkdf2Scheme,
		h.rounds,
		adaptedEncoding.EncodeToString(salt),
		adaptedEncoding.EncodeToString(sum),
	), nil
}

func (h *pbkdf2Hasher) Verify(password, digest string) (bool, error) {
	rounds, salt, sum, err := parseDigest(digest)
	if err != nil {
		return false, err
	}

	computed := pbkdf2.Key([]byte(password), salt, rounds, len(sum), sha256.New)
	return subtle.ConstantTimeCompare(computed, sum) == 1, nil
}

func parseDigest(digest string) (int, []byte, []byte, error) {
	// "$pbkdf2-sha256$29000$salt$sum" splits into ["", scheme, rounds, salt, sum].
	parts := strings.Split(digest, "$")
	if len(parts) != 5 || parts[0] != "" || parts[1] != pbkdf2Scheme {
		return 0, nil, nil, ErrInvalidDigest
	}

	rounds, err := strconv.Atoi(parts[2])
	if err != nil || rounds < 1 {
		return 0, nil, nil, ErrInvalidDigest
	}

	salt, err := adaptedEncoding.DecodeString(parts[3])
	if err != nil || len(salt) == 0 {
		return 0, nil, nil, ErrInvalidDigest
	}

	sum, err := adaptedEncoding.DecodeString(parts[4])
	if err != nil || len(sum) == 0 {
		return 0, nil, nil, ErrInvalidDigest
	}

	return rounds, salt, sum, nil
}
