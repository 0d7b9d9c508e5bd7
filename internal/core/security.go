// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters, OWASP-recommended baseline. Changing any of
// these makes needsRehash upgrade stored hashes on next login.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLength   = 16

	refreshTokenBytes = 32

	hashFormat = "$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s"
)

var errMalformedHash = errors.New("malformed password hash")

func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey(
		[]byte(password),
		salt,
		argonTime,
		argonMemory,
		argonThreads,
		argonKeyLen,
	)

	return fmt.Sprintf(
		hashFormat,
		argon2.Version,
		argonMemory,
		argonTime,
		argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func VerifyPassword(password, encodedHash string) (bool, error) {
	params, salt, want, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	got := argon2.IDKey(
		[]byte(password),
		salt,
		params.time,
		params.memory,
		params.threads,
		params.keyLen,
	)

	return subtle.ConstantTimeCompare(want, got) == 1, nil
}

// VerifyPasswordWithRehash verifies and, when the stored hash was
// produced with outdated parameters, returns a replacement hash for
// the caller to persist. An empty newHash means no upgrade is needed.
func VerifyPasswordWithRehash(
	password, encodedHash string,
) (valid bool, newHash string, err error) {
	valid, err = VerifyPassword(password, encodedHash)
	if err != nil || !valid {
		return valid, "", err
	}

	if !needsRehash(encodedHash) {
		return true, "", nil
	}

	newHash, err = HashPassword(password)
	if err != nil {
		// Rehash is opportunistic; the login itself succeeded.
		return true, "", nil
	}
	return true, newHash, nil
}

var dummyHash string

func init() {
	hash, err := HashPassword("dummy_password_for_timing_attack_prevention")
	if err != nil {
		panic(fmt.Sprintf("security: failed to generate dummy hash: %v", err))
	}
	dummyHash = hash
}

// VerifyPasswordTimingSafe burns a full argon2 derivation even when no
// stored hash exists, so login timing does not reveal whether an email
// is registered. A nil or empty encodedHash always verifies false.
func VerifyPasswordTimingSafe(
	password string,
	encodedHash *string,
) (bool, string, error) {
	hashToVerify := dummyHash
	known := encodedHash != nil && *encodedHash != ""
	if known {
		hashToVerify = *encodedHash
	}

	valid, newHash, err := VerifyPasswordWithRehash(password, hashToVerify)
	if !known {
		return false, "", nil
	}
	return valid, newHash, err
}

type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
	keyLen  uint32
}

func decodeHash(encodedHash string) (*argonParams, []byte, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, nil, errMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: bad version", errMalformedHash)
	}
	if version != argon2.Version {
		return nil, nil, nil, fmt.Errorf(
			"%w: argon2 version %d",
			errMalformedHash,
			version,
		)
	}

	var params argonParams
	if _, err := fmt.Sscanf(
		parts[3],
		"m=%d,t=%d,p=%d",
		&params.memory,
		&params.time,
		&params.threads,
	); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: bad params", errMalformedHash)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: bad salt", errMalformedHash)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: bad key", errMalformedHash)
	}

	//nolint:gosec // G115: argon2 keys are 32 bytes, far below uint32 range
	params.keyLen = uint32(len(key))

	return &params, salt, key, nil
}

func needsRehash(encodedHash string) bool {
	params, _, _, err := decodeHash(encodedHash)
	if err != nil {
		return true
	}

	return params.memory != argonMemory ||
		params.time != argonTime ||
		params.threads != argonThreads ||
		params.keyLen != argonKeyLen
}

// GenerateRefreshToken returns an opaque, URL-safe random token. Only
// its SHA-256 hash is ever persisted.
func GenerateRefreshToken() (string, error) {
	raw := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}

func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func CompareTokenHash(token, hash string) bool {
	return subtle.ConstantTimeCompare(
		[]byte(HashToken(token)),
		[]byte(hash),
	) == 1
}
