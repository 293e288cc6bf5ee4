// Package cryptox derives stored credentials from plaintext passwords.
//
// All schemes append one application-wide salt to the plaintext. There is no
// per-account salt, so equal passwords produce equal digests across accounts.
package cryptox

import (
	"crypto"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// DefaultSalt is the global salt appended to every plaintext.
const DefaultSalt = "psychic_star_salt_v1"

// Scheme identifies how a credential digest is produced.
type Scheme string

const (
	// SchemeAuto picks SchemeSHA256 when the digest primitive is available
	// and SchemeBase64 otherwise.
	SchemeAuto Scheme = "auto"
	// SchemeSHA256 is SHA-256 over plaintext||salt, lower-case hex.
	SchemeSHA256 Scheme = "sha256"
	// SchemeBase64 is the degraded mode: base64 of plaintext||salt.
	// It is a reversible encoding, not a hash.
	SchemeBase64 Scheme = "base64"
	// SchemeArgon2id is argon2id over plaintext with the global salt, hex.
	// Only used when configured explicitly.
	SchemeArgon2id Scheme = "argon2id"
)

// Hasher turns a plaintext secret into the string stored in an account.
type Hasher interface {
	Hash(plaintext []byte) string
	Scheme() Scheme
	// Degraded reports whether the output is recoverable from the digest.
	Degraded() bool
}

// secureDigestAvailable is a seam for tests simulating a build without SHA-256.
var secureDigestAvailable = func() bool { return crypto.SHA256.Available() }

// SecureDigestAvailable reports whether the SHA-256 primitive is linked in.
func SecureDigestAvailable() bool {
	return secureDigestAvailable()
}

// NewHasher returns the Hasher for scheme. SchemeAuto resolves through
// SecureDigestAvailable. An empty salt selects DefaultSalt.
func NewHasher(scheme Scheme, salt string) (Hasher, error) {
	if salt == "" {
		salt = DefaultSalt
	}

	switch scheme {
	case SchemeAuto, "":
		if SecureDigestAvailable() {
			return sha256Hasher{salt: salt}, nil
		}
		return base64Hasher{salt: salt}, nil
	case SchemeSHA256:
		if !SecureDigestAvailable() {
			return nil, fmt.Errorf("scheme %s: secure digest unavailable", scheme)
		}
		return sha256Hasher{salt: salt}, nil
	case SchemeBase64:
		return base64Hasher{salt: salt}, nil
	case SchemeArgon2id:
		return argon2Hasher{salt: []byte(salt)}, nil
	default:
		return nil, fmt.Errorf("unknown credential scheme %q", scheme)
	}
}

// Matches reports whether plaintext hashes to digest, in constant time.
func Matches(h Hasher, digest string, plaintext []byte) bool {
	candidate := h.Hash(plaintext)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(candidate)) == 1
}

func salted(plaintext []byte, salt string) []byte {
	b := make([]byte, 0, len(plaintext)+len(salt))
	b = append(b, plaintext...)
	return append(b, salt...)
}

type sha256Hasher struct {
	salt string
}

func (h sha256Hasher) Hash(plaintext []byte) string {
	sum := sha256.Sum256(salted(plaintext, h.salt))
	return hex.EncodeToString(sum[:])
}

func (sha256Hasher) Scheme() Scheme { return SchemeSHA256 }
func (sha256Hasher) Degraded() bool { return false }

type base64Hasher struct {
	salt string
}

func (h base64Hasher) Hash(plaintext []byte) string {
	return base64.StdEncoding.EncodeToString(salted(plaintext, h.salt))
}

func (base64Hasher) Scheme() Scheme { return SchemeBase64 }
func (base64Hasher) Degraded() bool { return true }

type argon2Hasher struct {
	salt []byte
}

func (h argon2Hasher) Hash(plaintext []byte) string {
	return hex.EncodeToString(argon2.IDKey(plaintext, h.salt, 1, 64*1024, 4, 32))
}

func (argon2Hasher) Scheme() Scheme { return SchemeArgon2id }
func (argon2Hasher) Degraded() bool { return false }
