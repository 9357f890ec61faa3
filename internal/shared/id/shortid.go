// Package id generates short, URL-safe, prefixed identifiers such as
// "ses_4fQ9xK2mL7pB" for sessions and "req_..." for request ids.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	DefaultLength = 12
)

const (
	PrefixSession = "ses"
	PrefixRequest = "req"
)

// Generate returns a random base62 string of the given length.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[n.Int64()]
	}
	return string(result), nil
}

func GenerateWithPrefix(prefix string, length int) (string, error) {
	s, err := Generate(length)
	if err != nil {
		return "", err
	}
	return prefix + "_" + s, nil
}

// MustGenerateWithPrefix panics if the system random source fails.
func MustGenerateWithPrefix(prefix string, length int) string {
	s, err := GenerateWithPrefix(prefix, length)
	if err != nil {
		panic(err)
	}
	return s
}

func NewSessionID() (string, error) {
	return GenerateWithPrefix(PrefixSession, 16)
}

func NewRequestID() string {
	return MustGenerateWithPrefix(PrefixRequest, DefaultLength)
}

// ValidatePrefix checks that prefixedID has the form "<expected>_<base62>".
func ValidatePrefix(prefixedID, expected string) error {
	prefix, rest, ok := strings.Cut(prefixedID, "_")
	if !ok || rest == "" {
		return fmt.Errorf("invalid prefixed ID format: %s", prefixedID)
	}
	if prefix != expected {
		return fmt.Errorf("invalid prefix: expected %s, got %s", expected, prefix)
	}
	for _, r := range rest {
		if !strings.ContainsRune(alphabet, r) {
			return fmt.Errorf("invalid character %q in ID", r)
		}
	}
	return nil
}
