// Package ident generates the public identifiers that label containers.
package ident

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/erazemk/shramba/internal/model"
)

// PublicIDLength is the length of a generated public id.
// 9 random bytes encode to 12 url-safe characters (~72 bits of entropy).
const PublicIDLength = 12

const maxRetries = 10

// New returns a random 12-character url-safe public id.
func New() (string, error) {
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating public id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// NewUnique returns a public id for which taken reports false, re-drawing
// on collision. Collisions are vanishingly rare but handled anyway; if
// every retry collides the generator gives up with ErrExhausted.
func NewUnique(taken func(id string) (bool, error)) (string, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		id, err := New()
		if err != nil {
			return "", err
		}
		exists, err := taken(id)
		if err != nil {
			return "", fmt.Errorf("checking public id: %w", err)
		}
		if !exists {
			return id, nil
		}
	}
	return "", model.ErrExhausted
}
