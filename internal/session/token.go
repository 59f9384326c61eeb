// Package session maps opaque access credentials to participant identities
// and issues short-lived signed session tokens on top of them.
package session

import (
	"crypto/rand"
	"fmt"
)

// URL-safe alphabet so tokens survive cookies and query strings unescaped.
const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

const (
	accessTokenLength = 32
	inviteCodeLength  = 8
)

// NewAccessToken generates a 32-character opaque participant credential.
func NewAccessToken() (string, error) {
	return randomString(accessTokenLength)
}

// NewInviteCode generates an 8-character tab invite code.
func NewInviteCode() (string, error) {
	return randomString(inviteCodeLength)
}

func randomString(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(buf), nil
}
