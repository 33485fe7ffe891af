// Package idgen generates identifiers, session tokens and secrets.
package idgen

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"
	"strings"

	"github.com/rs/xid"
)

// sessionTokenLength is the length of the URL-safe token handed to users.
const sessionTokenLength = 22

// NewID generates a globally unique, time-sortable 20-character identifier.
func NewID() string {
	return xid.New().String()
}

// NewUserID generates the primary key for a user record.
func NewUserID() string {
	return NewID()
}

// NewRequestID generates a unique ID for request tracking.
func NewRequestID() string {
	return NewID()
}

// NewSessionToken generates the unguessable token that identifies a user in
// tab URLs and update requests. It is URL-safe and needs no escaping inside
// query strings or HTML attributes.
func NewSessionToken() string {
	return NewSecureSecret(sessionTokenLength)
}

// NewSecureSecret returns a random URL-safe base64 string of the given length.
func NewSecureSecret(length int) string {
	if length <= 0 {
		return ""
	}
	raw := make([]byte, (length*3+3)/4)
	if _, err := rand.Read(raw); err != nil {
		panic("idgen: crypto/rand unavailable: " + err.Error())
	}
	encoded := base64.RawURLEncoding.EncodeToString(raw)
	if len(encoded) > length {
		encoded = encoded[:length]
	}
	return encoded
}

const (
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	digitChars   = "0123456789"
	specialChars = "!@$%^&*()_+-=[]{}|;:,.<>?"

	passwordLength = 12
)

// NewSecurePassword returns a 12-character password that contains at least
// one uppercase letter, lowercase letter, digit and special character.
func NewSecurePassword() string {
	classes := []string{upperChars, lowerChars, digitChars, specialChars}
	all := strings.Join(classes, "")

	out := make([]byte, passwordLength)
	for i := range out {
		out[i] = all[randIndex(len(all))]
	}
	// Place one character of every class at distinct random positions.
	positions := shuffledPositions(passwordLength)
	for i, class := range classes {
		out[positions[i]] = class[randIndex(len(class))]
	}
	return string(out)
}

func randIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("idgen: crypto/rand unavailable: " + err.Error())
	}
	return int(v.Int64())
}

func shuffledPositions(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := randIndex(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return p
}
