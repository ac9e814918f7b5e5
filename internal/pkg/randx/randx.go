/*
Package randx provides functions for generating cryptographically secure random identifiers.

It is used to mint opaque session identifiers (Base62) and UUIDs for live feed connections.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62Chars defines the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the total number of characters in the Base62 character set (62).
	Base62Len = int64(len(Base62Chars))

	// SessionIDLength gives a session identifier roughly 256 bits of entropy.
	SessionIDLength = 43
)

// Base62 returns a random Base62 string of the given length using crypto/rand.
func Base62(length int) (string, error) {
	result := make([]byte, length)

	for i := range length {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}

		result[i] = Base62Chars[num.Int64()]
	}

	return string(result), nil
}

// SessionID generates a new opaque session identifier.
func SessionID() (string, error) {
	id, err := Base62(SessionIDLength)
	if err != nil {
		return "", fmt.Errorf("session id: %w", err)
	}
	return id, nil
}

// IsValidSessionID checks the length and alphabet of a session identifier.
func IsValidSessionID(id string) bool {
	if len(id) != SessionIDLength {
		return false
	}

	for _, char := range id {
		if !strings.ContainsRune(Base62Chars, char) {
			return false
		}
	}

	return true
}

// ClientID generates a standard UUID v4 string identifying a live feed connection.
func ClientID() string {
	return uuid.New().String()
}
