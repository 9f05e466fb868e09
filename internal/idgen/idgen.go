// Package idgen provides short, URL-safe unique ID generation backed by nanoid.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for the record types supplytrace stores.
const (
	ProductPrefix = "pr-"
	FarmPrefix    = "fm-"
)

// Alphabet defines the character set used for the random portion of the ID.
var Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters generated (excluding the prefix).
var Length = 10

// NewProductID returns a new unique product ID.
func NewProductID() (string, error) {
	return generate(ProductPrefix)
}

// NewFarmID returns a new unique farm ID.
func NewFarmID() (string, error) {
	return generate(FarmPrefix)
}

func generate(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}
