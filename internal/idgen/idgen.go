// Package idgen produces the external identifiers handed out to clients.
package idgen

import (
	"regexp"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// ProductPrefix starts every product identifier.
	ProductPrefix = "product_"

	alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	size     = 10
)

// ProductIDPattern matches identifiers returned by NewProductID.
var ProductIDPattern = regexp.MustCompile(`^product_[a-z0-9]{10}$`)

// NewProductID returns a fresh product identifier such as "product_4k9x0abq2z".
// The random part comes from crypto/rand through nanoid.
func NewProductID() string {
	return ProductPrefix + gonanoid.MustGenerate(alphabet, size)
}
