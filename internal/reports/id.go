package reports

import (
	"math/big"

	"github.com/google/uuid"
)

// NewID generates a report identifier: the first two digits of a fresh
// random UUID's integer form. Deliberately low entropy (100 possible
// values), so unrelated reports can collide; lookup returns every match
// rather than assuming uniqueness.
func NewID() string {
	u := uuid.New()
	digits := new(big.Int).SetBytes(u[:]).String()
	if len(digits) < 2 {
		digits += "0"
	}
	return digits[:2]
}
