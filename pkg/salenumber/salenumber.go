// Package salenumber generates human-readable sale numbers.
package salenumber

import (
	"fmt"
	"math/rand"
	"time"
)

// Generate returns a sale number of the form SALE-<unix-millis>-<n>
// where n is in [0, 10000). The millisecond timestamp keeps numbers
// roughly sortable; the random suffix disambiguates numbers minted in
// the same millisecond. Uniqueness is enforced by the database.
func Generate() string {
	return fmt.Sprintf("SALE-%d-%d", time.Now().UnixMilli(), rand.Intn(10000))
}
