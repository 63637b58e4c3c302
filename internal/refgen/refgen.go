// Package refgen generates the human-facing reference codes printed on
// receipts and parcel labels. Codes embed the creation date so staff can
// eyeball when a record was made, followed by random characters from an
// unambiguous alphabet (no 0/O, 1/I).
package refgen

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	googleuuid "github.com/google/uuid"
)

const alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// TransactionCode returns a transfer code like TXN-20240115-K7KQ3M.
func TransactionCode(now time.Time) string {
	return fmt.Sprintf("TXN-%s-%s", now.Format("20060102"), randomCode(6))
}

// TrackingNumber returns a parcel tracking number like TRX-20240115-A8F2KQ3M.
// Longer than transaction codes because it is guessable from the public
// tracking endpoint.
func TrackingNumber(now time.Time) string {
	return fmt.Sprintf("TRX-%s-%s", now.Format("20060102"), randomCode(8))
}

// randomCode returns n characters from the unambiguous alphabet. Falls back
// to a UUID-derived code if the random source fails.
func randomCode(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		u := strings.ToUpper(strings.ReplaceAll(googleuuid.New().String(), "-", ""))
		return u[:n]
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(out)
}
