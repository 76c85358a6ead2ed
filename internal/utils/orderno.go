// internal/utils/orderno.go
package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const orderNoPrefix = "PB"

const orderNoCharset = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// GenerateOrderNo mints an opaque order number: "PB" + millisecond timestamp +
// a random suffix. The timestamp alone is not collision-free under concurrent
// creation, so the suffix carries the uniqueness; the database unique index is
// the final arbiter.
func GenerateOrderNo() (string, error) {
	suffix := make([]byte, 6)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(orderNoCharset))))
		if err != nil {
			return "", err
		}
		suffix[i] = orderNoCharset[n.Int64()]
	}

	return fmt.Sprintf("%s%d%s", orderNoPrefix, time.Now().UnixMilli(), suffix), nil
}
