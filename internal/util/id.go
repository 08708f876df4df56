// Package util holds small helpers shared across the folio packages.
package util

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID returns a random 32-character hex identifier, optionally tagged
// with an entity prefix: NewID("prj") yields "prj_9f2c...". Prefixes keep
// ids self-describing in logs and audit entries.
func NewID(prefix string) string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	if prefix == "" {
		return hex.EncodeToString(buf)
	}
	return prefix + "_" + hex.EncodeToString(buf)
}
