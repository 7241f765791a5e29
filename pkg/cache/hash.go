package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a namespaced cache key of the form "prefix:<sha256 hex>",
// where the digest covers the JSON encoding of parts. Solve and artifact
// keys differ only in their parts, so the digest keeps them collision-free
// across option combinations.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex-encoded SHA-256 digest of data. It is the content
// hash used for problem inputs and solve records throughout the pipeline.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
