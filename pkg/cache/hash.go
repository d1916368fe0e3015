package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON returns the digest of v's JSON encoding. Struct fields encode in
// declaration order and map keys sorted, so equal values hash equally.
func HashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}

// hashKey builds "kind:digest" over the JSON encoding of parts.
func hashKey(kind string, parts ...any) string {
	digest, err := HashJSON(parts)
	if err != nil {
		// Keys are built from plain structs and strings, which always encode.
		panic("cache: unencodable key part: " + err.Error())
	}
	return kind + ":" + digest
}
