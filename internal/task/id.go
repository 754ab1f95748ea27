package task

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"unicode"
)

const (
	minSuffixLength = 3
	maxSuffixLength = 8
	maxSlugLength   = 16
	nonceSize       = 16 // 128 bits of entropy
	hexChunkSize    = 4  // Process 4 hex chars (16 bits) at a time for base36 conversion
)

// GenerateID creates a readable task ID from the name plus a short hash
// suffix. The suffix starts at minSuffixLength characters and grows up to
// maxSuffixLength until existsFn reports no collision.
func GenerateID(name string, existsFn func(string) bool) string {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}

	h := sha256.New()
	h.Write([]byte(name))
	h.Write(nonce)
	base36 := hexToBase36(hex.EncodeToString(h.Sum(nil)))

	prefix := slug(name)
	if prefix != "" {
		prefix += "-"
	}

	for length := minSuffixLength; length <= maxSuffixLength && length <= len(base36); length++ {
		candidate := prefix + base36[:length]
		if !existsFn(candidate) {
			return candidate
		}
	}
	return prefix + base36[:maxSuffixLength]
}

// slug lowercases name and joins its alphanumeric runs with dashes.
func slug(name string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if sb.Len() >= maxSlugLength {
			break
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if dash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return strings.TrimRight(sb.String(), "-")
}

// hexToBase36 converts a hex string to base36.
func hexToBase36(hexStr string) string {
	var result strings.Builder
	for i := 0; i < len(hexStr); i += hexChunkSize {
		end := min(i+hexChunkSize, len(hexStr))
		val, _ := strconv.ParseUint(hexStr[i:end], 16, 64)
		result.WriteString(strconv.FormatUint(val, 36))
	}
	return result.String()
}
