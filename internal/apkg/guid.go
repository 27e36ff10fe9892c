package apkg

import (
	"crypto/sha1" //nolint:gosec // Anki's checksum is defined over SHA-1
	"crypto/sha256"
	"encoding/binary"
	"strings"
)

const base91Table = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!#$%&()*+,-./:;<=>?@[]^_`{|}~"

// noteGUID derives a stable note id from the note fields, so regenerating a
// deck from the same game updates notes instead of duplicating them.
func noteGUID(fields []string) string {
	sum := sha256.Sum256([]byte(strings.Join(fields, "__")))
	v := binary.BigEndian.Uint64(sum[:8])
	if v == 0 {
		return string(base91Table[0])
	}

	var out []byte
	for v > 0 {
		out = append(out, base91Table[v%uint64(len(base91Table))])
		v /= uint64(len(base91Table))
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

// fieldChecksum is the first 32 bits of the SHA-1 of the sort field.
func fieldChecksum(sortField string) int64 {
	sum := sha1.Sum([]byte(sortField)) //nolint:gosec // see import
	return int64(binary.BigEndian.Uint32(sum[:4]))
}
