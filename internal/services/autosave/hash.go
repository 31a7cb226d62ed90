package autosave

import (
	"log"
	"os"
	"strconv"
)

// HashSize fingerprints a byte count. The hash runs over the decimal text of
// the size with wrapping 32-bit arithmetic, so equal sizes always produce equal
// hashes and files are never read.
func HashSize(size int64) int32 {
	var h int32
	for _, c := range strconv.FormatInt(size, 10) {
		h = h*31 + int32(c)
	}
	return h
}

// CalculateVideoHash returns the size fingerprint of the file at path, or 0
// when the file cannot be stat'ed
func CalculateVideoHash(path string) int32 {
	info, err := os.Stat(path)
	if err != nil {
		log.Printf("[ERROR] Failed to calculate video hash for %s: %v", path, err)
		return 0
	}
	return HashSize(info.Size())
}
