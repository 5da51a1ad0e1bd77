package filehash

import (
	"encoding/hex"
	"io"
	"os"

	"github.com/minio/sha256-simd"
)

// Calculate returns the hex encoded SHA-256 digest of the file contents.
func Calculate(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
