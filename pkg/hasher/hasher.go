// Package hasher writes checksum files for exported catalogs.
package hasher

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Algorithms lists the supported checksum algorithms.
var Algorithms = []string{"md5", "sha1", "sha256", "sha512"}

// IsValid reports whether algo is supported. The check is case-insensitive.
func IsValid(algo string) bool {
	return slices.Contains(Algorithms, strings.ToLower(algo))
}

func newHash(algo string) (hash.Hash, error) {
	switch strings.ToLower(algo) {
	case "md5":
		return md5.New(), nil
	case "sha1":
		return sha1.New(), nil
	case "sha256":
		return sha256.New(), nil
	case "sha512":
		return sha512.New(), nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s", algo)
	}
}

// Sum returns the hex digest of everything read from r.
func Sum(r io.Reader, algo string) (string, error) {
	h, err := newHash(algo)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// WriteSidecar stores the digest of the file at path in path.<algo>, in the
// "<digest>  <name>" layout sha256sum and friends can verify.
// It returns the path of the checksum file.
func WriteSidecar(path, algo string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sum, err := Sum(f, algo)
	if err != nil {
		return "", err
	}
	out := path + "." + strings.ToLower(algo)
	line := fmt.Sprintf("%s  %s\n", sum, filepath.Base(path))
	if err := os.WriteFile(out, []byte(line), 0o644); err != nil {
		return "", err
	}
	return out, nil
}
