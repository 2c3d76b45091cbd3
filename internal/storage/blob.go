// Package storage persists uploaded item images on disk, keyed by
// user_id/timestamp.ext beneath a configured data directory.
package storage

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// BlobStore writes uploaded image payloads to the local filesystem.
type BlobStore struct {
	dataDir string
	now     func() time.Time
}

// NewBlobStore creates a blob store rooted at dataDir.
func NewBlobStore(dataDir string) *BlobStore {
	return &BlobStore{dataDir: dataDir, now: time.Now}
}

// SaveImage decodes a base64 image payload (raw or data-URL form) and
// stores it under <dataDir>/<userID>/<unix-nano>.<ext>, returning the
// user-relative key.
func (s *BlobStore) SaveImage(userID uint, payload string) (string, error) {
	encoded := payload
	declaredMime := ""

	// RFC 2397 data URL: data:image/png;base64,....
	if strings.HasPrefix(payload, "data:") {
		comma := strings.Index(payload, ",")
		if comma < 0 {
			return "", fmt.Errorf("malformed data URL in image payload")
		}
		header := payload[len("data:"):comma]
		if semi := strings.Index(header, ";"); semi >= 0 {
			declaredMime = header[:semi]
		} else {
			declaredMime = header
		}
		encoded = payload[comma+1:]
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode image payload: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty image payload")
	}

	ext := extensionFor(declaredMime, data)
	key := filepath.Join(fmt.Sprintf("%d", userID), fmt.Sprintf("%d%s", s.now().UnixNano(), ext))
	fullPath := filepath.Join(s.dataDir, key)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return key, nil
}

// FullPath resolves a stored key back to its absolute location.
func (s *BlobStore) FullPath(key string) string {
	return filepath.Join(s.dataDir, key)
}

func extensionFor(declaredMime string, data []byte) string {
	mime := declaredMime
	if mime == "" {
		mime = http.DetectContentType(data)
	}
	switch mime {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
