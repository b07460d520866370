// Package storage keeps uploaded vendor images as content-addressed files on local disk.
package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

const fallbackMIME = "image/jpeg"

// PreferredMIME lists the image types the onboarding form asks for. Other types are
// stored as image/jpeg rather than rejected.
var PreferredMIME = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type Blob struct {
	Key  string `json:"key"`
	MIME string `json:"mime"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// BlobStore is what the vendor module needs from media storage.
type BlobStore interface {
	Put(ctx context.Context, r io.Reader) (blob Blob, created bool, err error)
}

type DiskStore struct {
	dir      string
	urlBase  string
	maxBytes int64
}

func NewDiskStore(dir, urlBase string, maxBytes int64) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &DiskStore{
		dir:      dir,
		urlBase:  strings.TrimRight(urlBase, "/"),
		maxBytes: maxBytes,
	}, nil
}

func (s *DiskStore) Dir() string { return s.dir }

// Put stores r under the sha256 of its content. created is false when an identical
// blob was already present; its modification time is then refreshed so Sweep treats
// it as freshly uploaded.
func (s *DiskStore) Put(ctx context.Context, r io.Reader) (Blob, bool, error) {
	if err := ctx.Err(); err != nil {
		return Blob{}, false, err
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return Blob{}, false, fmt.Errorf("read blob: %w", err)
	}
	if len(data) == 0 {
		return Blob{}, false, ErrEmptyBlob
	}
	if int64(len(data)) > s.maxBytes {
		return Blob{}, false, ErrBlobTooBig
	}

	mime, ext := detect(data)
	sum := sha256.Sum256(data)
	key := hex.EncodeToString(sum[:]) + ext
	blob := Blob{Key: key, MIME: mime, Size: int64(len(data)), URL: s.urlBase + "/" + key}

	path := filepath.Join(s.dir, key)
	if _, err := os.Stat(path); err == nil {
		now := time.Now()
		switch err := os.Chtimes(path, now, now); {
		case err == nil:
			return blob, false, nil
		case !errors.Is(err, fs.ErrNotExist):
			return Blob{}, false, fmt.Errorf("touch blob: %w", err)
		}
		// swept in between; write it again
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return Blob{}, false, fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return Blob{}, false, fmt.Errorf("write blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return Blob{}, false, fmt.Errorf("close blob: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return Blob{}, false, fmt.Errorf("commit blob: %w", err)
	}

	return blob, true, nil
}

// Sweep removes blobs that none of referenced points at and that were last written
// before cutoff. Leftover temp files older than cutoff are removed as well.
func (s *DiskStore) Sweep(ctx context.Context, referenced []string, cutoff time.Time) (int, error) {
	keep := make(map[string]struct{}, len(referenced))
	for _, u := range referenced {
		if key, ok := s.KeyFromURL(u); ok {
			keep[key] = struct{}{}
		}
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("read media dir: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if _, ok := keep[name]; ok {
			continue
		}
		if !validKey(name) && !strings.HasPrefix(name, ".upload-") {
			continue
		}

		info, err := e.Info()
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return removed, err
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("remove %s: %w", name, err)
		}
		removed++
	}
	return removed, nil
}

// KeyFromURL extracts the blob key from a URL produced by this store. External URLs
// (seeded images) report false.
func (s *DiskStore) KeyFromURL(url string) (string, bool) {
	prefix := s.urlBase + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	return key, validKey(key)
}

func detect(data []byte) (mime, ext string) {
	m := mimetype.Detect(data)
	for ; m != nil; m = m.Parent() {
		if e, ok := PreferredMIME[m.String()]; ok {
			return m.String(), e
		}
		if strings.HasPrefix(m.String(), "image/") && m.Extension() != "" {
			return m.String(), m.Extension()
		}
	}
	return fallbackMIME, PreferredMIME[fallbackMIME]
}

func validKey(key string) bool {
	if len(key) < sha256.Size*2 {
		return false
	}
	if _, err := hex.DecodeString(key[:sha256.Size*2]); err != nil {
		return false
	}
	rest := key[sha256.Size*2:]
	return rest == "" || (strings.HasPrefix(rest, ".") && !strings.ContainsAny(rest[1:], `./\`))
}
