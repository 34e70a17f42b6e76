package qr

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	_ "image/jpeg"
	_ "image/png"
)

// DirectorySource feeds frames from image files appearing in a capture
// directory, in name order, each file exactly once. It stands in for a
// camera on machines where capture happens out of process.
type DirectorySource struct {
	dir string

	mu     sync.Mutex
	seen   map[string]struct{}
	closed bool
}

// NewDirectorySource acquires the capture directory. An unreadable
// directory is an acquisition failure, reported to the caller immediately
// rather than surfacing later inside the scan loop.
func NewDirectorySource(dir string) (*DirectorySource, error) {
	if _, err := os.ReadDir(dir); err != nil {
		return nil, fmt.Errorf("capture directory not accessible: %w", err)
	}
	return &DirectorySource{dir: dir, seen: map[string]struct{}{}}, nil
}

func (s *DirectorySource) Next(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrNoFrame
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read capture directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isImageFile(entry.Name()) {
			continue
		}
		if _, ok := s.seen[entry.Name()]; ok {
			continue
		}
		names = append(names, entry.Name())
	}
	if len(names) == 0 {
		return nil, ErrNoFrame
	}
	sort.Strings(names)

	name := names[0]
	s.seen[name] = struct{}{}

	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, ErrNoFrame
	}
	defer f.Close()

	frame, _, err := image.Decode(f)
	if err != nil {
		// Likely a partially written capture; skip it.
		return nil, ErrNoFrame
	}
	return frame, nil
}

func (s *DirectorySource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
