package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	DirVideos     = "videos"
	DirAudios     = "audios"
	DirThumbnails = "thumbnails"

	dirStaging = "tmp"
)

// Local lays out the upload tree on the local filesystem: one directory per
// media kind, one for thumbnails, and a staging directory for in-flight
// uploads.
type Local struct {
	root string
}

// NewLocal roots the tree at root, creating every subdirectory up front.
func NewLocal(root string) (*Local, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	for _, dir := range []string{DirVideos, DirAudios, DirThumbnails, dirStaging} {
		if err := os.MkdirAll(filepath.Join(absRoot, dir), 0o750); err != nil {
			return nil, fmt.Errorf("create storage dir %q: %w", dir, err)
		}
	}
	return &Local{root: absRoot}, nil
}

// Root returns the absolute root the static media routes serve from.
func (l *Local) Root() string {
	return l.root
}

// Stage streams an in-flight upload into the staging area and returns the
// staged path.
func (l *Local) Stage(r io.Reader) (string, error) {
	staged := filepath.Join(l.root, dirStaging, uuid.NewString())
	f, err := os.OpenFile(staged, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o640)
	if err != nil {
		return "", fmt.Errorf("open staging file: %w", err)
	}

	_, werr := io.Copy(f, r)
	cerr := f.Close()

	if werr != nil {
		os.Remove(staged)
		return "", fmt.Errorf("stage upload: %w", werr)
	}
	if cerr != nil {
		os.Remove(staged)
		return "", fmt.Errorf("flush staging file: %w", cerr)
	}
	return staged, nil
}

// Promote moves a staged file into its final directory under the given name.
// Staging shares a volume with the final directories, so the rename is a pure
// metadata operation. The staged file is removed when the move fails.
func (l *Local) Promote(staged, dir, filename string) error {
	dest, err := l.abs(dir, filename)
	if err != nil {
		os.Remove(staged)
		return err
	}
	if err := os.Rename(staged, dest); err != nil {
		os.Remove(staged)
		return fmt.Errorf("promote %q: %w", filename, err)
	}
	return nil
}

// Discard removes an abandoned staging file, best effort.
func (l *Local) Discard(staged string) {
	if staged != "" {
		os.Remove(staged)
	}
}

// abs confines dir/filename to the storage root.
func (l *Local) abs(dir, filename string) (string, error) {
	joined := filepath.Join(l.root, dir, filepath.Clean(filepath.FromSlash(filename)))
	rel, err := filepath.Rel(l.root, joined)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("path %q escapes storage root", filename)
	}
	return joined, nil
}
