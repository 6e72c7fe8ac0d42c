package vfs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store is the capability surface for real file I/O. Every method takes a
// real (already-resolved) path; handlers never touch the os package
// directly. File handles opened here are scoped to a single call except
// Open, whose reader the caller must close before returning.
type Store struct{}

// NewStore creates a file store.
func NewStore() *Store {
	return &Store{}
}

// ReadFile returns the full content of a file.
func (s *Store) ReadFile(real string) ([]byte, error) {
	data, err := os.ReadFile(real)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(real), err)
	}
	return data, nil
}

// ReadLines returns the file content split into lines. A trailing newline
// does not produce an empty final line.
func (s *Store) ReadLines(real string) ([]string, error) {
	data, err := s.ReadFile(real)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return []string{""}, nil
	}
	return strings.Split(text, "\n"), nil
}

// WriteFile writes content to a file, creating or truncating it.
func (s *Store) WriteFile(real string, data []byte) error {
	if err := os.WriteFile(real, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(real), err)
	}
	return nil
}

// CreateFile creates an empty file, or updates its mtime if it exists.
func (s *Store) CreateFile(real string) error {
	f, err := os.OpenFile(real, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(real), err)
	}
	return f.Close()
}

// Open returns a streaming reader for a file.
func (s *Store) Open(real string) (io.ReadCloser, error) {
	f, err := os.Open(real)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(real), err)
	}
	return f, nil
}

// Remove deletes a single file.
func (s *Store) Remove(real string) error {
	if err := os.Remove(real); err != nil {
		return fmt.Errorf("remove %s: %w", filepath.Base(real), err)
	}
	return nil
}

// RemoveTree deletes a directory and everything under it.
func (s *Store) RemoveTree(real string) error {
	if err := os.RemoveAll(real); err != nil {
		return fmt.Errorf("remove %s: %w", filepath.Base(real), err)
	}
	return nil
}

// MakeDir creates a directory, including missing parents.
func (s *Store) MakeDir(real string) error {
	if err := os.MkdirAll(real, 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Base(real), err)
	}
	return nil
}

// Rename moves or renames a file or directory.
func (s *Store) Rename(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("move %s: %w", filepath.Base(src), err)
	}
	return nil
}

// Copy copies a regular file. The destination is created or truncated.
func (s *Store) Copy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("copy %s: %w", filepath.Base(src), err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("copy to %s: %w", filepath.Base(dst), err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", filepath.Base(src), err)
	}
	return out.Sync()
}

// Symlink creates a symbolic link at linkName pointing to target.
func (s *Store) Symlink(target, linkName string) error {
	if err := os.Symlink(target, linkName); err != nil {
		return fmt.Errorf("symlink %s: %w", filepath.Base(linkName), err)
	}
	return nil
}

// Hardlink creates a hard link at linkName pointing to target.
func (s *Store) Hardlink(target, linkName string) error {
	if err := os.Link(target, linkName); err != nil {
		return fmt.Errorf("link %s: %w", filepath.Base(linkName), err)
	}
	return nil
}

// Readlink returns the target of a symbolic link.
func (s *Store) Readlink(real string) (string, error) {
	target, err := os.Readlink(real)
	if err != nil {
		return "", fmt.Errorf("readlink %s: %w", filepath.Base(real), err)
	}
	return target, nil
}

// Truncate resizes a file to the given length.
func (s *Store) Truncate(real string, size int64) error {
	if err := os.Truncate(real, size); err != nil {
		return fmt.Errorf("truncate %s: %w", filepath.Base(real), err)
	}
	return nil
}

// Chmod changes a file's permission bits.
func (s *Store) Chmod(real string, mode os.FileMode) error {
	if err := os.Chmod(real, mode); err != nil {
		return fmt.Errorf("chmod %s: %w", filepath.Base(real), err)
	}
	return nil
}

// Chown changes a file's owner and group.
func (s *Store) Chown(real string, uid, gid int) error {
	if err := os.Chown(real, uid, gid); err != nil {
		return fmt.Errorf("chown %s: %w", filepath.Base(real), err)
	}
	return nil
}

// List returns the sorted entry names of a directory.
func (s *Store) List(real string) ([]string, error) {
	entries, err := os.ReadDir(real)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", filepath.Base(real), err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Stat returns file metadata.
func (s *Store) Stat(real string) (os.FileInfo, error) {
	info, err := os.Stat(real)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", filepath.Base(real), err)
	}
	return info, nil
}

// IsDir reports whether real names an existing directory.
func (s *Store) IsDir(real string) bool {
	info, err := os.Stat(real)
	return err == nil && info.IsDir()
}

// Exists reports whether real names an existing file or directory.
func (s *Store) Exists(real string) bool {
	_, err := os.Stat(real)
	return err == nil
}

// Walk visits every file and directory under real (inclusive), calling fn
// with the real path and its info. Walk errors on individual entries are
// skipped so one unreadable subtree does not abort the traversal.
func (s *Store) Walk(real string, fn func(path string, info os.FileInfo) error) error {
	return filepath.Walk(real, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		return fn(p, info)
	})
}

// DiskUsage returns the total size in bytes of all regular files under real.
func (s *Store) DiskUsage(real string) (int64, error) {
	var total int64
	err := s.Walk(real, func(_ string, info os.FileInfo) error {
		if !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("du %s: %w", filepath.Base(real), err)
	}
	return total, nil
}

// FormatBytes renders a byte count in human-readable form.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
