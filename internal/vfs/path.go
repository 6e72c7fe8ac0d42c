// Package vfs provides the virtual path model and file store for sandsh.
// All user-visible paths are virtual: slash-separated and rooted at "/",
// which maps to a fixed real directory chosen at startup. Resolution is
// pure path arithmetic; the process working directory is never consulted
// or modified.
package vfs

import (
	"path"
	"path/filepath"
	"strings"
)

// Resolver maps virtual paths onto the real directory tree under Root.
type Resolver struct {
	root string
}

// NewResolver creates a resolver for the given real root directory.
// root must already be absolute.
func NewResolver(root string) *Resolver {
	return &Resolver{root: filepath.Clean(root)}
}

// Root returns the real root directory.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve joins userPath onto the virtual current directory and returns
// the cleaned virtual path plus its real counterpart under Root.
// "." and ".." segments are normalized; ".." clamps at "/" so the result
// can never leave Root.
func (r *Resolver) Resolve(currentDir, userPath string) (virtual string, real string) {
	virtual = Join(currentDir, userPath)
	real = r.Real(virtual)
	return virtual, real
}

// Real converts an already-cleaned virtual path to its real path.
func (r *Resolver) Real(virtual string) string {
	rel := strings.TrimPrefix(path.Clean("/"+virtual), "/")
	if rel == "" {
		return r.root
	}
	return filepath.Join(r.root, filepath.FromSlash(rel))
}

// Join joins a user-supplied path onto a virtual current directory.
// Absolute userPaths replace currentDir; relative ones append to it.
// The result is always cleaned and rooted at "/".
func Join(currentDir, userPath string) string {
	if currentDir == "" {
		currentDir = "/"
	}
	if path.IsAbs(userPath) {
		return path.Clean(userPath)
	}
	return path.Clean(path.Join("/", currentDir, userPath))
}

// Dir returns the directory portion of a virtual path.
func Dir(virtual string) string {
	return path.Dir(path.Clean("/" + virtual))
}

// Base returns the final element of a virtual path.
func Base(virtual string) string {
	return path.Base(path.Clean("/" + virtual))
}
