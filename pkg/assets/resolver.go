// Package assets maps static asset paths to cache-busted URLs.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ErrResourceNotFound is returned when an asset is missing or cannot be
// read. It indicates a deployment defect rather than bad user input.
var ErrResourceNotFound = errors.New("resource not found")

// Prefix is the URL path under which static assets are served.
const Prefix = "/static/"

// Resolver builds asset URLs of the form /static/<path>?mtime=<unix seconds>.
// It reads the modification time on every call and keeps no state between
// calls, so a touched file is picked up immediately.
type Resolver struct {
	root string
}

// NewResolver returns a Resolver for assets stored below root.
func NewResolver(root string) *Resolver {
	return &Resolver{root: root}
}

// Root returns the directory the resolver reads from.
func (r *Resolver) Root() string {
	return r.root
}

// URL returns the versioned URL for the slash-separated path relative to the
// static root.
func (r *Resolver) URL(path string) (string, error) {
	local := filepath.FromSlash(path)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("%w: %s: path escapes static root", ErrResourceNotFound, path)
	}
	info, err := os.Stat(filepath.Join(r.root, local))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrResourceNotFound, path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s: is a directory", ErrResourceNotFound, path)
	}
	return Prefix + path + "?mtime=" + strconv.FormatInt(info.ModTime().Unix(), 10), nil
}
