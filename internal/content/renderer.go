// Package content reads book files from the books directory and renders
// their markdown to HTML.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Book is a rendered book file.
type Book struct {
	HTML string `json:"content"`
	Raw  string `json:"raw"`
	Path string `json:"path"`
}

// Renderer resolves category/filename pairs under a fixed root directory.
type Renderer struct {
	root     string
	markdown goldmark.Markdown
}

// NewRenderer creates a renderer for the books stored under root.
// The root does not need to exist yet; lookups simply report ErrNotFound.
func NewRenderer(root string) (*Renderer, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve books root: %w", err)
	}
	return &Renderer{
		root: abs,
		// Raw HTML inside book files is dropped rather than passed through.
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}, nil
}

// Root returns the absolute books directory.
func (r *Renderer) Root() string {
	return r.root
}

// GetContent reads books/<category>/<filename> and renders it.
func (r *Renderer) GetContent(category, filename string) (*Book, error) {
	if category == "" || filename == "" {
		return nil, ErrMissingParameter
	}

	path, err := r.resolve(category, filename)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", ErrUnreadable, category+"/"+filename)
	}

	var out bytes.Buffer
	if err := r.markdown.Convert(data, &out); err != nil {
		return nil, fmt.Errorf("%w: render markdown: %v", ErrUnreadable, err)
	}

	return &Book{
		HTML: out.String(),
		Raw:  string(data),
		Path: category + "/" + filename,
	}, nil
}

// resolve joins the request onto the root and refuses anything that ends
// up outside it, either lexically ("../") or through a symlink.
func (r *Renderer) resolve(category, filename string) (string, error) {
	path := filepath.Join(r.root, category, filename)
	if !within(r.root, path) {
		return "", ErrNotFound
	}

	if _, err := os.Lstat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	realRoot, err := filepath.EvalSymlinks(r.root)
	if err != nil {
		return "", ErrNotFound
	}
	realPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		// dangling symlink
		return "", ErrNotFound
	}
	if !within(realRoot, realPath) {
		return "", ErrNotFound
	}
	return realPath, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
