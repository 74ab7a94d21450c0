// Package catalog holds the in-memory library catalog: category names
// mapped to ordered book lists, read once from metadata.json at startup.
//
// A Catalog is never modified after Load returns, so it is safe to share
// between request goroutines without locking.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

type category struct {
	name  string
	books []Book
}

type Catalog struct {
	categories []category
	index      map[string]int
}

// Load reads and parses the catalog document at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a catalog document. Only the top-level "categories" object
// is read; a document without it yields an empty catalog. Category order
// follows the document.
func Parse(data []byte) (*Catalog, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	c := &Catalog{index: make(map[string]int)}

	raw, ok := doc["categories"]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return c, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("categories must be an object")
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected category key %v", tok)
		}

		var books []Book
		if err := dec.Decode(&books); err != nil {
			return nil, fmt.Errorf("category %q: %w", name, err)
		}
		if books == nil {
			books = []Book{}
		}

		// A repeated key replaces the earlier list but keeps its position,
		// matching how JSON objects behave in the browser.
		if i, seen := c.index[name]; seen {
			c.categories[i].books = books
			continue
		}
		c.index[name] = len(c.categories)
		c.categories = append(c.categories, category{name: name, books: books})
	}

	if _, err := dec.Token(); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return c, nil
}

// New builds a catalog from already ordered names and book lists.
// names and lists must have the same length.
func New(names []string, lists [][]Book) *Catalog {
	c := &Catalog{index: make(map[string]int)}
	for i, name := range names {
		if j, seen := c.index[name]; seen {
			c.categories[j].books = lists[i]
			continue
		}
		c.index[name] = len(c.categories)
		c.categories = append(c.categories, category{name: name, books: lists[i]})
	}
	return c
}

// ListCategories returns every category with its book count, in catalog order.
func (c *Catalog) ListCategories() []CategorySummary {
	out := make([]CategorySummary, 0, len(c.categories))
	for _, cat := range c.categories {
		out = append(out, CategorySummary{Name: cat.name, Count: len(cat.books)})
	}
	return out
}

// ListBooks returns the books of a category. An unknown category returns
// an empty slice.
func (c *Catalog) ListBooks(name string) []Book {
	i, ok := c.index[name]
	if !ok {
		return []Book{}
	}
	books := make([]Book, len(c.categories[i].books))
	copy(books, c.categories[i].books)
	return books
}

// Search returns the books whose title contains query, ignoring case, in
// category order then list order. An empty query matches nothing.
func (c *Catalog) Search(query string) []SearchResult {
	results := []SearchResult{}
	if query == "" {
		return results
	}

	needle := strings.ToLower(query)
	for _, cat := range c.categories {
		for _, book := range cat.books {
			if strings.Contains(strings.ToLower(book.Title), needle) {
				results = append(results, SearchResult{Book: book, Category: cat.name})
			}
		}
	}
	return results
}

// BookCount returns the total number of books across all categories.
func (c *Catalog) BookCount() int {
	total := 0
	for _, cat := range c.categories {
		total += len(cat.books)
	}
	return total
}

// MarshalCategories encodes the categories object of a catalog document,
// keeping category order.
func (c *Catalog) MarshalCategories() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range c.categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cat.name)
		if err != nil {
			return nil, err
		}
		books := cat.books
		if books == nil {
			books = []Book{}
		}
		list, err := json.Marshal(books)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(list)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
