package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Book is a single entry of a category. Title and Filename are the fields
// the server relies on; every other field of the catalog entry (length,
// chapters, author, ...) is kept in Extra and written back out unchanged.
// Fields read from a document are written in the order they appeared.
type Book struct {
	Title    string
	Filename string
	Extra    map[string]any

	keys []string
}

func (b *Book) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("book must be an object, got %v", tok)
	}

	*b = Book{Extra: make(map[string]any)}
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		if !seen[key] {
			seen[key] = true
			b.keys = append(b.keys, key)
		}

		switch key {
		case "title":
			title, ok := value.(string)
			if !ok {
				return fmt.Errorf("book title must be a string, got %T", value)
			}
			b.Title = title
		case "filename":
			filename, ok := value.(string)
			if !ok {
				return fmt.Errorf("book filename must be a string, got %T", value)
			}
			b.Filename = filename
		default:
			b.Extra[key] = value
		}
	}
	_, err = dec.Token()
	return err
}

func (b Book) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := b.writeFields(&buf, ""); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// fieldOrder lists the keys to write: document order when the book was
// parsed, otherwise title and filename followed by the sorted extra keys.
func (b Book) fieldOrder() []string {
	order := make([]string, 0, len(b.Extra)+2)
	written := make(map[string]bool, len(b.Extra)+2)
	add := func(key string) {
		if !written[key] {
			written[key] = true
			order = append(order, key)
		}
	}

	if len(b.keys) == 0 {
		add("title")
		add("filename")
	}
	for _, key := range b.keys {
		if _, ok := b.Extra[key]; ok || key == "title" || key == "filename" {
			add(key)
		}
	}
	add("title")
	add("filename")

	extra := make([]string, 0, len(b.Extra))
	for key := range b.Extra {
		if !written[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		add(key)
	}
	return order
}

// writeFields writes the book's fields without braces, leaving out skip.
func (b Book) writeFields(buf *bytes.Buffer, skip string) error {
	n := 0
	for _, key := range b.fieldOrder() {
		if key == skip {
			continue
		}
		var value any
		switch key {
		case "title":
			value = b.Title
		case "filename":
			value = b.Filename
		default:
			value = b.Extra[key]
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		if err := writeField(buf, key, value); err != nil {
			return err
		}
		n++
	}
	return nil
}

func writeField(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

// SearchResult is a book annotated with the category it was found in.
type SearchResult struct {
	Book
	Category string
}

func (r SearchResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := r.Book.writeFields(&buf, "category"); err != nil {
		return nil, err
	}
	buf.WriteByte(',')
	if err := writeField(&buf, "category", r.Category); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CategorySummary is one row of the category listing.
type CategorySummary struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
