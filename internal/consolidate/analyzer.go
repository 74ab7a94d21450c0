package consolidate

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// Only the head of a book is hashed for duplicate detection.
	hashSampleChars = 10000
	// Only the first lines are searched for a "# " title heading.
	titleSearchLines = 10
	// DefaultCategory receives books no rule matches.
	DefaultCategory = "其他"
)

var chapterPatterns = []*regexp.Regexp{
	regexp.MustCompile(`##\s+第.{1,5}章`),
	regexp.MustCompile(`第.{1,5}章`),
	regexp.MustCompile(`Chapter\s+\d+`),
	regexp.MustCompile(`##\s+\d+`),
}

var titleSuffixes = []*regexp.Regexp{
	regexp.MustCompile(`_TXT小说天堂$`),
	regexp.MustCompile(`_.*?\.txt$`),
	regexp.MustCompile(`\.txt$`),
}

type categoryRule struct {
	category string
	keywords []string
}

// Author names are matched against the raw title before any keyword group.
var authorRules = []categoryRule{
	{category: "推理懸疑", keywords: []string{"阿加莎"}},
	{category: "恐怖驚悚", keywords: []string{"史蒂芬·金"}},
	{category: "盜墓探險", keywords: []string{"南派三叔", "天下霸唱"}},
	{category: "恐怖驚悚", keywords: []string{"鬼马星"}},
}

var keywordRules = []categoryRule{
	{category: "網絡小說", keywords: []string{"女尊", "穿书", "重生", "穿越"}},
	{category: "推理懸疑", keywords: []string{"谋杀", "探案", "侦探", "推理"}},
	{category: "盜墓探險", keywords: []string{"盗墓", "鬼吹灯", "古墓"}},
	{category: "恐怖驚悚", keywords: []string{"恐怖", "惊悚", "鬼", "死"}},
	{category: "古代言情", keywords: []string{"军师", "皇", "宫", "朝"}},
}

// Entry is a book that passed every check.
type Entry struct {
	Title      string
	Category   string
	Length     int
	Chapters   int
	SourcePath string
	content    string
}

// Rejection records why a source file was left out.
type Rejection struct {
	Filename string
	Path     string
	Reason   string
	// Duplicate is set when the file repeats an earlier book.
	Duplicate bool
}

type analyzer struct {
	opts       Options
	seenHashes map[string]string
}

func newAnalyzer(opts Options) *analyzer {
	return &analyzer{opts: opts, seenHashes: make(map[string]string)}
}

// analyze applies the checks in order and returns exactly one of entry or
// rejection.
func (a *analyzer) analyze(path string) (*Entry, *Rejection) {
	filename := filepath.Base(path)
	reject := func(reason string) (*Entry, *Rejection) {
		return nil, &Rejection{Filename: filename, Path: path, Reason: reason}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return reject(fmt.Sprintf("read error: %v", err))
	}
	if !utf8.Valid(data) {
		return reject("read error: not valid UTF-8")
	}
	content := string(data)

	if a.isGarbageFilename(filename) {
		return reject("test or debug file")
	}

	if size := int64(len(data)); size < a.opts.MinFileSize {
		return reject(fmt.Sprintf("file too small (%d bytes)", size))
	}

	length := utf8.RuneCountInString(content)
	if length < a.opts.MinContentLength {
		return reject(fmt.Sprintf("content too short (%d characters)", length))
	}

	if a.isGarbled(content, length) {
		return reject("garbled content")
	}

	chapters := countChapters(content)
	if chapters < a.opts.MinChapters && length < a.opts.LongContentLength {
		return reject(fmt.Sprintf("too few chapters (%d)", chapters))
	}

	hash := contentHash(content)
	if first, seen := a.seenHashes[hash]; seen {
		r := &Rejection{Filename: filename, Path: path, Reason: "duplicate of " + first, Duplicate: true}
		return nil, r
	}
	a.seenHashes[hash] = filename

	title := extractTitle(filename, content)
	return &Entry{
		Title:      title,
		Category:   categorize(title),
		Length:     length,
		Chapters:   chapters,
		SourcePath: path,
		content:    content,
	}, nil
}

func (a *analyzer) isGarbageFilename(filename string) bool {
	lower := strings.ToLower(filename)
	for _, kw := range a.opts.GarbageKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (a *analyzer) isGarbled(content string, length int) bool {
	if length == 0 {
		return true
	}
	garbled := 0
	for _, r := range content {
		if r > 0xFFFF || r == utf8.RuneError {
			garbled++
		}
	}
	return float64(garbled)/float64(length) > a.opts.MaxGarbledRatio
}

// countChapters returns the best match count among the chapter heading styles.
func countChapters(content string) int {
	best := 0
	for _, p := range chapterPatterns {
		if n := len(p.FindAllStringIndex(content, -1)); n > best {
			best = n
		}
	}
	return best
}

// extractTitle derives a title from the filename, preferring an early
// "# " heading when it is at least half as long.
func extractTitle(filename, content string) string {
	title := strings.ReplaceAll(filename, ".md", "")
	for _, suffix := range titleSuffixes {
		title = suffix.ReplaceAllString(title, "")
	}

	lines := strings.SplitN(content, "\n", titleSearchLines+1)
	if len(lines) > titleSearchLines {
		lines = lines[:titleSearchLines]
	}
	for _, line := range lines {
		if strings.HasPrefix(line, "# ") && len(line) > 2 {
			extracted := strings.TrimSpace(line[2:])
			if float64(utf8.RuneCountInString(extracted)) > float64(utf8.RuneCountInString(title))*0.5 {
				title = extracted
			}
			break
		}
	}

	return strings.TrimSpace(title)
}

func categorize(title string) string {
	for _, rule := range authorRules {
		for _, kw := range rule.keywords {
			if strings.Contains(title, kw) {
				return rule.category
			}
		}
	}

	lower := strings.ToLower(title)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return DefaultCategory
}

func contentHash(content string) string {
	sample := content
	count := 0
	for i := range content {
		if count == hashSampleChars {
			sample = content[:i]
			break
		}
		count++
	}
	sum := md5.Sum([]byte(sample))
	return hex.EncodeToString(sum[:])
}
