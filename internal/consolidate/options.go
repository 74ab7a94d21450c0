package consolidate

// Options controls which files are kept and where results are written.
type Options struct {
	// SourceDir is scanned recursively for *.md files.
	SourceDir string
	// OutputDir receives books/, metadata.json, CATALOG.md and DELETION_REPORT.md.
	OutputDir string
	// MoveWaste moves rejected source files into OutputDir/waste.
	MoveWaste bool

	MinFileSize      int64 // bytes
	MinContentLength int   // characters
	MinChapters      int
	// Files at least this long are kept even with few chapters.
	LongContentLength int
	// MaxGarbledRatio is the share of replacement or non-BMP characters
	// above which a file is treated as mis-decoded.
	MaxGarbledRatio float64
	GarbageKeywords []string
}

// DefaultOptions returns the thresholds used for a regular library build.
func DefaultOptions(sourceDir, outputDir string) Options {
	return Options{
		SourceDir:         sourceDir,
		OutputDir:         outputDir,
		MinFileSize:       10 * 1024,
		MinContentLength:  5000,
		MinChapters:       3,
		LongContentLength: 50000,
		MaxGarbledRatio:   0.05,
		GarbageKeywords:   []string{"test", "debug", "測試", "调试", "hbmb", "yq", "test_"},
	}
}
