package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/mrlokans/readingroom/internal/config"
	"github.com/mrlokans/readingroom/internal/consolidate"
)

type ConsolidateCommand struct {
	SourceDir string
	OutputDir string
	MoveWaste bool

	out io.Writer
}

// NewConsolidateCommand seeds flag defaults from the environment config.
func NewConsolidateCommand(cfg *config.Config) *ConsolidateCommand {
	return &ConsolidateCommand{
		SourceDir: cfg.Consolidate.SourceDir,
		OutputDir: cfg.ConsolidateOutputDir(),
		MoveWaste: cfg.Consolidate.MoveWaste,
		out:       os.Stdout,
	}
}

func (cmd *ConsolidateCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("consolidate", flag.ContinueOnError)

	fs.StringVar(&cmd.SourceDir, "source", cmd.SourceDir, "Directory to recursively scan for markdown books (required)")
	fs.StringVar(&cmd.OutputDir, "output", cmd.OutputDir, "Directory for books/, metadata.json and reports")
	fs.BoolVar(&cmd.MoveWaste, "move-waste", cmd.MoveWaste, "Move rejected files into <output>/waste")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s consolidate [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Filter, deduplicate and categorize markdown books into a library catalog.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s consolidate -source ./incoming -output ./library\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s consolidate -source ./incoming -output ./library -move-waste\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.SourceDir == "" {
		fs.Usage()
		return consolidate.ErrSourceDirRequired
	}
	if cmd.OutputDir == "" {
		fs.Usage()
		return consolidate.ErrOutputDirRequired
	}

	return nil
}

func (cmd *ConsolidateCommand) Options() consolidate.Options {
	opts := consolidate.DefaultOptions(cmd.SourceDir, cmd.OutputDir)
	opts.MoveWaste = cmd.MoveWaste
	return opts
}

func (cmd *ConsolidateCommand) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.out, "Consolidating books from %s into %s\n", cmd.SourceDir, cmd.OutputDir)

	result, err := consolidate.NewConsolidator(cmd.Options()).Run(ctx)
	if err != nil {
		return fmt.Errorf("consolidation failed: %w", err)
	}

	cmd.printSummary(result)
	return nil
}

func (cmd *ConsolidateCommand) printSummary(result *consolidate.Result) {
	fmt.Fprintf(cmd.out, "\n=== Consolidation Results ===\n")
	fmt.Fprintf(cmd.out, "Run: %s\n", result.RunID)
	fmt.Fprintf(cmd.out, "Files scanned: %d\n", result.Stats.Total)
	fmt.Fprintf(cmd.out, "Books kept: %d\n", result.Stats.Kept)
	fmt.Fprintf(cmd.out, "Files removed: %d (%d duplicates)\n", result.Stats.Removed, result.Stats.Duplicates)
	if cmd.MoveWaste {
		fmt.Fprintf(cmd.out, "Moved to waste: %d\n", result.WasteMoved)
	}

	if len(result.Categories) > 0 {
		fmt.Fprintf(cmd.out, "\n=== Categories ===\n")
		names := append([]string(nil), result.Categories...)
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(cmd.out, "%s: %d\n", name, len(result.Books[name]))
		}
	}
}
