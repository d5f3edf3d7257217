package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"charm.land/log/v2"
	"github.com/spf13/cobra"

	"github.com/shanto12/google-search/config"
	"github.com/shanto12/google-search/crawler"
	"github.com/shanto12/google-search/fetch"
	"github.com/shanto12/google-search/output"
	"github.com/shanto12/google-search/search"
	"github.com/shanto12/google-search/tui"
)

type options struct {
	Pages       int
	Parallelism int
	Diagnostics bool
	WordWrap    int
	XLSXPath    string
	LogDir      string
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "google-search [query...]",
		Short: "Search Google and crawl the results for contact emails",
		Long: "Runs a paginated Google Custom Search, crawls every result page and its\n" +
			"contact/about sub-pages in parallel, and collects the email addresses found.\n" +
			"Requires GOOGLE_API_KEY and GOOGLE_CSE_ID in the environment or a .env file.",
		Example: `  # Search and crawl two result pages (the default)
  google-search wedding photographers portland

  # More result pages, diagnostics report, Excel export
  google-search -n 5 --diagnostics --xlsx leads.xlsx plumbing companies

  # Pipe the query in
  echo "golang consultancies" | google-search`,
		RunE: func(c *cobra.Command, args []string) error {
			return run(c.Context(), opts, args)
		},
		// Allow positional args (the query) even though fang adds subcommands.
		TraverseChildren: true,
	}

	cmd.Flags().IntVarP(&opts.Pages, "pages", "n", 2, "Number of search result pages to crawl")
	cmd.Flags().IntVarP(&opts.Parallelism, "parallelism", "p", 0, "Concurrent crawl workers (default: CRAWL_WORKERS env or 5)")
	cmd.Flags().BoolVar(&opts.Diagnostics, "diagnostics", false, "Keep and report a per-page crawl trace")
	cmd.Flags().IntVarP(&opts.WordWrap, "word-wrap", "w", 80, "Word wrap width for terminal rendering")
	cmd.Flags().StringVar(&opts.XLSXPath, "xlsx", "", "Write results to an Excel workbook at this path")
	cmd.Flags().StringVar(&opts.LogDir, "log-dir", "", "Directory for per-run log files (default: LOG_DIR env or logs)")

	return cmd
}

func run(ctx context.Context, opts *options, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.LogDir != "" {
		cfg.LogDir = opts.LogDir
	}

	query, err := collectQuery(args)
	if err != nil {
		return err
	}

	logFile, err := openRunLog(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("cannot create run log: %w", err)
	}
	defer logFile.Close()

	// The log file captures the run regardless of mode; stderr joins in when
	// the TUI doesn't own the terminal.
	logWriter := io.Writer(logFile)
	if !tui.IsTTY() {
		logWriter = io.MultiWriter(logFile, os.Stderr)
	}
	logger := log.New(logWriter)
	logger.SetReportTimestamp(true)

	searchClient, err := search.NewClient(
		cfg.APIKey,
		cfg.SearchEngineID,
		search.WithPageDelay(cfg.SearchDelay),
	)
	if err != nil {
		return err
	}

	workers := cfg.Workers
	if opts.Parallelism > 0 {
		workers = opts.Parallelism
	}

	eng := crawler.New(crawler.Options{
		Fetcher:     fetch.NewClient(cfg.FetchTimeout, cfg.UserAgent),
		Search:      searchClient,
		Workers:     workers,
		Diagnostics: opts.Diagnostics,
		Logger:      logger,
	})

	logger.Info("starting crawl", "query", query, "pages", opts.Pages, "workers", workers)

	results, err := tui.RunWithProgress(ctx, eng, query, opts.Pages)
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	report := output.ReportMarkdown(query, results, eng.Stats())
	fmt.Fprintln(logFile, report)
	if opts.Diagnostics {
		fmt.Fprintln(logFile, output.DiagnosticsMarkdown(eng.Diagnostics()))
	}

	if opts.XLSXPath != "" {
		if err := output.WriteXLSX(results, opts.XLSXPath); err != nil {
			return fmt.Errorf("xlsx export: %w", err)
		}
		logger.Info("wrote workbook", "path", opts.XLSXPath)
	}

	// Launch the interactive browser for multi-result TTY output.
	if len(results) > 1 && tui.IsTTY() {
		if err := tui.RunBrowser(results, eng.Diagnostics()); err != nil {
			return err
		}
	}

	if err := output.RenderTerminal(os.Stdout, report, opts.WordWrap); err != nil {
		return err
	}
	if opts.Diagnostics {
		return output.RenderTerminal(os.Stdout, output.DiagnosticsMarkdown(eng.Diagnostics()), opts.WordWrap)
	}
	return nil
}

// collectQuery builds the search query from args, piped stdin, or an
// interactive prompt, in that order.
func collectQuery(args []string) (string, error) {
	if q := strings.TrimSpace(strings.Join(args, " ")); q != "" {
		return q, nil
	}

	// Read from stdin if piped (not a terminal).
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				return line, nil
			}
		}
		return "", fmt.Errorf("no search query on stdin")
	}

	if tui.IsTTY() {
		return tui.PromptQuery()
	}
	return "", fmt.Errorf("no search query provided; pass it as arguments or pipe via stdin")
}

// openRunLog creates one timestamped append-only log file per run.
func openRunLog(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	name := fmt.Sprintf("crawl-%s.log", time.Now().Format("20060102-150405"))
	return os.OpenFile(filepath.Join(dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}
