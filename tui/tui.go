package tui

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"sort"
	"strings"

	"charm.land/bubbles/v2/progress"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/log/v2"

	"github.com/shanto12/google-search/crawler"
)

// Tokyo Night palette shared with browser.
var (
	subtle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
	title   = lipgloss.NewStyle().Foreground(lipgloss.Color("#1a1b26")).Background(lipgloss.Color("#7aa2f7")).Bold(true).Padding(0, 1)
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e"))
	statNum = lipgloss.NewStyle().Foreground(lipgloss.Color("#7dcfff")).Bold(true)
	doneTag = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")).Bold(true)
)

type (
	crawlEventMsg crawler.Event
	crawlDoneMsg  struct {
		results []crawler.Result
	}
)

type model struct {
	spinner     spinner.Model
	progress    progress.Model
	logEntries  []string
	total       int
	completed   int
	emailsFound int
	activeURLs  []string
	activeSet   map[string]bool
	results     []crawler.Result
	done        bool
	width       int
	height      int
}

func newModel() model {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7"))),
	)

	p := progress.New(
		progress.WithColors(lipgloss.Color("#7aa2f7"), lipgloss.Color("#bb9af7")),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return model{
		spinner:   s,
		progress:  p,
		activeSet: make(map[string]bool),
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := msg.Width - 20
		barWidth = max(barWidth, 20)
		barWidth = min(barWidth, 60)
		m.progress.SetWidth(barWidth)
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd

	case crawlEventMsg:
		return m.handleCrawlEvent(crawler.Event(msg))

	case crawlDoneMsg:
		m.results = msg.results
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *model) addActive(url string) {
	if !m.activeSet[url] {
		m.activeSet[url] = true
		m.activeURLs = append(m.activeURLs, url)
	}
}

func (m *model) removeActive(url string) {
	if !m.activeSet[url] {
		return
	}
	delete(m.activeSet, url)
	for i, u := range m.activeURLs {
		if u == url {
			m.activeURLs = append(m.activeURLs[:i], m.activeURLs[i+1:]...)
			break
		}
	}
}

func (m model) handleCrawlEvent(e crawler.Event) (tea.Model, tea.Cmd) {
	truncW := max(20, m.width-30)

	switch e.Type {
	case "start":
		m.total = e.Total

	case "fetching":
		m.addActive(e.URL)

	case "done":
		m.removeActive(e.URL)
		m.completed++
		m.emailsFound += e.Emails
		mark := green.Render("✓")
		tag := subtle.Render("no emails")
		if e.Emails > 0 {
			tag = green.Render(fmt.Sprintf("%d emails", e.Emails))
		}
		entry := fmt.Sprintf("  %s %s [%s]", mark, truncateURL(e.URL, truncW), tag)
		m.logEntries = append(m.logEntries, entry)

	case "error":
		m.removeActive(e.URL)
		m.completed++
		errMsg := "unreachable"
		if e.Err != nil {
			errMsg = e.Err.Error()
			if len(errMsg) > 45 {
				errMsg = errMsg[:45] + "..."
			}
		}
		entry := fmt.Sprintf("  %s %s %s", red.Render("✗"), truncateURL(e.URL, max(20, truncW-50)), subtle.Render(errMsg))
		m.logEntries = append(m.logEntries, entry)
	}

	var pct float64
	if m.total > 0 {
		pct = float64(m.completed) / float64(m.total)
	}
	cmd := m.progress.SetPercent(pct)
	return m, cmd
}

func (m model) View() tea.View {
	if m.done {
		return tea.NewView("")
	}

	h := m.height
	w := m.width
	if h == 0 {
		h = 24
	}
	if w == 0 {
		w = 80
	}

	var lines []string

	// Header
	lines = append(lines, "")
	lines = append(lines, "  "+title.Render("google-search"))
	lines = append(lines, "")

	// Progress line
	var progLine string
	if m.completed >= m.total && m.total > 0 {
		progLine = "  " + doneTag.Render("✓ Done!") + " " + m.progress.View()
	} else {
		progLine = "  " + m.spinner.View() + " " + m.progress.View()
	}
	progLine += " " + statNum.Render(fmt.Sprintf("%d", m.completed)) +
		subtle.Render(fmt.Sprintf("/%d sites", m.total)) +
		"  " + statNum.Render(fmt.Sprintf("%d", m.emailsFound)) +
		subtle.Render(" emails")
	if len(m.activeURLs) > 0 {
		progLine += subtle.Render(fmt.Sprintf(" (%d active)", len(m.activeURLs)))
	}
	lines = append(lines, progLine)
	lines = append(lines, "")

	// Log entries fill the remaining space.
	headerLines := len(lines)
	maxLogs := max(0, h-headerLines-1)

	if len(m.logEntries) > 0 {
		entries := m.logEntries
		if len(entries) > maxLogs {
			entries = entries[len(entries)-maxLogs:]
		}
		lines = append(lines, entries...)
	} else if len(m.activeURLs) > 0 {
		sorted := make([]string, len(m.activeURLs))
		copy(sorted, m.activeURLs)
		sort.Strings(sorted)
		shown := sorted
		if len(shown) > 3 {
			shown = shown[:3]
		}
		for _, u := range shown {
			lines = append(lines, subtle.Render(fmt.Sprintf("  → %s", truncateURL(u, max(20, w-10)))))
		}
		if len(sorted) > 3 {
			lines = append(lines, subtle.Render(fmt.Sprintf("  ...and %d more", len(sorted)-3)))
		}
	}

	if len(lines) > h {
		lines = lines[:h]
	}

	v := tea.NewView(strings.Join(lines, "\n"))
	v.AltScreen = true
	return v
}

// IsTTY reports whether stderr is connected to a terminal.
func IsTTY() bool {
	fi, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// RunWithProgress runs the crawl with a TUI progress display. Falls back to
// log-based output when no TTY is available.
func RunWithProgress(ctx context.Context, eng *crawler.Engine, query string, pages int) ([]crawler.Result, error) {
	if !IsTTY() {
		return runWithLogs(ctx, eng, query, pages)
	}

	m := newModel()
	prog := tea.NewProgram(m)

	// Mute Go's standard logger and stderr during TUI to prevent library
	// output (colly etc.) from corrupting the Bubble Tea alt screen.
	origStdlogOutput := stdlog.Writer()
	stdlog.SetOutput(io.Discard)
	origStderr := os.Stderr
	devNull, _ := os.Open(os.DevNull)
	if devNull != nil {
		os.Stderr = devNull
	}

	go func() {
		eng.SetOnEvent(func(e crawler.Event) {
			prog.Send(crawlEventMsg(e))
		})
		results := eng.SearchAndCrawl(ctx, query, pages)
		prog.Send(crawlDoneMsg{results: results})
	}()

	finalModel, err := prog.Run()

	// Restore stderr and standard logger.
	os.Stderr = origStderr
	stdlog.SetOutput(origStdlogOutput)
	if devNull != nil {
		_ = devNull.Close()
	}

	if err != nil {
		return nil, fmt.Errorf("TUI error: %w", err)
	}

	fm := finalModel.(model)
	return fm.results, nil
}

func runWithLogs(ctx context.Context, eng *crawler.Engine, query string, pages int) ([]crawler.Result, error) {
	logger := log.New(os.Stderr)
	logger.SetLevel(log.InfoLevel)

	logger.Info("Searching", "query", query, "pages", pages)

	eng.SetOnEvent(func(e crawler.Event) {
		switch e.Type {
		case "start":
			logger.Info("Crawling", "urls", e.Total)
		case "fetching":
			logger.Info("Fetching", "url", e.URL)
		case "done":
			logger.Info("Done", "url", e.URL, "emails", e.Emails)
		case "error":
			logger.Error("Failed", "url", e.URL, "err", e.Err)
		}
	})

	results := eng.SearchAndCrawl(ctx, query, pages)
	logger.Info("Crawl complete", "sites_with_emails", len(results))
	return results, nil
}

func truncateURL(u string, maxLen int) string {
	if len(u) <= maxLen {
		return u
	}
	return u[:maxLen-3] + "..."
}
