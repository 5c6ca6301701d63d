package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/cj3636/garch/internal/config"
	"github.com/cj3636/garch/internal/diff"
	"github.com/cj3636/garch/internal/export"
	"github.com/cj3636/garch/internal/highlight"
	"github.com/cj3636/garch/internal/history"
	"github.com/cj3636/garch/internal/tui"
	"github.com/cj3636/garch/internal/version"
)

const appVersion = "0.1.0"

// app carries global flags and the collaborators commands depend on, so
// tests can swap out git and the terminal UI.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath  string
	logFile     string
	noHighlight bool

	cfg     *config.Config
	logger  *slog.Logger
	logSink io.Closer

	newSource func(path string, logger *slog.Logger) (history.Source, string, error)
	runViewer func(session tui.Session, cfg *config.Config) error
}

type reportOptions struct {
	enabled bool
	format  string
	output  string
	copy    bool
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:       out,
		errOut:    errOut,
		newSource: gitSource,
		runViewer: runProgram,
	}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "garch",
		Short: "Explore the evolution of code through git history",
		Long: `garch replays how a file, or a range of lines in it, changed commit by commit.

Commands:
  lines     Trace the evolution of specific lines in a file
  file      Show the evolution of an entire file`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Use 'garch --help' for usage information")
		},
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			a.teardown()
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/garch/config.yaml)")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Write debug logs to this file")
	root.PersistentFlags().BoolVar(&a.noHighlight, "no-highlight", false, "Disable syntax highlighting")

	root.AddCommand(a.linesCommand(), a.fileCommand(), versionCommand())
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.noHighlight {
		cfg.Highlight = false
	}
	a.cfg = cfg

	if a.logFile == "" {
		a.logger = slog.New(slog.DiscardHandler)
		return nil
	}
	f, err := os.OpenFile(a.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	a.logSink = f
	a.logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return nil
}

func (a *app) teardown() {
	if a.logSink != nil {
		_ = a.logSink.Close()
		a.logSink = nil
	}
}

func (a *app) linesCommand() *cobra.Command {
	var (
		reverse bool
		report  reportOptions
	)

	cmd := &cobra.Command{
		Use:   "lines <path>:<start>-<end>",
		Short: "Trace the evolution of specific lines in a file",
		Example: `  garch lines src/main.go:10-20
  garch lines src/main.go:42 --reverse
  garch lines src/main.go:10-20 --report --format markdown`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, start, end := parseFileRange(args[0])
			return a.traceLines(cmd.Context(), path, start, end, reverse, report)
		},
	}

	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "Show newest commits first")
	bindReportFlags(cmd.Flags(), &report)
	return cmd
}

func (a *app) fileCommand() *cobra.Command {
	var reverse bool

	cmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Show the evolution of an entire file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.traceFile(cmd.Context(), args[0], reverse)
		},
	}

	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "Show newest commits first")
	return cmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "garch version %s\n", appVersion)
		},
	}
}

func bindReportFlags(fs *flag.FlagSet, o *reportOptions) {
	fs.BoolVar(&o.enabled, "report", false, "Print per-commit line changes instead of starting the viewer")
	fs.StringVar(&o.format, "format", "ansi", "Report format: ansi, markdown, html or table")
	fs.StringVar(&o.output, "output", "", "Write the report to this file")
	fs.BoolVar(&o.copy, "copy", false, "Copy the report to your clipboard")
}

func (a *app) traceLines(ctx context.Context, path string, start, end int, reverse bool, report reportOptions) error {
	src, rel, err := a.newSource(path, a.logger)
	if err != nil {
		return err
	}

	text, err := src.LineHistory(ctx, rel, start, end)
	if err != nil {
		return fmt.Errorf("getting line history: %w", err)
	}

	commits := history.ParseCommits(text)
	if len(commits) == 0 {
		fmt.Fprintf(a.out, "No history found for %s\n", describeRange(path, start, end))
		return nil
	}

	if report.enabled {
		if !reverse {
			commits = history.ReverseCommits(commits)
		}
		return a.writeReport(ctx, src, rel, start, end, commits, report)
	}

	versions, err := a.loadVersions(ctx, src, rel, reverse)
	if err != nil {
		return fmt.Errorf("getting file versions: %w", err)
	}
	if len(versions) == 0 {
		fmt.Fprintf(a.out, "No git history found for %s\n", path)
		return nil
	}

	return a.runViewer(tui.Session{Path: path, Start: start, End: end, Versions: versions}, a.cfg)
}

func (a *app) traceFile(ctx context.Context, path string, reverse bool) error {
	src, rel, err := a.newSource(path, a.logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Loading file history for %s...\n", path)

	versions, err := a.loadVersions(ctx, src, rel, reverse)
	if err != nil {
		return err
	}
	if len(versions) == 0 {
		fmt.Fprintf(a.out, "No git history found for %s\n", path)
		return nil
	}

	return a.runViewer(tui.Session{Path: path, Start: 1, End: history.Unbounded, Versions: versions}, a.cfg)
}

// loadVersions builds the version sequence, oldest first unless reverse
// is set.
func (a *app) loadVersions(ctx context.Context, src history.Source, rel string, reverse bool) ([]version.FileVersion, error) {
	var styler history.Styler
	if a.cfg.Highlight {
		styler = highlight.New(rel)
	}

	versions, err := version.Build(ctx, src, rel, styler, a.logger)
	if err != nil {
		return nil, err
	}
	if !reverse {
		versions = version.Reverse(versions)
	}
	return versions, nil
}

func (a *app) writeReport(ctx context.Context, src history.Source, rel string, start, end int, commits []history.CommitInfo, o reportOptions) error {
	format, err := export.ParseFormat(o.format)
	if err != nil {
		return err
	}

	report := diff.BuildReport(ctx, src, diff.NewEngine(), rel, start, end, commits, a.logger)
	rendered, err := export.Render(report, format, export.Options{})
	if err != nil {
		return fmt.Errorf("exporting report: %w", err)
	}

	if o.output != "" {
		if err := os.WriteFile(o.output, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Fprintf(a.out, "Report saved to %s\n", o.output)
	}

	if o.copy {
		if err := export.CopyToClipboard(rendered, a.out); err != nil {
			return fmt.Errorf("copying report to clipboard: %w", err)
		}
		fmt.Fprintln(a.out, "Report copied to clipboard.")
	}

	if o.output == "" && !o.copy {
		fmt.Fprintln(a.out, rendered)
	}
	return nil
}

func gitSource(path string, logger *slog.Logger) (history.Source, string, error) {
	root, rel, err := history.Locate(path)
	if err != nil {
		return nil, "", err
	}
	return history.NewGit(history.ExecRunner{Logger: logger}, root), rel, nil
}

func runProgram(session tui.Session, cfg *config.Config) error {
	p := tea.NewProgram(tui.NewModel(session, cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}

// parseFileRange splits "path:start-end". A lone number traces one line
// and a missing range means the whole file.
func parseFileRange(fileRange string) (path string, start, end int) {
	colon := strings.LastIndex(fileRange, ":")
	if colon < 0 {
		return fileRange, 1, history.Unbounded
	}

	path = fileRange[:colon]
	rangePart := fileRange[colon+1:]

	if dash := strings.Index(rangePart, "-"); dash >= 0 {
		start = atoiOr(rangePart[:dash], 1)
		end = atoiOr(rangePart[dash+1:], start)
		return path, start, end
	}

	line := atoiOr(rangePart, 1)
	return path, line, line
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func describeRange(path string, start, end int) string {
	if end == history.Unbounded {
		return path
	}
	return fmt.Sprintf("%s:%d-%d", path, start, end)
}
