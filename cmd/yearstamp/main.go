package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Nomadcxx/yearstamp/internal/config"
	"github.com/Nomadcxx/yearstamp/internal/reporter"
	"github.com/Nomadcxx/yearstamp/internal/scanner"
	"github.com/Nomadcxx/yearstamp/internal/tmdb"
	"github.com/Nomadcxx/yearstamp/internal/ui"
)

const (
	exitOK          = 0
	exitFatal       = 1
	exitInterrupted = 130
)

var (
	cfgFile     string
	interactive bool
	dryRun      bool
	quiet       bool
	verbose     bool

	// Version information (set via -ldflags during build)
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "yearstamp [directory]",
	Short: "Add release years to movie file names",
	Long: "yearstamp looks up every movie in a directory on TMDB and renames\n" +
		"Title.ext to Title.(YYYY).ext, keeping subtitles alongside their video.",
	Args: cobra.MaximumNArgs(1),
	Run:  runRename,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration file location and settings",
	Args:  cobra.NoArgs,
	Run:   runConfig,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("yearstamp %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/yearstamp/config.toml)")
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "ask before each rename")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be renamed without renaming")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print warnings and errors")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print debug output")
	rootCmd.MarkFlagsMutuallyExclusive("quiet", "verbose")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitFatal)
	}
}

func runRename(cmd *cobra.Command, args []string) {
	// Cancel on Ctrl+C so the run stops before the next lookup
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nCancelling...")
		cancel()
	}()

	opts := runOptions{
		configPath:  cfgFile,
		interactive: interactive,
		dryRun:      dryRun,
		level:       logLevel(quiet, verbose),
	}
	if len(args) > 0 {
		opts.directory = args[0]
	}
	if interactive {
		opts.approver = newApprover(os.Stdin, os.Stdout)
	}

	os.Exit(run(ctx, opts, os.Stdout, os.Stderr))
}

type runOptions struct {
	configPath  string
	directory   string
	interactive bool
	dryRun      bool
	level       ui.LogLevel
	approver    ui.Approver

	// finder replaces the TMDB client when set
	finder tmdb.YearFinder
}

// run performs one rename pass and returns the process exit code
func run(ctx context.Context, opts runOptions, stdout, stderr io.Writer) int {
	console := ui.NewConsole(stdout, opts.level)

	path, err := config.ResolvePath(opts.configPath)
	if err != nil {
		fmt.Fprintln(stderr, ui.FormatStatusFail(err.Error()))
		return exitFatal
	}

	cfg, err := config.Load(path)
	if errors.Is(err, config.ErrTemplateCreated) {
		fmt.Fprintf(stderr, "Please add your TMDB API key to %s\n", path)
		return exitFatal
	}
	if err != nil {
		fmt.Fprintln(stderr, ui.FormatStatusFail(fmt.Sprintf("Error loading config: %v", err)))
		return exitFatal
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, ui.FormatStatusFail(fmt.Sprintf("Invalid config %s: %v", path, err)))
		return exitFatal
	}

	delay, _ := cfg.LookupDelay()

	finder := opts.finder
	if finder == nil {
		timeout, _ := cfg.RequestTimeout()
		client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language, tmdb.WithTimeout(timeout))
		if err != nil {
			fmt.Fprintln(stderr, ui.FormatStatusFail(err.Error()))
			return exitFatal
		}
		finder = client
	}

	directory := resolveDirectory(opts.directory, cfg)

	renamerOpts := []scanner.Option{
		scanner.WithDryRun(opts.dryRun),
		scanner.WithDelay(delay),
	}
	if opts.interactive && opts.approver != nil {
		renamerOpts = append(renamerOpts, scanner.WithApprover(opts.approver))
	}

	console.Debugf("Config: %s", path)
	console.Infof("Processing %s", directory)

	summary, err := scanner.NewRenamer(directory, finder, console, renamerOpts...).Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(stderr, "Run cancelled by user")
			printSummary(stdout, summary, opts.level)
			return exitInterrupted
		}
		fmt.Fprintln(stderr, ui.FormatStatusFail(err.Error()))
		return exitFatal
	}

	printSummary(stdout, summary, opts.level)
	return exitOK
}

func printSummary(w io.Writer, summary *scanner.Summary, level ui.LogLevel) {
	if level == ui.LogLevelQuiet || summary == nil {
		return
	}
	fmt.Fprint(w, "\n"+reporter.Render(summary))
}

func logLevel(quiet, verbose bool) ui.LogLevel {
	switch {
	case quiet:
		return ui.LogLevelQuiet
	case verbose:
		return ui.LogLevelVerbose
	default:
		return ui.LogLevelNormal
	}
}

func resolveDirectory(arg string, cfg *config.Config) string {
	if arg != "" {
		return arg
	}
	if cfg != nil && cfg.Rename.Directory != "" {
		return cfg.Rename.Directory
	}
	return config.DefaultDirectory
}

// newApprover uses the bubbletea prompt on a terminal and a plain line reader otherwise
func newApprover(in *os.File, out io.Writer) ui.Approver {
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		return ui.NewTeaPrompter(in, out)
	}
	return ui.NewLinePrompter(in, out)
}

func runConfig(cmd *cobra.Command, args []string) {
	path, err := config.ResolvePath(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitFatal)
	}

	fmt.Printf("Configuration file: %s\n\n", path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("Config file does not exist. Run yearstamp once to create a template,")
		fmt.Println("then set api_key under [TMDB].")
		return
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(exitFatal)
	}

	fmt.Print(describeConfig(cfg))
}

func describeConfig(cfg *config.Config) string {
	return fmt.Sprintf("TMDB:\n  API key:   %s\n  Base URL:  %s\n  Language:  %s\n  Timeout:   %s\n\nRename:\n  Directory: %s\n  Delay:     %s\n",
		cfg.MaskedAPIKey(), cfg.TMDB.BaseURL, cfg.TMDB.Language, cfg.TMDB.Timeout,
		cfg.Rename.Directory, cfg.Rename.Delay)
}
