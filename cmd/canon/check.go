package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"canon/internal/diag"
	"canon/internal/diagfmt"
	"canon/internal/driver"
	"canon/internal/project"
	"canon/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.roc|directory>",
	Short: "Canonicalize sources and report diagnostics",
	Long: `Check resolves every name, validates literals, orders definitions and
reports all problems it finds. A directory is processed in parallel.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	checkCmd.Flags().String("emit-ir", "", "print the canonical IR (text|yaml)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	checkCmd.Flags().Bool("cache", false, "reuse results of unchanged files from the disk cache")
	checkCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().String("home", "", "home module name (defaults to canon.toml, then \""+driver.DefaultHome+"\")")
}

// checkSettings is the merged view of canon.toml and the command line.
type checkSettings struct {
	format    string
	opts      driver.Options
	jobs      int
	uiMode    uiMode
	withNotes bool
	pathMode  diagfmt.PathMode
}

func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", target, err)
	}

	settings, err := readCheckSettings(cmd, target, st.IsDir())
	if err != nil {
		return err
	}

	var (
		fs      *source.FileSet
		results []driver.Result
	)
	if st.IsDir() {
		fs, results, err = checkDir(cmd, target, settings)
	} else {
		var res *driver.Result
		fs, res, err = driver.CanonicalizeFile(cmd.Context(), target, settings.opts)
		if res != nil {
			results = []driver.Result{*res}
		}
	}
	if err != nil {
		return err
	}

	if err := printCheckResults(cmd, fs, results, settings); err != nil {
		return err
	}
	for i := range results {
		if results[i].HasErrors() {
			return exitCodeError{code: 1}
		}
	}
	return nil
}

func readCheckSettings(cmd *cobra.Command, target string, isDir bool) (checkSettings, error) {
	var s checkSettings
	flags := cmd.Flags()

	var err error
	if s.format, err = flags.GetString("format"); err != nil {
		return s, fmt.Errorf("failed to get format flag: %w", err)
	}
	switch s.format {
	case "pretty", "json", "short":
	default:
		return s, fmt.Errorf("unknown format: %s", s.format)
	}

	irStr, err := flags.GetString("emit-ir")
	if err != nil {
		return s, fmt.Errorf("failed to get emit-ir flag: %w", err)
	}
	if s.opts.EmitIR, err = driver.ParseIRFormat(irStr); err != nil {
		return s, err
	}

	uiStr, err := flags.GetString("ui")
	if err != nil {
		return s, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if s.uiMode, err = readUIMode(uiStr); err != nil {
		return s, err
	}

	// canon.toml задаёт значения по умолчанию, флаги их перекрывают
	startDir := target
	if !isDir {
		startDir = filepath.Dir(target)
	}
	manifest, ok, err := project.LoadManifest(startDir)
	if err != nil {
		return s, err
	}
	if ok {
		s.opts.Home = manifest.Config.HomeModule()
		s.opts.MaxDiagnostics = manifest.Config.Canon.MaxDiagnostics
		s.opts.WarningsAsErrors = manifest.Config.Canon.WarningsAsErrors
		s.jobs = manifest.Config.Canon.Jobs
	}

	if flags.Changed("home") || !ok {
		home, err := flags.GetString("home")
		if err != nil {
			return s, fmt.Errorf("failed to get home flag: %w", err)
		}
		s.opts.Home = strings.TrimSpace(home)
	}
	if flags.Changed("max-diagnostics") || !ok || s.opts.MaxDiagnostics == 0 {
		if s.opts.MaxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
			return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if flags.Changed("jobs") || !ok {
		if s.jobs, err = flags.GetInt("jobs"); err != nil {
			return s, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if flags.Changed("warnings-as-errors") || !ok {
		if s.opts.WarningsAsErrors, err = flags.GetBool("warnings-as-errors"); err != nil {
			return s, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
		}
	}
	if s.opts.IgnoreWarnings, err = flags.GetBool("no-warnings"); err != nil {
		return s, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if s.opts.IgnoreWarnings && s.opts.WarningsAsErrors {
		return s, fmt.Errorf("--no-warnings and --warnings-as-errors are mutually exclusive")
	}

	if s.opts.EnableTimings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}

	useCache, err := flags.GetBool("cache")
	if err != nil {
		return s, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if useCache {
		// без кэша проверка всё равно работает
		if c, cerr := driver.OpenDiskCache("canon"); cerr == nil {
			s.opts.Cache = c
		} else {
			fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", cerr)
		}
	}

	if s.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return s, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := flags.GetBool("fullpath")
	if err != nil {
		return s, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	s.pathMode = diagfmt.PathModeAuto
	if fullPath {
		s.pathMode = diagfmt.PathModeAbsolute
	}
	return s, nil
}

func checkDir(cmd *cobra.Command, dir string, s checkSettings) (*source.FileSet, []driver.Result, error) {
	if shouldUseTUI(s.uiMode) && s.format == "pretty" {
		files, err := driver.ListSourceFiles(dir)
		if err != nil {
			return nil, nil, err
		}
		if len(files) > 0 {
			return runCheckWithUI(cmd.Context(), fmt.Sprintf("checking %s", dir), dir, files, s.opts, s.jobs)
		}
	}
	return driver.CanonicalizeDir(cmd.Context(), dir, s.opts, s.jobs)
}

func printCheckResults(cmd *cobra.Command, fs *source.FileSet, results []driver.Result, s checkSettings) error {
	out := cmd.OutOrStdout()

	var items []diag.Diagnostic
	for i := range results {
		if results[i].Diagnostics != nil {
			items = append(items, results[i].Diagnostics.Items()...)
		}
	}

	switch s.format {
	case "pretty":
		diagfmt.Pretty(out, items, fs, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stdout),
			Context:   2,
			PathMode:  s.pathMode,
			ShowNotes: s.withNotes,
		})
	case "json":
		if err := diagfmt.JSON(out, items, fs, diagfmt.JSONOpts{
			PathMode:     s.pathMode,
			IncludeNotes: s.withNotes,
		}); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	case "short":
		if text := diag.FormatShortDiagnostics(items, fs, s.withNotes); text != "" {
			fmt.Fprintln(out, text)
		}
	}

	if s.opts.EmitIR != driver.IRNone {
		for i := range results {
			if results[i].IR == "" {
				continue
			}
			if len(results) > 1 {
				fmt.Fprintf(out, "== %s ==\n", results[i].Path)
			}
			fmt.Fprint(out, results[i].IR)
		}
	}

	if s.format == "pretty" {
		printSummary(cmd, results)
	}
	return nil
}

func printSummary(cmd *cobra.Command, results []driver.Result) {
	var errs, warns, cached int
	for i := range results {
		if results[i].Cached {
			cached++
		}
		if results[i].Diagnostics == nil {
			continue
		}
		for _, d := range results[i].Diagnostics.Items() {
			switch d.Severity {
			case diag.SevError:
				errs++
			case diag.SevWarning:
				warns++
			}
		}
	}
	if len(results) <= 1 && errs == 0 && warns == 0 {
		return
	}
	line := fmt.Sprintf("%d file(s), %d error(s), %d warning(s)", len(results), errs, warns)
	if cached > 0 {
		line += fmt.Sprintf(", %d cached", cached)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), line)
}
