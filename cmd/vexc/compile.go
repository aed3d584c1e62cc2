package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/recera/vexc/cmd/vexc/internal/config"
	"github.com/recera/vexc/cmd/vexc/internal/template"
	"github.com/recera/vexc/cmd/vexc/internal/ui"
	"github.com/recera/vexc/internal/cache"
)

type compileFlags struct {
	dir        string
	out        string
	jsonOutput bool
	production bool
	strict     bool
	watch      bool
	noCache    bool
}

func newCompileCommand() *cobra.Command {
	var flags compileFlags

	cmd := &cobra.Command{
		Use:   "compile [files...]",
		Short: "Compile .vex templates into render modules",
		Long: `Compiles the given .vex files, or every .vex file under the source
directory, into ES modules exporting render and staticRenderFns.
Diagnostics are printed per file; --strict turns them into a failure.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			p := newProcessor(cfg, flags.noCache)

			if flags.watch {
				return runWatch(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, p)
			}
			if flags.jsonOutput {
				return printJSON(cmd.OutOrStdout(), cfg, p, args)
			}
			return runCompile(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, p, args)
		},
	}

	cmd.Flags().StringVar(&flags.dir, "dir", "", "Source directory to scan for .vex files")
	cmd.Flags().StringVar(&flags.out, "out", "", "Output directory (default: next to each source)")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Print compile results as JSON instead of writing files")
	cmd.Flags().BoolVar(&flags.production, "production", false, "Suppress diagnostics")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Fail when any template reports a warning")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "Recompile when templates change")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "Compile every template without the result cache")

	return cmd
}

// loadConfig reads the project config and applies explicitly set flags.
func loadConfig(cmd *cobra.Command, flags *compileFlags) (*config.Config, error) {
	project, _ := cmd.Flags().GetString("project")
	cfg, err := config.Load(project)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// paths in the config file are relative to the project
	cfg.SrcDir = projectPath(project, cfg.SrcDir)
	if cfg.OutDir != "" {
		cfg.OutDir = projectPath(project, cfg.OutDir)
	}

	if cmd.Flags().Changed("dir") {
		cfg.SrcDir = flags.dir
	}
	if cmd.Flags().Changed("out") {
		cfg.OutDir = flags.out
	}
	if cmd.Flags().Changed("production") {
		cfg.Production = flags.production
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = flags.strict
	}
	return cfg, nil
}

func projectPath(project, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(project, path)
}

// newProcessor builds a processor for cfg. Unless noCache is set it gets a
// fresh in-memory result cache that lives as long as the command.
func newProcessor(cfg *config.Config, noCache bool) *template.Processor {
	p := &template.Processor{
		Options:     cfg.CompilerOptions(),
		SrcDir:      cfg.SrcDir,
		OutDir:      cfg.OutDir,
		Extension:   cfg.Extension,
		Fingerprint: cfg.Fingerprint(),
	}
	if !noCache {
		p.Cache = cache.New(cache.Config{})
	}
	return p
}

func sourceFiles(cfg *config.Config, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	files, err := template.FindTemplates(cfg.SrcDir)
	if err != nil {
		return nil, fmt.Errorf("failed to find template files: %w", err)
	}
	return files, nil
}

func runCompile(ctx context.Context, stdout, stderr io.Writer, cfg *config.Config, p *template.Processor, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	startTime := time.Now()

	files, err := sourceFiles(cfg, args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(stdout, "No %s files found in %s\n", template.SourceExt, cfg.SrcDir)
		return nil
	}

	results, err := p.ProcessFiles(ctx, files)
	if err != nil {
		return err
	}
	return report(stdout, stderr, cfg, results, time.Since(startTime))
}

// report prints diagnostics and the summary, failing in strict mode when any
// template reported an error.
func report(stdout, stderr io.Writer, cfg *config.Config, results []*template.Result, elapsed time.Duration) error {
	var errCount, tipCount int
	for _, res := range results {
		errCount += len(res.Errors)
		tipCount += len(res.Tips)
		if d := ui.Diagnostics(res.Source, res.Errors, res.Tips); d != "" {
			fmt.Fprint(stderr, d)
		}
	}
	fmt.Fprintln(stdout, ui.Summary(len(results), errCount, tipCount, elapsed))

	if cfg.Strict && errCount > 0 {
		return fmt.Errorf("%d template warning(s) in strict mode", errCount)
	}
	return nil
}

func printJSON(w io.Writer, cfg *config.Config, p *template.Processor, args []string) error {
	files, err := sourceFiles(cfg, args)
	if err != nil {
		return err
	}

	results := make([]*template.Result, 0, len(files))
	errCount := 0
	for _, file := range files {
		res, err := p.CompileFile(file)
		if err != nil {
			return fmt.Errorf("failed to compile %s: %w", file, err)
		}
		errCount += len(res.Errors)
		results = append(results, res)
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Fprintln(w, string(data))

	if cfg.Strict && errCount > 0 {
		return fmt.Errorf("%d template warning(s) in strict mode", errCount)
	}
	return nil
}
