// Package template drives the compiler over .vex files and writes the
// generated render modules.
package template

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/recera/vexc/internal/cache"
	"github.com/recera/vexc/pkg/vex/compiler"
)

// SourceExt is the extension of template sources.
const SourceExt = ".vex"

// Result is the outcome of compiling one template file.
type Result struct {
	Source          string   `json:"source"`
	Output          string   `json:"output,omitempty"`
	Render          string   `json:"render"`
	StaticRenderFns []string `json:"staticRenderFns"`
	Errors          []string `json:"errors,omitempty"`
	Tips            []string `json:"tips,omitempty"`
}

// Processor compiles templates with a fixed option set. It is safe for
// concurrent use.
type Processor struct {
	Options *compiler.Options

	// SrcDir is the root that output paths are made relative to when OutDir
	// is set.
	SrcDir string

	// OutDir receives generated files. Empty writes next to each source.
	OutDir string

	// Extension replaces .vex in output file names.
	Extension string

	// Cache, when set, holds results keyed by Fingerprint and template
	// content for as long as the processor lives.
	Cache *cache.Cache

	// Fingerprint identifies Options for cache keys.
	Fingerprint string
}

// CompileFile reads and compiles filename without writing anything.
func (p *Processor) CompileFile(filename string) (*Result, error) {
	source, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var key string
	if p.Cache != nil {
		key = cache.Key(p.Fingerprint, string(source))
		if data, ok := p.Cache.Get(key); ok {
			var cached Result
			if err := json.Unmarshal(data, &cached); err == nil {
				cached.Source = filename
				return &cached, nil
			}
			p.Cache.Delete(key)
		}
	}

	res := compiler.Compile(string(source), p.Options)
	result := &Result{
		Source:          filename,
		Render:          res.Render,
		StaticRenderFns: res.StaticRenderFns,
		Errors:          res.Errors,
		Tips:            res.Tips,
	}

	if p.Cache != nil {
		data, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("failed to cache result: %w", err)
		}
		p.Cache.Put(key, data)
	}
	return result, nil
}

// ProcessTemplateFile compiles a .vex file and writes the render module.
func (p *Processor) ProcessTemplateFile(filename string) (*Result, error) {
	res, err := p.CompileFile(filename)
	if err != nil {
		return nil, err
	}

	outputFile, err := p.OutputPath(filename)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputFile, []byte(GenerateModule(res)), 0644); err != nil {
		return nil, fmt.Errorf("failed to write output file: %w", err)
	}

	res.Output = outputFile
	return res, nil
}

// OutputPath returns where the module generated from filename is written.
func (p *Processor) OutputPath(filename string) (string, error) {
	ext := p.Extension
	if ext == "" {
		ext = ".vex.js"
	}
	base := strings.TrimSuffix(filename, SourceExt) + ext
	if p.OutDir == "" {
		return base, nil
	}

	root := p.SrcDir
	if root == "" {
		root = "."
	}
	rel, err := filepath.Rel(root, base)
	if err != nil || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
		// sources outside SrcDir land flat in OutDir
		rel = filepath.Base(base)
	}
	return filepath.Join(p.OutDir, rel), nil
}

// ProcessDirectory compiles every .vex file under dir concurrently. Results
// are ordered by source path.
func (p *Processor) ProcessDirectory(ctx context.Context, dir string) ([]*Result, error) {
	templateFiles, err := FindTemplates(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to find template files: %w", err)
	}
	return p.ProcessFiles(ctx, templateFiles)
}

// ProcessFiles compiles files concurrently, stopping at the first failure.
func (p *Processor) ProcessFiles(ctx context.Context, files []string) ([]*Result, error) {
	results := make([]*Result, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := p.ProcessTemplateFile(file)
			if err != nil {
				return fmt.Errorf("failed to process %s: %w", file, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// FindTemplates returns the .vex files under dir in lexical order, skipping
// hidden directories and node_modules.
func FindTemplates(dir string) ([]string, error) {
	var templateFiles []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != dir && (strings.HasPrefix(name, ".") || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, SourceExt) {
			templateFiles = append(templateFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(templateFiles)
	return templateFiles, nil
}
