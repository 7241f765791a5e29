// Package pipeline provides the core solve pipeline for Tilegarden.
//
// This package implements the complete parse → solve → render pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Decode a problem file (plain text or TOML manifest)
//  2. Solve: Run constraint propagation and backtracking search
//  3. Render: Generate output in various formats (text, grid, JSON, pretty)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Path:   "problems/garden.txt",
//	    Format: pipeline.FormatText,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(string(result.Artifact))
//
// Run individual stages:
//
//	// Parse only
//	p, err := runner.ParseProblem(opts)
//
//	// Solve with an existing problem
//	res, err := runner.Solve(ctx, p, input, opts)
//
//	// Render with an existing result
//	artifact, err := runner.Render(ctx, p, res, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tilegarden/tilegarden/pkg/cache"
	"github.com/tilegarden/tilegarden/pkg/csp"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultNodeBudget caps the number of assignments a solve may try.
	// This is intentionally conservative to provide better UX for CLI users
	// and bound API request latency. Set NodeBudget explicitly to override;
	// a negative value disables the budget entirely.
	DefaultNodeBudget = int64(5_000_000)

	// DefaultFormat is the default output format.
	DefaultFormat = FormatText
)

// Format constants for output formats.
const (
	FormatText   = "text"
	FormatGrid   = "grid"
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText:   true,
	FormatGrid:   true,
	FormatJSON:   true,
	FormatPretty: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the solve pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input options
	Path  string `json:"path,omitempty"`  // problem file on disk
	Input string `json:"input,omitempty"` // inline problem text
	TOML  bool   `json:"toml,omitempty"`  // Input is a TOML manifest

	// Solve options
	NodeBudget int64 `json:"node_budget,omitempty"`
	Refresh    bool  `json:"refresh,omitempty"`

	// Render options
	Format string `json:"format,omitempty"`

	// Runtime options (not serialized)
	Logger        *log.Logger     `json:"-"`
	ProgressEvery int64           `json:"-"`
	OnProgress    func(csp.Stats) `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Problem is the parsed and validated problem instance.
	Problem *csp.Problem

	// ProblemHash is the content hash of the problem input.
	ProblemHash string

	// Solve is the terminal state of the search.
	Solve csp.Result

	// Artifact is the rendered output in the requested format.
	Artifact []byte

	// Stats contains timing information per stage.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ParseTime  time.Duration
	SolveTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SolveHit    bool // Whether the solve result came from cache
	ArtifactHit bool // Whether the artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: text, grid, json, pretty)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	o.SetSolveDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Path == "" && o.Input == "" {
		return fmt.Errorf("path or input is required")
	}
	if o.Path != "" && o.Input != "" {
		return fmt.Errorf("path and input are mutually exclusive")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetSolveDefaults sets default values for the search.
func (o *Options) SetSolveDefaults() {
	if o.NodeBudget == 0 {
		o.NodeBudget = DefaultNodeBudget
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormat(o.Format)
}

// EffectiveNodeBudget resolves the budget passed to the solver: zero is
// replaced by the default and negative values mean unlimited.
func (o *Options) EffectiveNodeBudget() int64 {
	if o.NodeBudget < 0 {
		return 0
	}
	if o.NodeBudget == 0 {
		return DefaultNodeBudget
	}
	return o.NodeBudget
}

// SolveKeyOpts returns cache key options for the solve stage.
func (o *Options) SolveKeyOpts() cache.SolveKeyOpts {
	return cache.SolveKeyOpts{
		NodeBudget: o.EffectiveNodeBudget(),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: o.Format,
	}
}
