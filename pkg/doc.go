// Package pkg provides the core libraries for Tilegarden tile placement.
//
// # Overview
//
// Tilegarden solves a tiling puzzle: cover a landscape of colored bushes with
// a fixed inventory of tiles so that exactly the requested number of bushes
// of each color remains visible. The pkg directory is organized into:
//
//   - [landscape] - The bush grid and its validation
//   - [csp] - The constraint model, propagation, and search
//   - [io] - Problem file formats (plain text and TOML manifests)
//   - [render] - Solution artifacts (text, grid, JSON, pretty, constraint graph)
//   - [pipeline] - Orchestration (parse → solve → render) with caching
//   - [cache] - Cache backends and key generation
//   - [store] - Persisted solve runs for the HTTP service
//   - [errors] - Structured error codes shared by CLI and API
//   - [observability] - Hook points for metrics and tracing
//
// # Architecture
//
// The typical data flow through Tilegarden:
//
//	Problem File (text or TOML)
//	         ↓
//	io: parse and validate
//	         ↓
//	csp: propagate (AC-3) and search (backtracking)
//	         ↓
//	render: artifact in the requested format
//
// The pipeline package wraps all three stages behind a cache, and the CLI
// (internal/cli) and HTTP API (internal/api) both drive that pipeline.
package pkg
