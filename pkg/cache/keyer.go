package cache

// Keyer builds cache keys for the two cached value classes. Implementations
// must be deterministic: the same inputs always produce the same key.
type Keyer interface {
	// SolveKey builds the key for a solve result, derived from the hash of
	// the problem input and the options that influence the search.
	SolveKey(problemHash string, opts SolveKeyOpts) string

	// ArtifactKey builds the key for a rendered artifact, derived from the
	// hash of the solution and the render options.
	ArtifactKey(solutionHash string, opts ArtifactKeyOpts) string
}

// SolveKeyOpts are the solver options that change the search outcome and
// therefore participate in the cache key.
type SolveKeyOpts struct {
	NodeBudget int64 `json:"node_budget,omitempty"`
}

// ArtifactKeyOpts are the render options that change the artifact bytes.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// DefaultKeyer is the standard key builder. Keys have the form
// "class:sha256(inputs)" so backends can tell value classes apart.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key builder.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SolveKey generates a key for a solve result.
func (k *DefaultKeyer) SolveKey(problemHash string, opts SolveKeyOpts) string {
	return hashKey("solve", problemHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(solutionHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", solutionHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation, so
// different deployments sharing one Redis can keep separate namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SolveKey generates a prefixed key for a solve result.
func (k *ScopedKeyer) SolveKey(problemHash string, opts SolveKeyOpts) string {
	return k.prefix + k.inner.SolveKey(problemHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(solutionHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(solutionHash, opts)
}

// Ensure ScopedKeyer implements Keyer.
var _ Keyer = (*ScopedKeyer)(nil)
