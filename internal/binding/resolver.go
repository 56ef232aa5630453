package binding

import (
	"context"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"recipe-resolver/internal/common"
	"recipe-resolver/internal/ctxlog"
	"recipe-resolver/internal/recipe"
)

// Config holds configuration for the resolution process.
type Config struct {
	// Workers bounds how many redirection rows are resolved in parallel.
	// Values below 2 resolve sequentially with a shared memo.
	Workers int
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() Config {
	return Config{
		Workers: runtime.GOMAXPROCS(0),
	}
}

// Resolver flattens redirection chains into direct sources.
type Resolver struct {
	config Config
}

// NewResolver creates a new Resolver.
func NewResolver(config Config) *Resolver {
	return &Resolver{config: config}
}

// Resolve collects and resolves every binding of m with the default config.
func Resolve(ctx context.Context, m *recipe.Model) (*Resolved, error) {
	return NewResolver(DefaultConfig()).Resolve(ctx, m)
}

// Resolve runs collection then resolution. On error no table is returned.
func (r *Resolver) Resolve(ctx context.Context, m *recipe.Model) (*Resolved, error) {
	col, err := Collect(m)
	if err != nil {
		return nil, err
	}

	return r.ResolveCollection(ctx, col)
}

// rowResult is the flattened form of one redirection row.
type rowResult struct {
	key     Key
	sources Sources
	hops    Sources
}

// ResolveCollection expands every Redirection row of col into Direct sources.
// col is not modified.
func (r *Resolver) ResolveCollection(ctx context.Context, col *Collection) (*Resolved, error) {
	logger := ctxlog.FromContext(ctx)
	keys := col.Redirections.Keys()

	logger.Debug("resolving redirections",
		"direct_rows", len(col.Direct.Keys()),
		"redirection_rows", len(keys),
		"workers", r.config.Workers)

	var (
		results []rowResult
		err     error
	)

	if r.config.Workers < 2 {
		results, err = resolveSequential(ctx, col, keys)
	} else {
		results, err = resolveParallel(ctx, col, keys, r.config.Workers)
	}

	if err != nil {
		logger.Debug("resolution failed", "error", err)
		return nil, err
	}

	properties := col.Direct.Clone()
	redirections := col.Redirections.Clone()

	for _, res := range results {
		properties.ensure(res.key.Instance, res.key.Property).Merge(res.sources)
		redirections.ensure(res.key.Instance, res.key.Property).Merge(res.hops)

		logger.Debug("resolved binding",
			"binding", res.key.String(),
			"sources", res.sources.Count(),
			"hops", res.hops.Count())
	}

	return &Resolved{
		variables:    col.Variables,
		properties:   properties,
		redirections: redirections,
	}, nil
}

func resolveSequential(ctx context.Context, col *Collection, keys []Key) ([]rowResult, error) {
	cl := newClosure(col)
	results := make([]rowResult, 0, len(keys))

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := cl.row(key)
		if err != nil {
			return nil, err
		}

		results = append(results, res)
	}

	return results, nil
}

// resolveParallel resolves rows concurrently, each task with its own memo.
// Results keep the order of keys so merging is identical to the sequential
// path, and the reported error is the one of the first failing key.
func resolveParallel(ctx context.Context, col *Collection, keys []Key, workers int) ([]rowResult, error) {
	results := make([]rowResult, len(keys))
	errs := make([]error, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, key := range keys {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i], errs[i] = newClosure(col).row(key)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// node is a vertex of the redirection graph: an identifier read inside an
// owner component. For an extern row the owner is the embedded instance and
// the identifier its property key.
type node struct {
	owner string
	ident string
}

func (n node) key() Key {
	return Key{Instance: n.owner, Property: n.ident}
}

// reach is everything reachable from a node: the terminal getters keyed by
// the component declaring their variable, and every redirection hop crossed
// keyed by hop owner.
type reach struct {
	sources Sources
	hops    Sources
}

// closure computes the transitive closure of the redirection graph with
// memoized reach sets and active-path cycle detection.
type closure struct {
	col    *Collection
	memo   map[node]*reach
	active map[node]int
	path   []node
}

func newClosure(col *Collection) *closure {
	return &closure{
		col:    col,
		memo:   make(map[node]*reach),
		active: make(map[node]int),
	}
}

// row resolves one top-level redirection row.
func (c *closure) row(key Key) (rowResult, error) {
	r, err := c.resolve(node{owner: key.Instance, ident: key.Property})
	if err != nil {
		return rowResult{}, err
	}

	return rowResult{key: key, sources: r.sources, hops: r.hops}, nil
}

// resolve returns the reach of n.
//
// For a redirection hop n -> (owner, r1..rk) the terminal getters reached from
// every (owner, ri.Ident) are crossed with every rj of the hop: each pair
// yields g ++ rj.Indexes, the terminal indexes first, then the indexes
// accumulated by inner hops, then the hop getter's own.
func (c *closure) resolve(n node) (*reach, error) {
	if r, ok := c.memo[n]; ok {
		return r, nil
	}

	if start, ok := c.active[n]; ok {
		return nil, c.cycleError(start, n)
	}

	direct := c.col.Direct.Lookup(n.owner, n.ident)
	redirect := c.col.Redirections.Lookup(n.owner, n.ident)

	if direct == nil && redirect == nil {
		return nil, c.unresolvedError(n)
	}

	c.active[n] = len(c.path)
	c.path = append(c.path, n)

	defer func() {
		delete(c.active, n)
		c.path = c.path[:len(c.path)-1]
	}()

	out := &reach{sources: Sources{}, hops: Sources{}}
	out.sources.Merge(direct)

	for _, owner := range common.SortedKeys(redirect) {
		hop := redirect[owner]
		out.hops.Add(owner, hop...)

		terminals := Sources{}

		for _, r := range hop {
			inner, err := c.resolve(node{owner: owner, ident: r.Ident})
			if err != nil {
				return nil, err
			}

			terminals.Merge(inner.sources)
			out.hops.Merge(inner.hops)
		}

		for _, r := range hop {
			for _, source := range common.SortedKeys(terminals) {
				for _, g := range terminals[source] {
					out.sources.Add(source, g.WithSuffix(r.Indexes...))
				}
			}
		}
	}

	c.memo[n] = out

	return out, nil
}

func (c *closure) cycleError(start int, n node) error {
	chain := make([]Key, 0, len(c.path)-start+1)
	for _, hop := range c.path[start:] {
		chain = append(chain, hop.key())
	}

	chain = append(chain, n.key())

	return &ResolveError{
		Kind:      ErrCycle,
		Component: n.owner,
		Ident:     n.ident,
		Binding:   c.path[0].key(),
		Chain:     chain,
	}
}

func (c *closure) unresolvedError(n node) error {
	chain := make([]Key, 0, len(c.path)+1)
	for _, hop := range c.path {
		chain = append(chain, hop.key())
	}

	chain = append(chain, n.key())

	err := &ResolveError{
		Kind:      ErrUnresolvedReference,
		Component: n.owner,
		Ident:     n.ident,
		Chain:     slices.Clip(chain),
	}
	if len(c.path) > 0 {
		err.Binding = c.path[0].key()
	}

	return err
}
