package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"gaia/internal/diag"
	"gaia/internal/project"
	"gaia/internal/sema"
	"gaia/internal/types"
)

// Options tunes one Check run.
type Options struct {
	// Jobs caps concurrent item checks; zero means one per CPU.
	Jobs int
	// MaxIterations caps per-item fixpoint loops; zero applies the
	// solver defaults.
	MaxIterations int
	// MaxDiagnostics caps the merged bag; zero applies the bag default.
	MaxDiagnostics int
	// Cache, when set, skips items whose spec digest has a stored
	// clean solution.
	Cache *Cache
}

// ItemReport is the per-item outcome in item input order.
type ItemReport struct {
	Name      string
	Bindings  []CacheBinding
	ExprTypes []string
	Failed    bool
	Cached    bool
}

// Report is the outcome of one Check run: per-item results plus one
// merged, sorted diagnostic bag.
type Report struct {
	Bag   *diag.Bag
	Items []ItemReport
}

// HasErrors reports whether any item failed.
func (r *Report) HasErrors() bool {
	return r.Bag.HasErrors()
}

// Check analyzes every item, in parallel at item granularity. Each
// worker owns a private interner and solver, so items never contend;
// diagnostics merge in input order to keep output deterministic.
// Malformed item specs abort the whole run, semantic errors do not.
func Check(ctx context.Context, items []ItemSpec, opts Options) (*Report, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	type outcome struct {
		report ItemReport
		bag    *diag.Bag
	}
	outcomes := make([]outcome, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(items), 1)))
	for i := range items {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			spec := &items[i]
			out := &outcomes[i]
			out.report.Name = spec.Name

			var key project.Digest
			if opts.Cache != nil {
				digest, err := itemDigest(spec)
				if err != nil {
					return err
				}
				key = digest
				var payload CachePayload
				if ok, err := opts.Cache.Get(digest, &payload); err != nil {
					return err
				} else if ok {
					out.report.Bindings = payload.Bindings
					out.report.ExprTypes = payload.ExprTypes
					out.report.Cached = true
					return nil
				}
			}

			in := types.NewInterner(nil)
			item, err := buildItem(spec, in)
			if err != nil {
				return err
			}
			bag := diag.NewBag(opts.MaxDiagnostics)
			res := sema.CheckItem(item, sema.Options{
				Types:         in,
				Reporter:      diag.NewDedupReporter(&diag.BagReporter{Bag: bag}),
				MaxIterations: opts.MaxIterations,
			})
			out.bag = bag
			if res.Err != nil {
				out.report.Failed = true
				return nil
			}

			for _, name := range res.Solution.Names() {
				ty, _ := res.Solution.Lookup(name)
				out.report.Bindings = append(out.report.Bindings, CacheBinding{
					Name: name,
					Type: in.String(ty),
				})
			}
			for _, ty := range res.ExprTypes {
				out.report.ExprTypes = append(out.report.ExprTypes, in.String(ty))
			}

			if opts.Cache != nil {
				payload := &CachePayload{
					Schema:    cacheSchemaVersion,
					Item:      spec.Name,
					Bindings:  out.report.Bindings,
					ExprTypes: out.report.ExprTypes,
				}
				if err := opts.Cache.Put(key, payload); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Bag: diag.NewBag(opts.MaxDiagnostics)}
	for i := range outcomes {
		report.Items = append(report.Items, outcomes[i].report)
		if outcomes[i].bag != nil {
			report.Bag.Merge(outcomes[i].report.Name, outcomes[i].bag)
		}
	}
	report.Bag.Sort()
	return report, nil
}
