package algorithms

import (
	"context"
	"math/rand/v2"
	"slices"

	"github.com/dd0wney/cluso-resilience/pkg/parallel"
)

// Sampler is the randomness a sweep draws from. *rand.Rand satisfies it.
type Sampler interface {
	IntN(n int) int
}

// NewSampler returns a deterministic PCG-backed sampler for seed
func NewSampler(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SampleWithoutReplacement draws k distinct items from pool with a partial
// Fisher-Yates shuffle of a copy. pool is not modified.
func SampleWithoutReplacement[T any](rng Sampler, pool []T, k int) []T {
	if k <= 0 {
		return []T{}
	}
	k = min(k, len(pool))
	work := slices.Clone(pool)
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(work)-i)
		work[i], work[j] = work[j], work[i]
	}
	return work[:k:k]
}

// MultiRemovalTrial is one simultaneous removal of several nodes
type MultiRemovalTrial struct {
	Removed              []uint64 `json:"removed"`
	Components           int      `json:"components"`
	LargestComponentSize int      `json:"largest_component_size"`
}

// MultiRemovalStats aggregates the trials of one multi-node sweep
type MultiRemovalStats struct {
	Trials     int                 `json:"trials"`
	SampleSize int                 `json:"sample_size"`
	Mean       float64             `json:"mean_components"`
	Min        int                 `json:"min_components"`
	Max        int                 `json:"max_components"`
	Results    []MultiRemovalTrial `json:"results,omitempty"`
}

// Counts returns the component count of every trial in order
func (s *MultiRemovalStats) Counts() []int {
	counts := make([]int, len(s.Results))
	for i, r := range s.Results {
		counts[i] = r.Components
	}
	return counts
}

// validateMultiSweep checks trial and sample parameters against the
// candidate list
func validateMultiSweep(candidates []uint64, trials, k int) error {
	if trials < 0 {
		return NewError("MultiNodeSweep").Context("trials=%d", trials).Cause(ErrInvalidSampleSize).Err()
	}
	if k < 0 {
		return NewError("MultiNodeSweep").Context("k=%d", k).Cause(ErrInvalidSampleSize).Err()
	}
	if k > len(candidates) {
		return NewError("MultiNodeSweep").
			Element("articulation points").
			Context("need %d, have %d", k, len(candidates)).
			Cause(ErrInsufficientElements).
			Err()
	}
	return nil
}

// drawTrials samples every trial up front so results depend only on the seed,
// never on worker scheduling
func drawTrials(rng Sampler, candidates []uint64, trials, k int) [][]uint64 {
	draws := make([][]uint64, trials)
	for i := range draws {
		draws[i] = SampleWithoutReplacement(rng, candidates, k)
	}
	return draws
}

// MultiNodeSweep runs trials independent removals of k distinct candidates
// each, sequentially. Analyzer.MultiNodeSweep is the parallel equivalent.
func MultiNodeSweep(ctx context.Context, sim *Simulator, candidates []uint64, trials, k int, rng Sampler) (*MultiRemovalStats, error) {
	if err := validateMultiSweep(candidates, trials, k); err != nil {
		return nil, err
	}

	draws := drawTrials(rng, candidates, trials, k)
	results := make([]MultiRemovalTrial, len(draws))
	sc := sim.newScratch()
	for i, removed := range draws {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results[i] = runTrial(sim, sc, removed)
	}
	return aggregateTrials(k, results), nil
}

// multiNodeSweepParallel evaluates pre-drawn trials across pool
func multiNodeSweepParallel(ctx context.Context, pool *parallel.WorkerPool, sim *Simulator, draws [][]uint64, k int) (*MultiRemovalStats, error) {
	results := make([]MultiRemovalTrial, len(draws))
	err := parallel.ForEachShard(ctx, pool, len(draws), func(ctx context.Context, _ int, r parallel.Range) error {
		sc := sim.newScratch()
		for i := r.Start; i < r.End; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = runTrial(sim, sc, draws[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return aggregateTrials(k, results), nil
}

func runTrial(sim *Simulator, sc *simScratch, removed []uint64) MultiRemovalTrial {
	stats := sim.multiNodeRemoval(sc, removed)
	return MultiRemovalTrial{
		Removed:              removed,
		Components:           stats.Count,
		LargestComponentSize: stats.LargestSize,
	}
}

func aggregateTrials(k int, results []MultiRemovalTrial) *MultiRemovalStats {
	stats := &MultiRemovalStats{
		Trials:     len(results),
		SampleSize: k,
		Results:    results,
	}
	if len(results) == 0 {
		return stats
	}

	stats.Min = results[0].Components
	stats.Max = results[0].Components
	total := 0
	for _, r := range results {
		total += r.Components
		stats.Min = min(stats.Min, r.Components)
		stats.Max = max(stats.Max, r.Components)
	}
	stats.Mean = float64(total) / float64(len(results))
	return stats
}
