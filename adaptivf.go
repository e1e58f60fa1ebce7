package adaptivf

import (
	"context"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/hupe1980/adaptivf/distance"
	"github.com/hupe1980/adaptivf/internal/kmeans"
	"github.com/hupe1980/adaptivf/internal/location"
	"github.com/hupe1980/adaptivf/internal/partition"
	"github.com/hupe1980/adaptivf/model"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	coarseIterations = 12
	coarseSeed       = 42
	baseIterations   = 10
	baseSeedBase     = 123

	// pointsPerPartition is the build-time target size of a base partition:
	// a coarse cell of g vectors gets at most g/pointsPerPartition partitions.
	pointsPerPartition = 50

	// rngStream selects the PCG stream of the clustering generator.
	rngStream = 0x9e3779b97f4a7c15
)

// Index is an adaptive two-level IVF index.
//
// Vectors are routed to coarse cells and stored in base partitions. Search
// picks the number of partitions to scan per query from a probability model
// over partition centroids, and Maintain splits hot or oversized partitions
// and merges tiny ones.
//
// An Index is not safe for concurrent use. Callers that share an index
// between goroutines must serialize all calls, for example with a
// sync.RWMutex held exclusively around every method (Search updates
// partition hit counters and is therefore a write).
type Index struct {
	cfg     Config
	store   *partition.Store
	locs    *location.Index
	rng     *rand.Rand
	queries uint64

	autoMaintain *rate.Sometimes

	logger  *Logger
	metrics MetricsCollector
}

// New creates an empty index for vectors of dimension dim.
// The index must be built with Build before vectors can be inserted.
func New(dim int, optFns ...Option) (*Index, error) {
	o := applyOptions(dim, optFns)
	if err := o.config.Validate(); err != nil {
		return nil, err
	}

	x := &Index{
		cfg:     o.config,
		store:   partition.NewStore(dim),
		locs:    location.New(0),
		rng:     rand.New(rand.NewPCG(o.config.Seed, rngStream)),
		logger:  o.logger.WithDimension(dim),
		metrics: o.metricsCollector,
	}

	if every := o.config.AutoMaintainEvery; every > 0 {
		x.autoMaintain = &rate.Sometimes{Every: every}
		// Sometimes fires on its first call; consume it so maintenance runs
		// after every n-th search.
		x.autoMaintain.Do(func() {})
	}

	return x, nil
}

// NewFromConfig creates an empty index from a full configuration.
func NewFromConfig(cfg Config, optFns ...Option) (*Index, error) {
	return New(cfg.Dimension, append([]Option{WithConfig(cfg)}, optFns...)...)
}

// Build clusters vectors into coarse cells and base partitions, replacing any
// previous content of the index.
//
// ids may be nil, in which case vector i gets id i. BuildCoarseK and
// BuildBaseK override (and persist) the configured cluster counts. On error
// the previous state of the index is left untouched.
func (x *Index) Build(ctx context.Context, vectors [][]float32, ids []uint64, opts ...BuildOption) error {
	start := time.Now()
	err := x.build(ctx, vectors, ids, opts)
	d := time.Since(start)

	x.metrics.RecordBuild(len(vectors), x.store.Len(), d, err)
	x.logger.LogBuild(len(vectors), x.store.NumCells(), x.store.Len(), d, err)

	return err
}

func (x *Index) build(ctx context.Context, vectors [][]float32, ids []uint64, opts []BuildOption) error {
	cfg := x.cfg
	for _, fn := range opts {
		if fn != nil {
			fn(&cfg)
		}
	}

	n := len(vectors)
	if n == 0 {
		return ErrEmptyInput
	}
	if ids == nil {
		ids = make([]uint64, n)
		for i := range ids {
			ids[i] = uint64(i)
		}
	} else if len(ids) != n {
		return ErrIDCountMismatch
	}

	seen := make(map[uint64]struct{}, n)
	data := make([][]float32, n)
	for i, v := range vectors {
		if err := x.checkVector(v); err != nil {
			return err
		}
		if _, dup := seen[ids[i]]; dup {
			return &ErrDuplicateID{ID: ids[i]}
		}
		seen[ids[i]] = struct{}{}
		data[i] = slices.Clone(v)
	}

	coarse, err := kmeans.Cluster(data, cfg.CoarseK, coarseIterations, coarseSeed, x.rng)
	if err != nil {
		return err
	}

	numCells := len(coarse.Centroids)
	groups := make([][]int, numCells)
	for i, c := range coarse.Assign {
		groups[c] = append(groups[c], i)
	}

	// One generator per cell, drawn in cell order, keeps the result
	// independent of BuildParallelism.
	seeds := make([]uint64, numCells)
	for c := range seeds {
		seeds[c] = x.rng.Uint64()
	}

	cells := make([][]*partition.Partition, numCells)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.BuildParallelism)
	for c, members := range groups {
		if len(members) == 0 {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			parts, err := x.clusterCell(c, members, data, ids, cfg.BaseK, rand.New(rand.NewPCG(seeds[c], rngStream)))
			if err != nil {
				return err
			}
			cells[c] = parts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	store := partition.NewStore(cfg.Dimension)
	locs := location.New(n)
	for c, centroid := range coarse.Centroids {
		store.AddCell(centroid)
		for _, p := range cells[c] {
			h := store.Append(p)
			locs.SetRange(h, p.IDs, 0)
		}
	}

	x.cfg = cfg
	x.store = store
	x.locs = locs
	return nil
}

// clusterCell splits the members of one coarse cell into base partitions.
// Sub-clusters without members are dropped.
func (x *Index) clusterCell(cell int, members []int, data [][]float32, ids []uint64, baseK int, rng *rand.Rand) ([]*partition.Partition, error) {
	group := make([][]float32, len(members))
	for i, m := range members {
		group[i] = data[m]
	}

	kb := min(baseK, max(1, len(members)/pointsPerPartition))
	res, err := kmeans.Cluster(group, kb, baseIterations, baseSeedBase+int64(cell), rng)
	if err != nil {
		return nil, err
	}

	vecs := make([][][]float32, len(res.Centroids))
	pids := make([][]uint64, len(res.Centroids))
	for i, b := range res.Assign {
		vecs[b] = append(vecs[b], group[i])
		pids[b] = append(pids[b], ids[members[i]])
	}

	parts := make([]*partition.Partition, 0, len(vecs))
	for b := range vecs {
		if len(vecs[b]) == 0 {
			continue
		}
		parts = append(parts, partition.New(cell, vecs[b], pids[b], x.cfg.Dimension))
	}
	return parts, nil
}

func (x *Index) checkVector(v []float32) error {
	if len(v) != x.cfg.Dimension {
		return &ErrDimensionMismatch{Expected: x.cfg.Dimension, Actual: len(v)}
	}
	if x.cfg.CheckFinite {
		if i := distance.NonFinite(v); i >= 0 {
			return &ErrNonFiniteValue{Index: i, Value: v[i]}
		}
	}
	return nil
}

// Dim returns the vector dimension.
func (x *Index) Dim() int { return x.cfg.Dimension }

// Config returns the current configuration, including build overrides.
func (x *Index) Config() Config { return x.cfg }

// Len returns the number of stored vectors.
func (x *Index) Len() int { return x.locs.Len() }

// NumPartitions returns the number of base partitions, empty ones included.
func (x *Index) NumPartitions() int { return x.store.Len() }

// NumCells returns the number of coarse cells.
func (x *Index) NumCells() int { return x.store.NumCells() }

// QueryCount returns the number of searches served so far.
func (x *Index) QueryCount() uint64 { return x.queries }

// Contains reports whether id is stored.
func (x *Index) Contains(id uint64) bool { return x.locs.Has(id) }

// Lookup returns the slot that stores id.
func (x *Index) Lookup(id uint64) (model.Location, bool) { return x.locs.Get(id) }

// PartitionSizes returns the size of every base partition in handle order.
func (x *Index) PartitionSizes() []int { return x.store.Sizes() }

// Vector returns a copy of the vector stored under id.
func (x *Index) Vector(id uint64) ([]float32, bool) {
	loc, ok := x.locs.Get(id)
	if !ok {
		return nil, false
	}
	return slices.Clone(x.store.Get(loc.Partition).Vectors[loc.Offset]), true
}

// PartitionMembers returns the ids stored in partition p in slot order, or
// nil for an unknown handle.
func (x *Index) PartitionMembers(p model.PartitionID) []uint64 {
	if int(p) >= x.store.Len() {
		return nil
	}
	return slices.Clone(x.store.Get(p).IDs)
}
