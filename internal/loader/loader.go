// Package loader buffers records per kind and writes them in bulk.
package loader

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/osse101/FreeLunch_Go/internal/domain"
	"github.com/osse101/FreeLunch_Go/internal/logger"
	"github.com/osse101/FreeLunch_Go/internal/metrics"
)

// Store is the backing store the loader reads existence from and writes batches to
type Store interface {
	Exists(ctx context.Context, kind domain.Kind, key any) (bool, error)
	// InsertBatch writes recs, all of one kind, as a single atomic unit.
	InsertBatch(ctx context.Context, kind domain.Kind, recs []domain.Record, ignoreConflicts bool) (int64, error)
}

type addOptions struct {
	autoCommit      bool
	force           bool
	ignoreConflicts bool
}

// AddOption tunes a single Add call
type AddOption func(*addOptions)

// WithoutAutoCommit keeps the record buffered even when its kind reaches the chunk size
func WithoutAutoCommit() AddOption {
	return func(o *addOptions) { o.autoCommit = false }
}

// ForceAdd skips the existence check against the store
func ForceAdd() AddOption {
	return func(o *addOptions) { o.force = true }
}

// IgnoreConflicts makes the next flush of this kind drop rows whose key already exists
func IgnoreConflicts() AddOption {
	return func(o *addOptions) { o.ignoreConflicts = true }
}

// snapshotKinds are written per hour and never existence-checked. They stay out of the
// existence cache so hourly volume does not evict catalog keys.
var snapshotKinds = map[domain.Kind]bool{
	domain.KindAuction:        true,
	domain.KindAuctionSummary: true,
}

// Loader is a deduplicating write buffer. Re-adding a persisted record is a no-op,
// which makes every load step safe to re-run. A Loader is not safe for concurrent use.
type Loader struct {
	store     Store
	chunkSize int
	rank      map[domain.Kind]int

	buffers map[domain.Kind][]domain.Record
	pending map[domain.Kind]map[any]struct{}
	ignore  map[domain.Kind]bool
	known   *existenceCache
}

// New creates a loader flushing every chunkSize records per kind
func New(store Store, chunkSize int) *Loader {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	rank := make(map[domain.Kind]int, len(domain.DependencyOrder))
	for i, k := range domain.DependencyOrder {
		rank[k] = i
	}
	return &Loader{
		store:     store,
		chunkSize: chunkSize,
		rank:      rank,
		buffers:   make(map[domain.Kind][]domain.Record),
		pending:   make(map[domain.Kind]map[any]struct{}),
		ignore:    make(map[domain.Kind]bool),
		known:     newExistenceCache(DefaultExistenceSize),
	}
}

// ChunkSize returns the per-kind flush threshold
func (l *Loader) ChunkSize() int {
	return l.chunkSize
}

// Pending returns the number of buffered records of kind
func (l *Loader) Pending(kind domain.Kind) int {
	return len(l.buffers[kind])
}

// Add enqueues rec unless it is already pending or persisted. Every reference of rec
// must be pending or persisted, otherwise Add fails with domain.ErrDependencyOrdering.
func (l *Loader) Add(ctx context.Context, rec domain.Record, opts ...AddOption) error {
	o := addOptions{autoCommit: true}
	for _, opt := range opts {
		opt(&o)
	}

	kind, key := rec.Kind(), rec.PrimaryKey()

	if l.isPending(kind, key) {
		metrics.RecordsSkipped.WithLabelValues(string(kind), metrics.ReasonPending).Inc()
		return nil
	}
	if !o.force {
		exists, err := l.persisted(ctx, kind, key)
		if err != nil {
			return err
		}
		if exists {
			metrics.RecordsSkipped.WithLabelValues(string(kind), metrics.ReasonExists).Inc()
			return nil
		}
	}

	for _, ref := range domain.ReferencesOf(rec) {
		if l.isPending(ref.Kind, ref.Key) {
			continue
		}
		ok, err := l.persisted(ctx, ref.Kind, ref.Key)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s %v %s %s %v", domain.ErrDependencyOrdering,
				kind, key, ErrMsgMissingReference, ref.Kind, ref.Key)
		}
	}

	l.buffers[kind] = append(l.buffers[kind], rec)
	if l.pending[kind] == nil {
		l.pending[kind] = make(map[any]struct{})
	}
	l.pending[kind][key] = struct{}{}
	if o.ignoreConflicts {
		l.ignore[kind] = true
	}

	if o.autoCommit && len(l.buffers[kind]) >= l.chunkSize {
		return l.flushWithDependencies(ctx, kind, map[domain.Kind]bool{})
	}
	return nil
}

// Discard drops the buffered records of kinds without writing them and returns how
// many were dropped
func (l *Loader) Discard(kinds ...domain.Kind) int {
	var n int
	for _, kind := range kinds {
		n += len(l.buffers[kind])
		delete(l.buffers, kind)
		delete(l.pending, kind)
		delete(l.ignore, kind)
	}
	return n
}

// CommitRemaining flushes every non-empty buffer. Kinds named in ordered go first,
// in that order, then the rest by dependency order. A kind is never written before
// kinds its buffered records reference.
func (l *Loader) CommitRemaining(ctx context.Context, ordered ...domain.Kind) error {
	visited := make(map[domain.Kind]bool)
	for _, kind := range ordered {
		if err := l.flushWithDependencies(ctx, kind, visited); err != nil {
			return err
		}
	}
	for _, kind := range l.remainingKinds() {
		if err := l.flushWithDependencies(ctx, kind, visited); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) remainingKinds() []domain.Kind {
	kinds := make([]domain.Kind, 0, len(l.buffers))
	for k, buf := range l.buffers {
		if len(buf) > 0 {
			kinds = append(kinds, k)
		}
	}
	slices.SortFunc(kinds, func(a, b domain.Kind) int {
		ra, aok := l.rank[a]
		rb, bok := l.rank[b]
		switch {
		case aok && bok:
			return ra - rb
		case aok:
			return -1
		case bok:
			return 1
		default:
			if a < b {
				return -1
			}
			if a > b {
				return 1
			}
			return 0
		}
	})
	return kinds
}

// flushWithDependencies writes the parents referenced by kind's buffer before kind itself
func (l *Loader) flushWithDependencies(ctx context.Context, kind domain.Kind, visited map[domain.Kind]bool) error {
	if visited[kind] || len(l.buffers[kind]) == 0 {
		return nil
	}
	visited[kind] = true
	defer delete(visited, kind)

	for _, parent := range l.referencedKinds(kind) {
		if parent == kind {
			continue
		}
		if err := l.flushWithDependencies(ctx, parent, visited); err != nil {
			return err
		}
	}
	return l.flush(ctx, kind)
}

func (l *Loader) referencedKinds(kind domain.Kind) []domain.Kind {
	var kinds []domain.Kind
	for _, rec := range l.buffers[kind] {
		for _, ref := range domain.ReferencesOf(rec) {
			if len(l.buffers[ref.Kind]) > 0 && !slices.Contains(kinds, ref.Kind) {
				kinds = append(kinds, ref.Kind)
			}
		}
	}
	return kinds
}

func (l *Loader) flush(ctx context.Context, kind domain.Kind) error {
	recs := l.buffers[kind]
	if len(recs) == 0 {
		return nil
	}
	ignore := l.ignore[kind]

	delete(l.buffers, kind)
	delete(l.pending, kind)
	delete(l.ignore, kind)

	start := time.Now()
	n, err := l.store.InsertBatch(ctx, kind, recs, ignore)
	metrics.FlushDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("%s %s (%d records): %w", ErrMsgFlushFailed, kind, len(recs), err)
	}

	if !snapshotKinds[kind] {
		for _, rec := range recs {
			l.known.Mark(kind, rec.PrimaryKey())
		}
	}
	metrics.RecordsFlushed.WithLabelValues(string(kind)).Add(float64(n))
	if skipped := int64(len(recs)) - n; skipped > 0 {
		metrics.RecordsSkipped.WithLabelValues(string(kind), metrics.ReasonExists).Add(float64(skipped))
	}
	logger.FromContext(ctx).Debug(LogMsgFlushed, "kind", kind, "records", n, "ignore_conflicts", ignore)
	return nil
}

func (l *Loader) isPending(kind domain.Kind, key any) bool {
	_, ok := l.pending[kind][key]
	return ok
}

func (l *Loader) persisted(ctx context.Context, kind domain.Kind, key any) (bool, error) {
	if l.known.Has(kind, key) {
		return true, nil
	}
	ok, err := l.store.Exists(ctx, kind, key)
	if err != nil {
		return false, fmt.Errorf("%s %s %v: %w", ErrMsgExistsCheckFailed, kind, key, err)
	}
	if ok {
		l.known.Mark(kind, key)
	}
	return ok, nil
}
