package etl

import (
	"context"
	"time"

	"github.com/kinoflow/kinoflow/internal/apierr"
	"github.com/kinoflow/kinoflow/internal/logging"
	"github.com/kinoflow/kinoflow/internal/metrics"
	"github.com/kinoflow/kinoflow/internal/state"
)

// Orchestrator implements C7: a single-threaded round-robin loop over the
// four streams {films-by-self, films-by-genre, films-by-person, genres},
// sleeping an idle interval whenever a tick produces nothing. It
// implements suture.Service directly rather than wrapping an existing
// Start/Stop component, since there is no pre-existing loop to adapt.
type Orchestrator struct {
	producer     *Producer
	loader       *Loader
	store        *state.Store
	idleInterval time.Duration
}

// NewOrchestrator builds an Orchestrator driving producer/loader/store,
// sleeping idleInterval after any tick whose streams were all empty.
func NewOrchestrator(producer *Producer, loader *Loader, store *state.Store, idleInterval time.Duration) *Orchestrator {
	return &Orchestrator{producer: producer, loader: loader, store: store, idleInterval: idleInterval}
}

// String implements fmt.Stringer for suture's logging.
func (o *Orchestrator) String() string { return "etl-orchestrator" }

// Serve implements suture.Service: it loops ticks until ctx is canceled.
// Cancellation is checked between streams and between tick iterations; a
// running query or bulk write is not interrupted mid-flight (spec.md §9).
func (o *Orchestrator) Serve(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		total, err := o.tick(ctx)
		if err != nil {
			return err
		}

		if total == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(o.idleInterval):
			}
		}
	}
}

// streamNames fixes the tick order: films-by-self, films-by-genre,
// films-by-person, genres-as-entities (spec.md §4.7).
var streamNames = []string{"film_self", "film_genre", "film_person", "genre"}

// tick runs every stream once, returning the total number of documents
// loaded across all four (spec.md §4.7).
func (o *Orchestrator) tick(ctx context.Context) (int, error) {
	total := 0

	for _, stream := range streamNames {
		if ctx.Err() != nil {
			return total, ctx.Err()
		}

		n, err := o.runStream(ctx, stream)
		if err != nil {
			return total, err
		}
		total += n
	}

	return total, nil
}

// runStream drives one stream through Idle -> Fetching -> Loading ->
// Committed (spec.md §4.7). A fetch or load failure surfaces via the
// returned error; the orchestrator's supervisor restarts on failure, and
// an uncommitted watermark makes the next run re-fetch the same rows
// (safe: loading is idempotent on document id).
func (o *Orchestrator) runStream(ctx context.Context, stream string) (int, error) {
	start := time.Now()

	var (
		n         int
		watermark time.Time
		commit    func() error
		err       error
	)

	switch stream {
	case "film_self":
		n, watermark, commit, err = processBatch(ctx, o.store, o.producer.FilmsBySelf, o.loader.LoadFilms)
	case "film_genre":
		n, watermark, commit, err = processBatch(ctx, o.store, o.producer.FilmsByGenre, o.loader.LoadFilms)
	case "film_person":
		n, watermark, commit, err = processBatch(ctx, o.store, o.producer.FilmsByPerson, o.loader.LoadFilms)
	case "genre":
		n, watermark, commit, err = processBatch(ctx, o.store, o.producer.Genres, o.loader.LoadGenres)
	}

	if err != nil {
		metrics.RecordETLError(stream, apierr.As(err).String())
		logging.CtxErr(ctx, err).Str("stream", stream).Msg("etl stream failed")
		return 0, err
	}

	metrics.RecordETLTick(stream, time.Since(start), n)

	if n == 0 {
		return 0, nil
	}

	if err := commit(); err != nil {
		metrics.RecordETLError(stream, "commit")
		return 0, err
	}
	metrics.SetETLWatermark(stream, float64(watermark.Unix()))

	return n, nil
}

// processBatch is the shared Fetching -> Loading shape for every stream,
// regardless of document type: fetch a batch, and if non-empty, load it.
// The watermark commit is handed back as a closure so the caller can
// emit metrics/logs before committing (spec.md §4.5 step 7: "commit only
// after the Loader confirms success").
func processBatch[T any](
	ctx context.Context,
	store *state.Store,
	fetch func(ctx context.Context) (Batch[T], error),
	load func(ctx context.Context, items []T) (int, error),
) (count int, watermark time.Time, commit func() error, err error) {
	batch, err := fetch(ctx)
	if err != nil {
		return 0, time.Time{}, nil, err
	}
	if batch.IsEmpty() {
		return 0, time.Time{}, nil, nil
	}

	n, err := load(ctx, batch.Items)
	if err != nil {
		return 0, time.Time{}, nil, err
	}

	stream := batch.Stream
	wm := batch.Watermark
	commit = func() error {
		return store.CommitWatermark(stream, wm)
	}
	return n, wm, commit, nil
}
