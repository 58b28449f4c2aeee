package state

import (
	"fmt"
	"time"
)

// Stream names the three CDC streams whose watermarks this store tracks.
// Genres-as-entities (§4.5.2) shares the genre stream's watermark key.
type Stream string

const (
	StreamFilmWork Stream = "film_work"
	StreamPerson   Stream = "person"
	StreamGenre    Stream = "genre"
)

func (s Stream) key() string {
	return string(s) + "_proceed_date_time"
}

// epoch is the default watermark for a stream that has never committed.
var epoch = time.Unix(0, 0).UTC()

// Watermark returns the stored ISO-8601 timestamp for stream, or the
// epoch if the stream has never committed.
func (s *Store) Watermark(stream Stream) (time.Time, error) {
	raw, ok := s.Get(stream.key())
	if !ok {
		return epoch, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("state: parse watermark %s=%q: %w", stream.key(), raw, err)
	}
	return t, nil
}

// CommitWatermark durably advances stream's watermark to t. Callers
// commit only after the Loader confirms a batch was written (spec.md
// §4.5: "watermark advance is committed only after the Loader confirms
// success").
func (s *Store) CommitWatermark(stream Stream, t time.Time) error {
	return s.Set(stream.key(), t.UTC().Format(time.RFC3339Nano))
}
