package boxoffice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Sumatoshi-tech/boxoffice/pkg/kobis"
	"github.com/Sumatoshi-tech/boxoffice/pkg/movie"
	"github.com/Sumatoshi-tech/boxoffice/pkg/snapshot"
)

//go:generate mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks

// Source delivers the raw titles of one week. A zero week lets the source
// pick: the latest snapshot, or the current week for a live fetch.
type Source interface {
	Fetch(ctx context.Context, week time.Time) (*snapshot.Snapshot, error)
}

// WeekFetcher is the part of the KOBIS client a LiveSource needs.
type WeekFetcher interface {
	Titles(ctx context.Context, week time.Time) (kobis.Week, error)
}

// SnapshotSource reads weeks from a snapshot store.
type SnapshotSource struct {
	store *snapshot.Store
	path  string
}

// NewSnapshotSource creates a source over store. A non-empty path pins one
// snapshot file, ignoring the requested week.
func NewSnapshotSource(store *snapshot.Store, path string) *SnapshotSource {
	return &SnapshotSource{store: store, path: path}
}

// Fetch loads the pinned snapshot, or the latest one for week.
func (s *SnapshotSource) Fetch(_ context.Context, week time.Time) (*snapshot.Snapshot, error) {
	p := s.path

	if p == "" {
		weekKey := ""
		if !week.IsZero() {
			monday, _ := movie.WeekBounds(week)
			weekKey = monday.Format(movie.OpenDateLayout)
		}

		latest, err := s.store.Latest(weekKey)
		if err != nil {
			return nil, fmt.Errorf("find snapshot: %w", err)
		}

		p = latest
	}

	return s.store.Load(p)
}

// LiveSource fetches weeks from KOBIS and optionally saves each one.
type LiveSource struct {
	fetcher WeekFetcher
	store   *snapshot.Store
	logger  *slog.Logger
	now     func() time.Time
}

// NewLiveSource creates a live source. A nil store skips saving.
func NewLiveSource(fetcher WeekFetcher, store *snapshot.Store, logger *slog.Logger) *LiveSource {
	if logger == nil {
		logger = slog.Default()
	}

	return &LiveSource{
		fetcher: fetcher,
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
}

// Fetch fetches week from KOBIS. A zero week means the previous full week,
// since KOBIS publishes a weekly list only after it ends.
func (s *LiveSource) Fetch(ctx context.Context, week time.Time) (*snapshot.Snapshot, error) {
	fetchedAt := s.now().UTC()

	if week.IsZero() {
		week = fetchedAt.AddDate(0, 0, -movie.DaysPerWeek)
	}

	monday, _ := movie.WeekBounds(week)

	fetched, err := s.fetcher.Titles(ctx, monday)
	if err != nil {
		return nil, fmt.Errorf("fetch week %s: %w", monday.Format(movie.OpenDateLayout), err)
	}

	snap := &snapshot.Snapshot{
		Version:   snapshot.Version,
		RunID:     uuid.NewString(),
		FetchedAt: fetchedAt,
		Week:      monday.Format(movie.OpenDateLayout),
		ShowRange: fetched.ShowRange,
		Titles:    fetched.Titles,
	}

	if s.store == nil {
		return snap, nil
	}

	p, saveErr := s.store.Save(snap)
	if saveErr != nil {
		return nil, fmt.Errorf("save snapshot: %w", saveErr)
	}

	s.logger.InfoContext(ctx, "snapshot saved", "path", p, "snapshot_id", snap.RunID, "titles", len(snap.Titles))

	return snap, nil
}
