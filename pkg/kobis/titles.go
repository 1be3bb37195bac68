package kobis

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/Sumatoshi-tech/boxoffice/pkg/movie"
	"github.com/Sumatoshi-tech/boxoffice/pkg/observability"
)

// Titles fetches the weekly list of the week containing week, then the movie
// detail of every entry and the seven daily lists Monday through Sunday.
//
// Only the weekly list is required. A title whose detail fails keeps a nil
// Detail; a day whose list fails is absent from every title's Daily map.
func (c *Client) Titles(ctx context.Context, week time.Time) (Week, error) {
	list, err := c.WeeklyBoxOffice(ctx, week)
	if err != nil {
		return Week{}, fmt.Errorf("weekly box office: %w", err)
	}

	before := c.CacheStats()

	titles := make([]movie.RawTitle, len(list.Entries))
	for i, entry := range list.Entries {
		titles[i].Entry = entry
	}

	var failures atomic.Int64

	p := pool.New().WithMaxGoroutines(c.cfg.Concurrency)

	for i := range titles {
		p.Go(func() {
			code := titles[i].Entry.MovieCd

			info, infoErr := c.MovieInfo(ctx, code)
			if infoErr != nil {
				failures.Add(1)
				c.logger.WarnContext(ctx, "movie detail unavailable",
					"movie_cd", code, "title", titles[i].Entry.MovieNm, "error", infoErr)

				return
			}

			titles[i].Detail = &info
		})
	}

	p.Wait()

	monday, _ := movie.WeekBounds(week)
	attachDaily(titles, c.dailyLists(ctx, monday))

	after := c.CacheStats()

	c.fetch.RecordFetch(ctx, observability.FetchStats{
		Titles:      len(titles),
		Dropped:     int(failures.Load()),
		CacheHits:   after.Hits - before.Hits,
		CacheMisses: after.Misses - before.Misses,
	})

	c.logger.InfoContext(ctx, "kobis week fetched",
		"show_range", list.ShowRange, "titles", len(titles), "detail_failures", failures.Load())

	return Week{
		ShowRange:      list.ShowRange,
		YearWeek:       list.YearWeek,
		Titles:         titles,
		DetailFailures: int(failures.Load()),
	}, nil
}

// dailyLists fetches the daily lists of the seven days from monday, indexed
// by weekday. A failed day is left nil.
func (c *Client) dailyLists(ctx context.Context, monday time.Time) [movie.DaysPerWeek][]movie.BoxOfficeEntry {
	var lists [movie.DaysPerWeek][]movie.BoxOfficeEntry

	p := pool.New().WithMaxGoroutines(c.cfg.Concurrency)

	for day := range movie.DaysPerWeek {
		p.Go(func() {
			date := monday.AddDate(0, 0, day)

			list, listErr := c.DailyBoxOffice(ctx, date)
			if listErr != nil {
				c.logger.WarnContext(ctx, "daily box office unavailable",
					"date", date.Format(movie.OpenDateLayout), "error", listErr)

				return
			}

			lists[day] = list.Entries
		})
	}

	p.Wait()

	return lists
}

// attachDaily copies each day's attendance onto the titles it lists, matched
// by movie code.
func attachDaily(titles []movie.RawTitle, lists [movie.DaysPerWeek][]movie.BoxOfficeEntry) {
	index := make(map[string]int, len(titles))

	for i, title := range titles {
		if title.Entry.MovieCd != "" {
			index[title.Entry.MovieCd] = i
		}
	}

	for day, entries := range lists {
		for _, entry := range entries {
			i, ok := index[entry.MovieCd]
			if !ok {
				continue
			}

			if titles[i].Daily == nil {
				titles[i].Daily = make(map[int]movie.LooseString, movie.DaysPerWeek)
			}

			titles[i].Daily[day] = entry.AudiCnt
		}
	}
}
