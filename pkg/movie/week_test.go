package movie_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/boxoffice/pkg/movie"
)

func TestWeekBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		day  string
	}{
		{"monday", "20240101"},
		{"wednesday", "20240103"},
		{"sunday", "20240107"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			day, err := movie.ParseDate(tt.day)
			require.NoError(t, err)

			monday, sunday := movie.WeekBounds(day)
			assert.Equal(t, "20240101", monday.Format(movie.OpenDateLayout))
			assert.Equal(t, "20240107", sunday.Format(movie.OpenDateLayout))
			assert.Equal(t, time.Monday, monday.Weekday())
			assert.Equal(t, time.Sunday, sunday.Weekday())
		})
	}
}
