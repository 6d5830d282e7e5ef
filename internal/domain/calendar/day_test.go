package calendar_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okodanev/deskhub/internal/domain/calendar"
	"github.com/okodanev/deskhub/internal/domain/errs"
)

func TestDayOf(t *testing.T) {
	t.Run("strips time of day", func(t *testing.T) {
		morning := time.Date(2025, time.June, 1, 8, 15, 0, 0, time.Local)
		evening := time.Date(2025, time.June, 1, 23, 59, 59, 0, time.Local)

		assert.Equal(t, calendar.DayOf(morning), calendar.DayOf(evening))
	})

	t.Run("different days are not equal", func(t *testing.T) {
		a := calendar.NewDay(2025, time.June, 1)
		b := calendar.NewDay(2025, time.June, 2)

		assert.NotEqual(t, a, b)
	})
}

func TestNormalizeIdempotence(t *testing.T) {
	days := []calendar.Day{
		calendar.NewDay(2025, time.June, 1),
		calendar.DayOf(time.Date(2024, time.February, 29, 13, 37, 0, 0, time.Local)),
		calendar.Today(),
	}

	for _, d := range days {
		assert.Equal(t, calendar.Normalize(d), calendar.Normalize(calendar.Normalize(d)))
	}
}

func TestParseDay(t *testing.T) {
	t.Run("plain date", func(t *testing.T) {
		d, err := calendar.ParseDay("2025-06-01")

		require.NoError(t, err)
		assert.Equal(t, 2025, d.Year())
		assert.Equal(t, time.June, d.Month())
		assert.Equal(t, 1, d.DayOfMonth())
	})

	t.Run("timestamp is truncated", func(t *testing.T) {
		d, err := calendar.ParseDay("2025-06-01T14:30:00")

		require.NoError(t, err)
		assert.Equal(t, calendar.NewDay(2025, time.June, 1), d)
	})

	t.Run("empty string", func(t *testing.T) {
		_, err := calendar.ParseDay("")
		require.ErrorIs(t, err, errs.ErrInvalidInput)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := calendar.ParseDay("not-a-date")
		require.ErrorIs(t, err, errs.ErrInvalidInput)
	})
}

func TestSameDay(t *testing.T) {
	t.Run("symmetric over mixed inputs", func(t *testing.T) {
		inputs := []any{
			"2025-06-01",
			"2025-06-01T09:00:00",
			time.Date(2025, time.June, 1, 18, 0, 0, 0, time.Local),
			calendar.NewDay(2025, time.June, 1),
		}

		for _, a := range inputs {
			for _, b := range inputs {
				assert.True(t, calendar.SameDay(a, b), "SameDay(%v, %v)", a, b)
				assert.Equal(t, calendar.SameDay(a, b), calendar.SameDay(b, a))
			}
		}
	})

	t.Run("different days", func(t *testing.T) {
		assert.False(t, calendar.SameDay("2025-06-01", "2025-06-02"))
	})

	t.Run("unparseable never matches", func(t *testing.T) {
		assert.False(t, calendar.SameDay("garbage", "garbage"))
		assert.False(t, calendar.SameDay(nil, "2025-06-01"))
		assert.False(t, calendar.SameDay("2025-06-01", 42))
	})
}

func TestDayJSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		d := calendar.NewDay(2025, time.June, 1)

		data, err := json.Marshal(d)
		require.NoError(t, err)
		assert.JSONEq(t, `"2025-06-01"`, string(data))

		var decoded calendar.Day
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, d, decoded)
	})

	t.Run("works as map key", func(t *testing.T) {
		counts := map[calendar.Day]int{
			calendar.NewDay(2025, time.June, 1): 2,
		}

		data, err := json.Marshal(counts)
		require.NoError(t, err)
		assert.JSONEq(t, `{"2025-06-01": 2}`, string(data))
	})
}

func TestAddDays(t *testing.T) {
	d := calendar.NewDay(2025, time.June, 30)

	assert.Equal(t, calendar.NewDay(2025, time.July, 1), d.AddDays(1))
	assert.Equal(t, calendar.NewDay(2025, time.June, 29), d.AddDays(-1))
}
