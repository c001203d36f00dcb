package stats

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRecordAndTotals(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	tr, err := New(filepath.Join(t.TempDir(), "stats.json"), WithClock(fixedClock(now)))
	require.NoError(t, err)

	tr.Record(Request{
		TokensInput:  40,
		TokensOutput: 120,
		TokensSaved:  80,
		CostWithout:  0.001,
		CostWith:     0.0004,
		Strategy:     "pro",
	})
	tr.Record(Request{
		TokensInput:  10,
		TokensOutput: 50,
		TokensSaved:  5,
		CostWithout:  0.0002,
		CostWith:     0.0001,
		Strategy:     "starter",
	})

	total := tr.Total()
	assert.Equal(t, 2, total.Requests)
	assert.Equal(t, 50, total.TokensInput)
	assert.Equal(t, 170, total.TokensOutput)
	assert.Equal(t, 85, total.TokensSaved)
	assert.InDelta(t, 0.0007, total.CostSaved, 1e-12)
	assert.InDelta(t, 0.0007/0.0012*100, total.SavingsPercent(), 0.001)

	today := tr.Today()
	assert.Equal(t, 2, today.Requests)
	assert.Equal(t, map[string]int{"pro": 1, "starter": 1}, today.Strategies)

	month := tr.ThisMonth()
	assert.Equal(t, 2, month.Requests)
	assert.InDelta(t, 0.0007, month.CostSaved, 1e-12)
}

func TestEmptyPeriods(t *testing.T) {
	tr, err := New(filepath.Join(t.TempDir(), "stats.json"))
	require.NoError(t, err)

	assert.Zero(t, tr.Today().Requests)
	assert.Zero(t, tr.ThisMonth().Requests)
	assert.Zero(t, tr.Total().SavingsPercent())
}

func TestLastDaysWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)

	day := base
	clock := &day
	tr, err := New(path, WithClock(func() time.Time { return *clock }))
	require.NoError(t, err)

	// One request per day over ten days.
	for i := 0; i < 10; i++ {
		d := base.AddDate(0, 0, i)
		clock = &d
		tr.Record(Request{CostWithout: 0.002, CostWith: 0.001})
	}

	last := base.AddDate(0, 0, 9)
	clock = &last

	week := tr.LastDays(7)
	assert.Equal(t, 7, week.Requests)
	assert.InDelta(t, 0.007, week.CostSaved, 1e-12)
	assert.InDelta(t, 0.001, week.AverageDaily, 1e-12)

	all := tr.LastDays(30)
	assert.Equal(t, 10, all.Requests)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")

	first, err := New(path)
	require.NoError(t, err)
	first.Record(Request{TokensInput: 10, TokensOutput: 20, CostWithout: 0.01, CostWith: 0.005})

	second, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Total().Requests)
	assert.Equal(t, 10, second.Total().TokensInput)
}

func TestCorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0o644))

	tr, err := New(path)
	require.NoError(t, err)
	assert.Zero(t, tr.Total().Requests)
}
