// Package stats keeps running totals of requests, tokens, and money
// saved, with daily and monthly rollups persisted as JSON.
package stats

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	dayFormat   = "2006-01-02"
	monthFormat = "2006-01"
)

// Totals are the all-time counters.
type Totals struct {
	Requests     int     `json:"requests"`
	TokensInput  int     `json:"tokens_input"`
	TokensOutput int     `json:"tokens_output"`
	TokensSaved  int     `json:"tokens_saved"`
	CostWithout  float64 `json:"cost_without"`
	CostWith     float64 `json:"cost_with"`
	CostSaved    float64 `json:"cost_saved"`
}

// SavingsPercent is cost saved as a share of the unoptimized cost.
func (t Totals) SavingsPercent() float64 {
	if t.CostWithout <= 0 {
		return 0
	}
	return t.CostSaved / t.CostWithout * 100
}

// Daily is one day's rollup, including per-strategy request counts.
type Daily struct {
	Requests     int            `json:"requests"`
	TokensInput  int            `json:"tokens_input"`
	TokensOutput int            `json:"tokens_output"`
	TokensSaved  int            `json:"tokens_saved"`
	CostSaved    float64        `json:"cost_saved"`
	Strategies   map[string]int `json:"strategies"`
}

// Monthly is one month's rollup.
type Monthly struct {
	Requests  int     `json:"requests"`
	CostSaved float64 `json:"cost_saved"`
}

// PeriodSummary aggregates a sliding window of days.
type PeriodSummary struct {
	Days         int
	Requests     int
	CostSaved    float64
	AverageDaily float64
}

// Request is one recorded API call.
type Request struct {
	TokensInput  int
	TokensOutput int
	TokensSaved  int
	CostWithout  float64
	CostWith     float64
	Strategy     string
}

type fileFormat struct {
	Version string              `json:"version"`
	Total   Totals              `json:"total"`
	Daily   map[string]*Daily   `json:"daily"`
	Monthly map[string]*Monthly `json:"monthly"`
}

// Tracker records usage to a JSON file. Safe for concurrent use.
type Tracker struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
	data fileFormat
}

// Option adjusts Tracker construction.
type Option func(*Tracker)

func WithClock(now func() time.Time) Option { return func(t *Tracker) { t.now = now } }

// New opens or creates the stats file at path. A corrupt file is
// replaced with empty counters.
func New(path string, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		path: path,
		now:  time.Now,
		data: fileFormat{
			Version: "1",
			Daily:   make(map[string]*Daily),
			Monthly: make(map[string]*Monthly),
		},
	}
	for _, opt := range opts {
		opt(t)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f fileFormat
		if jsonErr := json.Unmarshal(raw, &f); jsonErr != nil {
			log.Printf("warning: stats file %s is corrupt, starting fresh: %v", path, jsonErr)
		} else {
			if f.Daily == nil {
				f.Daily = make(map[string]*Daily)
			}
			if f.Monthly == nil {
				f.Monthly = make(map[string]*Monthly)
			}
			t.data = f
		}
	}
	return t, nil
}

// Record adds one request to the totals and the current day and month.
func (t *Tracker) Record(r Request) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	costSaved := r.CostWithout - r.CostWith

	total := &t.data.Total
	total.Requests++
	total.TokensInput += r.TokensInput
	total.TokensOutput += r.TokensOutput
	total.TokensSaved += r.TokensSaved
	total.CostWithout += r.CostWithout
	total.CostWith += r.CostWith
	total.CostSaved += costSaved

	dayKey := now.Format(dayFormat)
	day, ok := t.data.Daily[dayKey]
	if !ok {
		day = &Daily{Strategies: make(map[string]int)}
		t.data.Daily[dayKey] = day
	}
	day.Requests++
	day.TokensInput += r.TokensInput
	day.TokensOutput += r.TokensOutput
	day.TokensSaved += r.TokensSaved
	day.CostSaved += costSaved
	if r.Strategy != "" {
		if day.Strategies == nil {
			day.Strategies = make(map[string]int)
		}
		day.Strategies[r.Strategy]++
	}

	monthKey := now.Format(monthFormat)
	month, ok := t.data.Monthly[monthKey]
	if !ok {
		month = &Monthly{}
		t.data.Monthly[monthKey] = month
	}
	month.Requests++
	month.CostSaved += costSaved

	t.save()
}

// Total returns the all-time counters.
func (t *Tracker) Total() Totals {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.data.Total
}

// Today returns the rollup for the current day.
func (t *Tracker) Today() Daily {
	t.mu.Lock()
	defer t.mu.Unlock()

	if day, ok := t.data.Daily[t.now().Format(dayFormat)]; ok {
		return *day
	}
	return Daily{}
}

// ThisMonth returns the rollup for the current month.
func (t *Tracker) ThisMonth() Monthly {
	t.mu.Lock()
	defer t.mu.Unlock()

	if month, ok := t.data.Monthly[t.now().Format(monthFormat)]; ok {
		return *month
	}
	return Monthly{}
}

// LastDays aggregates the most recent n days, today included.
func (t *Tracker) LastDays(n int) PeriodSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	summary := PeriodSummary{Days: n}
	now := t.now()
	for i := 0; i < n; i++ {
		key := now.AddDate(0, 0, -i).Format(dayFormat)
		if day, ok := t.data.Daily[key]; ok {
			summary.Requests += day.Requests
			summary.CostSaved += day.CostSaved
		}
	}
	if n > 0 {
		summary.AverageDaily = summary.CostSaved / float64(n)
	}
	return summary
}

func (t *Tracker) save() {
	raw, err := json.MarshalIndent(t.data, "", "  ")
	if err != nil {
		log.Printf("warning: failed to encode stats: %v", err)
		return
	}
	if err := os.WriteFile(t.path, raw, 0o644); err != nil {
		log.Printf("warning: failed to save stats to %s: %v", t.path, err)
	}
}
