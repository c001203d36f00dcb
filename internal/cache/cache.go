// Package cache stores completion responses keyed by request content,
// with TTL expiry and LRU eviction. Identical questions within the TTL
// window cost nothing.
package cache

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/tokenfold/tokenfold/internal/errors"
)

// Defaults match the shipped configuration.
const (
	DefaultTTL           = 24 * time.Hour
	DefaultMaxSize       = 1000
	DefaultSweepInterval = 100
	queryPrefixLen       = 200
)

// Entry is one cached response with its bookkeeping.
type Entry struct {
	Response    openai.ChatCompletionResponse `json:"response"`
	Query       string                        `json:"query"`
	CachedAt    time.Time                     `json:"cached_at"`
	ExpiresAt   time.Time                     `json:"expires_at"`
	CostSaved   float64                       `json:"cost_saved"`
	AccessCount int                           `json:"access_count"`
}

// Statistics are the lifetime counters, persisted alongside entries.
type Statistics struct {
	Hits           int     `json:"hits"`
	Misses         int     `json:"misses"`
	Saves          int     `json:"saves"`
	Evictions      int     `json:"evictions"`
	TotalCostSaved float64 `json:"total_cost_saved"`
}

// TotalRequests is hits plus misses.
func (s Statistics) TotalRequests() int { return s.Hits + s.Misses }

// HitRate is the percentage of lookups served from cache.
func (s Statistics) HitRate() float64 {
	total := s.TotalRequests()
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Info is a point-in-time snapshot of cache contents.
type Info struct {
	TotalEntries   int
	ActiveEntries  int
	ExpiredEntries int
	MaxSize        int
	TTL            time.Duration
	SweepInterval  int
	OldestEntry    time.Time
	NewestEntry    time.Time
}

// Store is a persistent response cache. Safe for concurrent use.
type Store struct {
	mu            sync.Mutex
	path          string
	ttl           time.Duration
	maxSize       int
	sweepInterval int
	opCount       int
	now           func() time.Time

	order   *list.List               // front = LRU, back = MRU
	index   map[string]*list.Element // key -> element holding *node
	entries map[string]*Entry
	stats   Statistics
}

type node struct{ key string }

// Option adjusts Store construction.
type Option func(*Store)

func WithTTL(ttl time.Duration) Option { return func(s *Store) { s.ttl = ttl } }

func WithMaxSize(n int) Option { return func(s *Store) { s.maxSize = n } }

func WithSweepInterval(n int) Option { return func(s *Store) { s.sweepInterval = n } }

func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// New opens the cache at path, creating parent directories as needed.
// A corrupt or unreadable file is replaced with an empty cache rather
// than failing the caller. Expired entries are purged on load.
func New(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:          path,
		ttl:           DefaultTTL,
		maxSize:       DefaultMaxSize,
		sweepInterval: DefaultSweepInterval,
		now:           time.Now,
		order:         list.New(),
		index:         make(map[string]*list.Element),
		entries:       make(map[string]*Entry),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.CacheUnavailable(path, err)
	}

	s.load()
	s.purgeExpiredLocked()
	return s, nil
}

// Key derives the cache key for a request. Only the fields that change
// the answer participate: model, messages, temperature, max tokens.
func Key(req openai.ChatCompletionRequest) string {
	type keyInput struct {
		Model       string                         `json:"model"`
		Messages    []openai.ChatCompletionMessage `json:"messages"`
		Temperature float32                        `json:"temperature"`
		MaxTokens   int                            `json:"max_tokens"`
	}
	raw, _ := json.Marshal(keyInput{
		Model:       req.Model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Get returns the cached response for req, if present and fresh. A hit
// promotes the entry to most recently used and credits its saved cost.
func (s *Store) Get(req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.autoSweepLocked()

	key := Key(req)
	entry, ok := s.entries[key]
	if !ok {
		s.stats.Misses++
		return openai.ChatCompletionResponse{}, false
	}

	if s.now().After(entry.ExpiresAt) {
		s.removeLocked(key)
		s.stats.Misses++
		s.saveLocked()
		return openai.ChatCompletionResponse{}, false
	}

	s.order.MoveToBack(s.index[key])
	entry.AccessCount++
	s.stats.Hits++
	s.stats.TotalCostSaved += entry.CostSaved
	s.saveLocked()
	return entry.Response, true
}

// Set stores a response for req. costSaved is what a future hit on
// this entry will be worth.
func (s *Store) Set(req openai.ChatCompletionRequest, resp openai.ChatCompletionResponse, costSaved float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.autoSweepLocked()

	key := Key(req)
	now := s.now()
	entry := &Entry{
		Response:  resp,
		Query:     userQuery(req.Messages),
		CachedAt:  now,
		ExpiresAt: now.Add(s.ttl),
		CostSaved: costSaved,
	}

	if el, ok := s.index[key]; ok {
		s.order.MoveToBack(el)
	} else {
		s.index[key] = s.order.PushBack(&node{key: key})
	}
	s.entries[key] = entry
	s.stats.Saves++

	// LRU eviction. The entry just written sits at the back, so it is
	// never the one removed.
	for s.order.Len() > s.maxSize {
		front := s.order.Front()
		s.removeLocked(front.Value.(*node).key)
		s.stats.Evictions++
	}

	s.saveLocked()
}

// Clear drops every entry and reports how many were removed.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.entries)
	s.order.Init()
	s.index = make(map[string]*list.Element)
	s.entries = make(map[string]*Entry)
	s.saveLocked()
	return n
}

// ClearByPattern removes entries whose stored query matches pattern,
// case-insensitively.
func (s *Store) ClearByPattern(pattern string) (int, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return 0, errors.InvalidPattern(pattern, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []string
	for key, entry := range s.entries {
		if re.MatchString(entry.Query) {
			removed = append(removed, key)
		}
	}
	for _, key := range removed {
		s.removeLocked(key)
	}
	if len(removed) > 0 {
		s.saveLocked()
	}
	return len(removed), nil
}

// ClearExpired removes entries past their TTL.
func (s *Store) ClearExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.purgeExpiredLocked()
}

// ClearOlderThan removes entries cached more than age ago, fresh or not.
func (s *Store) ClearOlderThan(age time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-age)
	var removed []string
	for key, entry := range s.entries {
		if entry.CachedAt.Before(cutoff) {
			removed = append(removed, key)
		}
	}
	for _, key := range removed {
		s.removeLocked(key)
	}
	if len(removed) > 0 {
		s.saveLocked()
	}
	return len(removed)
}

// Len reports the number of stored entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Statistics returns the lifetime counters.
func (s *Store) Statistics() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Info snapshots the cache contents.
func (s *Store) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := Info{
		TotalEntries:  len(s.entries),
		MaxSize:       s.maxSize,
		TTL:           s.ttl,
		SweepInterval: s.sweepInterval,
	}
	now := s.now()
	for _, entry := range s.entries {
		if now.After(entry.ExpiresAt) {
			info.ExpiredEntries++
		}
		if info.OldestEntry.IsZero() || entry.CachedAt.Before(info.OldestEntry) {
			info.OldestEntry = entry.CachedAt
		}
		if entry.CachedAt.After(info.NewestEntry) {
			info.NewestEntry = entry.CachedAt
		}
	}
	info.ActiveEntries = info.TotalEntries - info.ExpiredEntries
	return info
}

func userQuery(messages []openai.ChatCompletionMessage) string {
	var parts []string
	for _, m := range messages {
		if m.Role == openai.ChatMessageRoleUser && m.Content != "" {
			parts = append(parts, m.Content)
		}
	}
	q := strings.Join(parts, " ")
	runes := []rune(q)
	if len(runes) > queryPrefixLen {
		return string(runes[:queryPrefixLen])
	}
	return q
}

func (s *Store) removeLocked(key string) {
	if el, ok := s.index[key]; ok {
		s.order.Remove(el)
		delete(s.index, key)
	}
	delete(s.entries, key)
}

func (s *Store) purgeExpiredLocked() int {
	now := s.now()
	var expired []string
	for key, entry := range s.entries {
		if now.After(entry.ExpiresAt) {
			expired = append(expired, key)
		}
	}
	for _, key := range expired {
		s.removeLocked(key)
	}
	if len(expired) > 0 {
		s.saveLocked()
	}
	return len(expired)
}

func (s *Store) autoSweepLocked() {
	s.opCount++
	if s.opCount >= s.sweepInterval {
		s.purgeExpiredLocked()
		s.opCount = 0
	}
}

// fileFormat is the on-disk layout. The order slice preserves LRU
// position across restarts; map iteration alone cannot.
type fileFormat struct {
	Version int               `json:"version"`
	Order   []string          `json:"order"`
	Entries map[string]*Entry `json:"entries"`
	Stats   Statistics        `json:"stats"`
	Config  fileConfig        `json:"config"`
}

type fileConfig struct {
	TTLHours int `json:"ttl_hours"`
	MaxSize  int `json:"max_size"`
}

func (s *Store) load() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var f fileFormat
	if err := json.Unmarshal(raw, &f); err != nil {
		log.Printf("warning: cache file %s is corrupt, starting fresh: %v", s.path, err)
		return
	}

	s.stats = f.Stats
	for _, key := range f.Order {
		entry, ok := f.Entries[key]
		if !ok {
			continue
		}
		s.entries[key] = entry
		s.index[key] = s.order.PushBack(&node{key: key})
	}
	// Entries missing from the order slice still get loaded, as LRU.
	for key, entry := range f.Entries {
		if _, ok := s.index[key]; ok {
			continue
		}
		s.entries[key] = entry
		s.index[key] = s.order.PushFront(&node{key: key})
	}
}

func (s *Store) saveLocked() {
	f := fileFormat{
		Version: 1,
		Entries: s.entries,
		Stats:   s.stats,
		Config: fileConfig{
			TTLHours: int(s.ttl / time.Hour),
			MaxSize:  s.maxSize,
		},
	}
	for el := s.order.Front(); el != nil; el = el.Next() {
		f.Order = append(f.Order, el.Value.(*node).key)
	}

	raw, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		log.Printf("warning: failed to encode cache: %v", err)
		return
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		log.Printf("warning: failed to save cache to %s: %v", s.path, err)
	}
}
