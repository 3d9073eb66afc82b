package id

import (
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uuidV4 = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestUUIDProvider_Format(t *testing.T) {
	p := UUIDProvider{}
	for i := 0; i < 50; i++ {
		assert.Regexp(t, uuidV4, p.Next())
	}
}

func TestShortProvider_Format(t *testing.T) {
	got := ShortProvider{}.Next()
	assert.Len(t, got, 16)
	assert.Regexp(t, `^[0-9a-f]{16}$`, got)
}

func TestSeededProvider_Deterministic(t *testing.T) {
	a := NewSeededProvider(42)
	b := NewSeededProvider(42)
	c := NewSeededProvider(7)

	for i := 0; i < 10; i++ {
		got := a.Next()
		assert.Regexp(t, uuidV4, got)
		assert.Equal(t, got, b.Next())
		assert.NotEqual(t, got, c.Next())
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		kind string
		want any
	}{
		{"", UUIDProvider{}},
		{"uuid", UUIDProvider{}},
		{"UUID", UUIDProvider{}},
		{"short", ShortProvider{}},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			p, err := New(tt.kind, 0)
			require.NoError(t, err)
			assert.IsType(t, tt.want, p)
		})
	}

	p, err := New("ulid", 0)
	require.NoError(t, err)
	assert.IsType(t, &ULIDProvider{}, p)

	p, err = New("seeded", 1)
	require.NoError(t, err)
	assert.IsType(t, &SeededProvider{}, p)

	_, err = New("snowflake", 0)
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestProviders_UniqueUnderConcurrency(t *testing.T) {
	providers := map[string]Provider{
		"uuid":   UUIDProvider{},
		"ulid":   NewULIDProvider(),
		"short":  ShortProvider{},
		"seeded": NewSeededProvider(99),
	}

	for name, p := range providers {
		t.Run(name, func(t *testing.T) {
			const workers, perWorker = 8, 250
			var (
				mu   sync.Mutex
				seen = make(map[string]bool, workers*perWorker)
				wg   sync.WaitGroup
			)
			for w := 0; w < workers; w++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < perWorker; i++ {
						v := p.Next()
						mu.Lock()
						seen[v] = true
						mu.Unlock()
					}
				}()
			}
			wg.Wait()
			assert.Len(t, seen, workers*perWorker)
		})
	}
}

func TestULIDProvider_FormatAndTime(t *testing.T) {
	fixed := time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC)
	p := &ULIDProvider{now: func() time.Time { return fixed }}

	first := p.Next()
	second := p.Next()

	require.True(t, IsValidULID(first), first)
	require.True(t, IsValidULID(second), second)
	assert.NotEqual(t, first, second)
	assert.Equal(t, first[:10], second[:10], "same millisecond shares the timestamp prefix")

	ts, err := ULIDTime(first)
	require.NoError(t, err)
	assert.Equal(t, fixed.UnixMilli(), ts.UnixMilli())
}

func TestULIDProvider_Sortable(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	p := &ULIDProvider{now: func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Millisecond)
	}}

	prev := p.Next()
	for i := 0; i < 20; i++ {
		next := p.Next()
		assert.Less(t, prev, next)
		prev = next
	}
}

func TestIsValidULID(t *testing.T) {
	assert.False(t, IsValidULID(""))
	assert.False(t, IsValidULID("01ARZ3NDEKTSV4RRFFQ69G5FA"))   // 25 chars
	assert.False(t, IsValidULID("01ARZ3NDEKTSV4RRFFQ69G5FAU"))  // U is excluded
	assert.True(t, IsValidULID("01ARZ3NDEKTSV4RRFFQ69G5FAV"))

	_, err := ULIDTime("nope")
	assert.Error(t, err)
}
