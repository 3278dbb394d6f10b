package store

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Key   string
	Value int
}

func TestPutGetDelete(t *testing.T) {
	s := New[record]()
	id := uuid.New()

	_, ok := s.Get(id)
	assert.False(t, ok)

	s.Put(id, record{Key: "a", Value: 1})
	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, record{Key: "a", Value: 1}, got)

	// Put overwrites by id without growing the collection.
	s.Put(id, record{Key: "a", Value: 2})
	assert.Equal(t, 1, s.Len())

	assert.True(t, s.Delete(id))
	assert.False(t, s.Delete(id))
	_, ok = s.Get(id)
	assert.False(t, ok)
}

func TestListInsertionOrder(t *testing.T) {
	s := New[record]()
	keys := []string{"first", "second", "third", "fourth"}
	for i, k := range keys {
		s.Put(uuid.New(), record{Key: k, Value: i})
	}

	listed := s.List()
	require.Len(t, listed, len(keys))
	for i, rec := range listed {
		assert.Equal(t, keys[i], rec.Key)
	}
}

func TestDeleteKeepsOrder(t *testing.T) {
	s := New[record]()
	ids := make([]uuid.UUID, 3)
	for i := range ids {
		ids[i] = uuid.New()
		s.Put(ids[i], record{Value: i})
	}

	require.True(t, s.Delete(ids[1]))
	listed := s.List()
	require.Len(t, listed, 2)
	assert.Equal(t, 0, listed[0].Value)
	assert.Equal(t, 2, listed[1].Value)
}

func TestGetOrInsert(t *testing.T) {
	s := New[record]()

	first, created := s.GetOrInsert(
		func(r record) bool { return r.Key == "slug" },
		func() (uuid.UUID, record) { return uuid.New(), record{Key: "slug", Value: 1} },
	)
	assert.True(t, created)
	assert.Equal(t, 1, first.Value)

	// Second attempt with the same key returns the stored record untouched.
	second, created := s.GetOrInsert(
		func(r record) bool { return r.Key == "slug" },
		func() (uuid.UUID, record) { return uuid.New(), record{Key: "slug", Value: 99} },
	)
	assert.False(t, created)
	assert.Equal(t, 1, second.Value)
	assert.Equal(t, 1, s.Len())
}

func TestGetOrInsertConcurrent(t *testing.T) {
	s := New[record]()

	var wg sync.WaitGroup
	createdCount := make(chan bool, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, created := s.GetOrInsert(
				func(r record) bool { return r.Key == "same" },
				func() (uuid.UUID, record) { return uuid.New(), record{Key: "same"} },
			)
			createdCount <- created
		}()
	}
	wg.Wait()
	close(createdCount)

	total := 0
	for created := range createdCount {
		if created {
			total++
		}
	}
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, s.Len())
}

func TestMutate(t *testing.T) {
	s := New[record]()
	id := uuid.New()
	s.Put(id, record{Value: 1})

	updated, ok := s.Mutate(id, func(r *record) { r.Value = 5 })
	require.True(t, ok)
	assert.Equal(t, 5, updated.Value)

	stored, _ := s.Get(id)
	assert.Equal(t, 5, stored.Value)

	_, ok = s.Mutate(uuid.New(), func(r *record) { r.Value = 9 })
	assert.False(t, ok)
}
