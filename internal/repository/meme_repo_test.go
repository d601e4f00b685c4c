package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/memegallery/api/internal/config"
	"github.com/memegallery/api/internal/domain"
)

// newTestRepo opens an in-memory sqlite store. A single pooled connection
// keeps the in-memory database alive and shared across goroutines.
func newTestRepo(t *testing.T) *MemeRepository {
	t.Helper()

	db, err := InitDB(&config.DatabaseConfig{
		Driver:          "sqlite",
		Path:            ":memory:",
		MaxIdleConns:    1,
		MaxOpenConns:    1,
		ConnMaxLifetime: time.Hour,
		AutoMigrate:     true,
	})
	if err != nil {
		t.Fatalf("failed to init test database: %v", err)
	}
	return NewMemeRepository(db)
}

func strptr(s string) *string { return &s }

func TestMemeRepository_CreateAssignsIDAndCreatedAt(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	meme := &domain.Meme{
		URL:    "http://x/a.png",
		Title:  "T1",
		Author: "Bob",
	}
	if err := repo.Create(ctx, meme); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if meme.ID == 0 {
		t.Error("expected store-assigned id, got 0")
	}
	if meme.CreatedAt.IsZero() {
		t.Error("expected store-assigned created_at, got zero value")
	}
	if meme.Rating != 0 {
		t.Errorf("expected default rating 0, got %d", meme.Rating)
	}
}

func TestMemeRepository_ListAllEmpty(t *testing.T) {
	repo := newTestRepo(t)

	memes, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if memes == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(memes) != 0 {
		t.Errorf("expected 0 memes, got %d", len(memes))
	}
}

func TestMemeRepository_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	in := &domain.Meme{
		URL:         "http://example.com/cat.png",
		Title:       "Cat",
		Description: strptr("a cat meme"),
		Rating:      5,
		Author:      "Alice",
	}
	if err := repo.Create(ctx, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	memes, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(memes) != 1 {
		t.Fatalf("expected 1 meme, got %d", len(memes))
	}

	got := memes[0]
	if got.URL != in.URL || got.Title != in.Title || got.Author != in.Author {
		t.Errorf("round trip mismatch: got %+v", got)
	}
	if got.Description == nil || *got.Description != "a cat meme" {
		t.Errorf("description not preserved: got %v", got.Description)
	}
	if got.Rating != 5 {
		t.Errorf("expected rating 5, got %d", got.Rating)
	}
}

func TestMemeRepository_IDsStrictlyIncrease(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	var lastID int64
	for i := 0; i < 5; i++ {
		meme := &domain.Meme{
			URL:    fmt.Sprintf("http://x/%d.png", i),
			Title:  fmt.Sprintf("T%d", i),
			Author: "Bob",
		}
		if err := repo.Create(ctx, meme); err != nil {
			t.Fatalf("create %d: unexpected error: %v", i, err)
		}
		if meme.ID <= lastID {
			t.Errorf("id not strictly increasing: got %d after %d", meme.ID, lastID)
		}
		lastID = meme.ID
	}
}

func TestMemeRepository_ListAllMatchesCreates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	const n = 7
	want := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		meme := &domain.Meme{
			URL:    fmt.Sprintf("http://x/%d.png", i),
			Title:  fmt.Sprintf("T%d", i),
			Author: fmt.Sprintf("author-%d", i),
		}
		if err := repo.Create(ctx, meme); err != nil {
			t.Fatalf("create %d: unexpected error: %v", i, err)
		}
		want[meme.URL+"|"+meme.Title+"|"+meme.Author] = true
	}

	memes, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(memes) != n {
		t.Fatalf("expected %d memes, got %d", n, len(memes))
	}
	for _, m := range memes {
		key := m.URL + "|" + m.Title + "|" + m.Author
		if !want[key] {
			t.Errorf("unexpected record in list: %s", key)
		}
		delete(want, key)
	}
	if len(want) != 0 {
		t.Errorf("records missing from list: %v", want)
	}
}

func TestMemeRepository_ConcurrentCreates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	const n = 10
	var wg sync.WaitGroup
	ids := make(chan int64, n)
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			meme := &domain.Meme{
				URL:    fmt.Sprintf("http://x/c%d.png", i),
				Title:  fmt.Sprintf("C%d", i),
				Author: "Bob",
			}
			if err := repo.Create(ctx, meme); err != nil {
				errs <- err
				return
			}
			ids <- meme.ID
		}(i)
	}
	wg.Wait()
	close(ids)
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent create failed: %v", err)
	}

	seen := make(map[int64]bool, n)
	for id := range ids {
		if seen[id] {
			t.Errorf("duplicate id issued: %d", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Errorf("expected %d distinct ids, got %d", n, len(seen))
	}

	memes, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(memes) != n {
		t.Errorf("lost writes: expected %d rows, got %d", n, len(memes))
	}
}

func TestMemeRepository_GetByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	meme := &domain.Meme{URL: "http://x/a.png", Title: "T1", Author: "Bob"}
	if err := repo.Create(ctx, meme); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, meme.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "T1" {
		t.Errorf("expected title T1, got %q", got.Title)
	}

	if _, err := repo.GetByID(ctx, meme.ID+1000); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestMemeRepository_Count(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0, got %d", count)
	}

	for i := 0; i < 3; i++ {
		meme := &domain.Meme{URL: "http://x/a.png", Title: "T", Author: "B"}
		if err := repo.Create(ctx, meme); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	count, err = repo.Count(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3, got %d", count)
	}
}
