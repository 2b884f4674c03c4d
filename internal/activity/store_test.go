package activity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

func makeActivity(id int) SyncedActivity {
	return SyncedActivity{
		ID:       id,
		Title:    fmt.Sprintf("activity_%d", id),
		Category: "学术讲座",
		Status:   DefaultStatus,
	}
}

func TestNewMemoryStore(t *testing.T) {
	tests := []struct {
		name     string
		maxItems int
		want     int
	}{
		{"Bounded", 10, 10},
		{"Unbounded", 0, 0},
		{"Negative", -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMemoryStore(tt.maxItems)
			if s.maxItems != tt.want {
				t.Fatalf("maxItems = %d, want %d", s.maxItems, tt.want)
			}
			if n := s.Len(context.Background()); n != 0 {
				t.Fatalf("new store has %d items", n)
			}
		})
	}
}

func TestAppendPreservesOrder(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if err := s.Append(ctx, makeActivity(i)); err != nil {
			t.Fatalf("Append(%d): %v", i, err)
		}
	}

	got := s.List(ctx)
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	for i, a := range got {
		if a.ID != i+1 {
			t.Errorf("at %d: ID = %v, want %d", i, a.ID, i+1)
		}
	}
}

func TestListReturnsCopy(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()
	_ = s.Append(ctx, makeActivity(1))

	got := s.List(ctx)
	got[0].Title = "mutated"

	if s.List(ctx)[0].Title != "activity_1" {
		t.Error("List exposed internal storage")
	}
}

func TestAppendRejectsWhenFull(t *testing.T) {
	s := NewMemoryStore(2)
	ctx := context.Background()

	_ = s.Append(ctx, makeActivity(1))
	_ = s.Append(ctx, makeActivity(2))

	err := s.Append(ctx, makeActivity(3))
	if !errors.Is(err, ErrStoreFull) {
		t.Fatalf("err = %v, want ErrStoreFull", err)
	}
	if n := s.Len(ctx); n != 2 {
		t.Errorf("Len = %d after rejected append, want 2", n)
	}
	if s.List(ctx)[0].ID != 1 {
		t.Error("oldest activity was evicted")
	}
}

func TestAppendCanceledContext(t *testing.T) {
	s := NewMemoryStore(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Append(ctx, makeActivity(1)); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if s.Len(context.Background()) != 0 {
		t.Error("canceled append was stored")
	}
}

func TestConcurrency(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()
	numGoRoutines := 50
	numOperations := 200

	var wg sync.WaitGroup

	for i := 0; i < numGoRoutines; i++ {
		wg.Add(1)
		go func(gID int) {
			defer wg.Done()
			for j := 0; j < numOperations; j++ {
				switch j % 3 {
				case 0, 1:
					_ = s.Append(ctx, makeActivity(gID*numOperations+j))
				case 2:
					s.List(ctx)
					s.Len(ctx)
				}
			}
		}(i)
	}

	wg.Wait()

	appendsPerRoutine := 0
	for j := 0; j < numOperations; j++ {
		if j%3 != 2 {
			appendsPerRoutine++
		}
	}
	if got, want := s.Len(ctx), numGoRoutines*appendsPerRoutine; got != want {
		t.Fatalf("Len = %d, want %d", got, want)
	}

	// Each goroutine's own appends must stay in the order it made them.
	last := make(map[int]int)
	for _, a := range s.List(ctx) {
		id := a.ID.(int)
		g := id / numOperations
		if prev, ok := last[g]; ok && prev >= id {
			t.Fatalf("goroutine %d: id %d stored after %d", g, id, prev)
		}
		last[g] = id
	}
}
