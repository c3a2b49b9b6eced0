package cache

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/in-nis/academy-grid/internal/grid"
	"github.com/in-nis/academy-grid/internal/models"
)

var ctx = context.Background()

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := Connect(ctx, mr.Addr())
	if rdb == nil {
		t.Fatal("expected client for running redis")
	}
	t.Cleanup(func() { rdb.Close() })
	return NewRedisCache(rdb, time.Minute), mr
}

func TestKey(t *testing.T) {
	tests := []struct {
		scope   grid.Scope
		want    string
		wantGen string
	}{
		{scope: grid.NewScope("acme", grid.ClassSchedule), want: "grid:schedule:acme", wantGen: "grid:gen:schedule:acme"},
		{scope: grid.NewScope("acme", grid.TempSchedule), want: "grid:temp-schedule:acme", wantGen: "grid:gen:temp-schedule:acme"},
		{scope: grid.NewScope("acme", grid.Pickup), want: "grid:pickup:acme", wantGen: "grid:gen:pickup:acme"},
	}
	for _, tt := range tests {
		if got := Key(tt.scope); got != tt.want {
			t.Errorf("Key(%s) = %q, want %q", tt.scope, got, tt.want)
		}
		if got := GenerationKey(tt.scope); got != tt.wantGen {
			t.Errorf("GenerationKey(%s) = %q, want %q", tt.scope, got, tt.wantGen)
		}
	}
}

func TestConnect_EmptyAddrDisablesCache(t *testing.T) {
	if rdb := Connect(ctx, ""); rdb != nil {
		t.Error("expected nil client for empty address")
	}
}

func TestRedisCache_RoundTrip(t *testing.T) {
	schedule := grid.NewScope("acme", grid.ClassSchedule)
	pickup := grid.NewScope("acme", grid.Pickup)

	tests := []struct {
		name  string
		scope grid.Scope
		cells []models.Cell
	}{
		{
			name:  "schedule",
			scope: schedule,
			cells: []models.Cell{
				{AcademyID: "acme", Time: "09:00", Day: 0, Category: "D", Content: "math"},
				{AcademyID: "acme", Time: "07:30", Day: 4, Category: "S", Content: "art"},
			},
		},
		{
			name:  "pickup",
			scope: pickup,
			cells: []models.Cell{{AcademyID: "acme", Time: "15:00", Day: 2, Content: "van"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mr := newTestCache(t)
			var labels []string
			for _, cell := range tt.cells {
				labels = append(labels, cell.Time)
			}
			want := grid.Materialize(tt.scope.Shape, grid.SortLabels(labels), tt.cells)
			want.AcademyID = "acme"

			if _, ok, err := c.Get(ctx, tt.scope); err != nil || ok {
				t.Fatalf("expected miss on empty cache, ok=%v err=%v", ok, err)
			}
			stored, err := c.Set(ctx, tt.scope, want, 0)
			if err != nil || !stored {
				t.Fatalf("Set: stored=%v err=%v", stored, err)
			}
			if ttl := mr.TTL(Key(tt.scope)); ttl != time.Minute {
				t.Errorf("expected 1m ttl, got %s", ttl)
			}

			got, ok, err := c.Get(ctx, tt.scope)
			if err != nil || !ok {
				t.Fatalf("Get: ok=%v err=%v", ok, err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
			}
			for _, cell := range tt.cells {
				if s := got.At(cell.Time, cell.Day, cell.Category); s != cell.Content {
					t.Errorf("At(%s, %d, %q) = %q, want %q", cell.Time, cell.Day, cell.Category, s, cell.Content)
				}
			}
		})
	}
}

func TestRedisCache_InvalidateBumpsGeneration(t *testing.T) {
	c, mr := newTestCache(t)
	scope := grid.NewScope("acme", grid.Pickup)

	gen, err := c.Generation(ctx, scope)
	if err != nil || gen != 0 {
		t.Fatalf("expected generation 0, got %d err=%v", gen, err)
	}
	if _, err := c.Set(ctx, scope, grid.Grid{Table: "pickup"}, gen); err != nil {
		t.Fatal(err)
	}

	if err := c.Invalidate(ctx, scope); err != nil {
		t.Fatal(err)
	}
	if mr.Exists(Key(scope)) {
		t.Error("expected grid deleted on invalidate")
	}
	if gen, _ := c.Generation(ctx, scope); gen != 1 {
		t.Errorf("expected generation 1, got %d", gen)
	}
}

func TestRedisCache_SetSkipsAfterInvalidate(t *testing.T) {
	c, mr := newTestCache(t)
	scope := grid.NewScope("acme", grid.ClassSchedule)

	gen, err := c.Generation(ctx, scope)
	if err != nil {
		t.Fatal(err)
	}
	// a write lands between the read and the write-back
	if err := c.Invalidate(ctx, scope); err != nil {
		t.Fatal(err)
	}

	stored, err := c.Set(ctx, scope, grid.Grid{Table: "schedule"}, gen)
	if err != nil {
		t.Fatal(err)
	}
	if stored {
		t.Error("expected stale grid not to be stored")
	}
	if mr.Exists(Key(scope)) {
		t.Error("stale grid must not reach redis")
	}
}

func TestRedisCache_ErrorsWhenRedisDown(t *testing.T) {
	c, mr := newTestCache(t)
	scope := grid.NewScope("acme", grid.Pickup)
	mr.Close()

	if _, _, err := c.Get(ctx, scope); err == nil {
		t.Error("expected Get error")
	}
	if _, err := c.Generation(ctx, scope); err == nil {
		t.Error("expected Generation error")
	}
	if _, err := c.Set(ctx, scope, grid.Grid{}, 0); err == nil {
		t.Error("expected Set error")
	}
	if err := c.Invalidate(ctx, scope); err == nil {
		t.Error("expected Invalidate error")
	}
}
