package engine

import (
	"math"
	"testing"

	"taxidash/internal/domain"
	"taxidash/internal/sample"
)

func TestPaginate_Scenario(t *testing.T) {
	trips := seedTrips()

	first := Paginate(trips, 2, 1)
	second := Paginate(trips, 2, 2)

	if first.TotalPages != 2 {
		t.Fatalf("expected 2 pages, got %d", first.TotalPages)
	}
	if len(first.Items) != 2 {
		t.Errorf("expected 2 items on page 1, got %d", len(first.Items))
	}
	if len(second.Items) != 1 {
		t.Errorf("expected 1 item on page 2, got %d", len(second.Items))
	}
	if first.HasPrev || !first.HasNext {
		t.Errorf("page 1: expected prev disabled and next enabled, got prev=%v next=%v", first.HasPrev, first.HasNext)
	}
	if !second.HasPrev || second.HasNext {
		t.Errorf("page 2: expected prev enabled and next disabled, got prev=%v next=%v", second.HasPrev, second.HasNext)
	}
}

func TestPaginate_CoversEverySequenceExactlyOnce(t *testing.T) {
	trips := Sort(Search(Filter(sample.Generate(137, 7, nil), domain.DefaultFilter()), "2"), domain.SortByFareAmount)

	for _, size := range []int{1, 3, 10, 50, 137, 200} {
		first := Paginate(trips, size, 1)

		var rebuilt []domain.TripRecord
		for p := 1; p <= first.TotalPages; p++ {
			rebuilt = append(rebuilt, Paginate(trips, size, p).Items...)
		}

		if !equalIDs(ids(rebuilt), ids(trips)) {
			t.Errorf("page size %d: pages do not reconstruct the sequence (%d vs %d items)", size, len(rebuilt), len(trips))
		}
	}
}

func TestPaginate_OutOfRange(t *testing.T) {
	trips := seedTrips()

	testCases := []struct {
		name        string
		page        int
		wantClamped int
	}{
		{"zero", 0, 1},
		{"negative", -3, 1},
		{"past the end", 5, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Paginate(trips, 2, tc.page)
			if len(got.Items) != 0 {
				t.Errorf("expected an empty page, got %d items", len(got.Items))
			}
			if got.TotalPages != 2 {
				t.Errorf("expected 2 total pages, got %d", got.TotalPages)
			}
			if got.ClampedPage != tc.wantClamped {
				t.Errorf("expected clamped page %d, got %d", tc.wantClamped, got.ClampedPage)
			}
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	got := Paginate(nil, 10, 1)

	if got.TotalPages != 0 {
		t.Errorf("expected 0 pages, got %d", got.TotalPages)
	}
	if got.Items == nil || len(got.Items) != 0 {
		t.Errorf("expected a non-nil empty page, got %v", got.Items)
	}
	if got.HasPrev || got.HasNext {
		t.Error("expected both navigation buttons disabled")
	}
}

func TestPaginate_DefaultsPageSize(t *testing.T) {
	trips := sample.Generate(25, 1, nil)

	got := Paginate(trips, 0, 1)

	if len(got.Items) != domain.DefaultPageSize {
		t.Errorf("expected %d items, got %d", domain.DefaultPageSize, len(got.Items))
	}
	if got.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", got.TotalPages)
	}
}

func TestPaginate_HugePageSize(t *testing.T) {
	got := Paginate(seedTrips(), math.MaxInt, 1)

	if got.TotalPages != 1 || len(got.Items) != 3 {
		t.Errorf("expected one page of 3 items, got %d pages with %d items", got.TotalPages, len(got.Items))
	}
	if got.HasPrev || got.HasNext {
		t.Error("expected both navigation buttons disabled")
	}
}
