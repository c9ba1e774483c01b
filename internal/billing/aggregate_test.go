package billing

import (
	"testing"
	"time"
)

func entry(ruleID uint, title, group string, amount uint, day int) Entry {
	return Entry{
		RuleID:    ruleID,
		RuleTitle: title,
		GroupName: group,
		Amount:    amount,
		CreatedAt: time.Date(2025, time.June, day, 12, 0, 0, 0, time.UTC),
	}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name        string
		entries     []Entry
		wantBuckets int
		wantTotal   uint
	}{
		{
			name:        "empty",
			entries:     nil,
			wantBuckets: 0,
			wantTotal:   0,
		},
		{
			name: "same rule three times",
			entries: []Entry{
				entry(1, "遅刻", "家族", 500, 3),
				entry(1, "遅刻", "家族", 500, 10),
				entry(1, "遅刻", "家族", 500, 21),
			},
			wantBuckets: 1,
			wantTotal:   1500,
		},
		{
			name: "same rule id in two groups stays separate",
			entries: []Entry{
				entry(1, "遅刻", "家族", 500, 3),
				entry(1, "遅刻", "職場", 500, 4),
			},
			wantBuckets: 2,
			wantTotal:   1000,
		},
		{
			name: "mixed rules",
			entries: []Entry{
				entry(1, "遅刻", "家族", 500, 1),
				entry(2, "皿洗いサボり", "家族", 300, 2),
				entry(1, "遅刻", "家族", 500, 5),
			},
			wantBuckets: 2,
			wantTotal:   1300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buckets := Aggregate(tt.entries)
			if len(buckets) != tt.wantBuckets {
				t.Errorf("Aggregate() returned %d buckets, want %d", len(buckets), tt.wantBuckets)
			}
			if got := Total(buckets); got != tt.wantTotal {
				t.Errorf("Total() = %d, want %d", got, tt.wantTotal)
			}

			// bucket sum must equal the raw entry sum
			var raw uint
			for _, e := range tt.entries {
				raw += e.Amount
			}
			if got := Total(buckets); got != raw {
				t.Errorf("bucket total %d != raw entry total %d", got, raw)
			}
		})
	}
}

func TestAggregateCounts(t *testing.T) {
	entries := []Entry{
		entry(1, "遅刻", "家族", 500, 3),
		entry(1, "遅刻", "家族", 500, 10),
		entry(1, "遅刻", "家族", 500, 21),
	}

	buckets := Aggregate(entries)
	if len(buckets) != 1 {
		t.Fatalf("expected a single bucket, got %d", len(buckets))
	}
	if buckets[0].Count != 3 {
		t.Errorf("Count = %d, want 3", buckets[0].Count)
	}
	if buckets[0].Amount != 1500 {
		t.Errorf("Amount = %d, want 1500", buckets[0].Amount)
	}
}

func TestAggregateFirstSeenOrder(t *testing.T) {
	entries := []Entry{
		entry(2, "皿洗いサボり", "家族", 300, 1),
		entry(1, "遅刻", "家族", 500, 2),
		entry(2, "皿洗いサボり", "家族", 300, 3),
	}

	buckets := Aggregate(entries)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if buckets[0].RuleID != 2 || buckets[1].RuleID != 1 {
		t.Errorf("buckets out of first-seen order: got rule IDs %d, %d", buckets[0].RuleID, buckets[1].RuleID)
	}
}

func TestMonthInterval(t *testing.T) {
	start, end := MonthInterval(2025, time.June, time.UTC)
	if !start.Equal(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v", end)
	}

	// December rolls into the next year
	start, end = MonthInterval(2025, time.December, time.UTC)
	if !end.Equal(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("december end = %v", end)
	}
	if start.Year() != 2025 {
		t.Errorf("december start year = %d", start.Year())
	}
}

func TestDailyCumulative(t *testing.T) {
	entries := []Entry{
		entry(1, "遅刻", "家族", 500, 3),
		entry(1, "遅刻", "家族", 500, 3),
		entry(2, "皿洗いサボり", "家族", 300, 15),
	}

	points := DailyCumulative(entries, 2025, time.June, time.UTC)
	if len(points) != 30 {
		t.Fatalf("June should have 30 points, got %d", len(points))
	}

	// zero days included, running total monotone non-decreasing
	var prev uint
	for _, p := range points {
		if p.TotalAmount < prev {
			t.Fatalf("running total decreased at %s: %d < %d", p.Date, p.TotalAmount, prev)
		}
		prev = p.TotalAmount
	}

	if points[2].Amount != 1000 {
		t.Errorf("day 3 amount = %d, want 1000", points[2].Amount)
	}
	if points[0].Amount != 0 || points[0].TotalAmount != 0 {
		t.Errorf("day 1 should be zero, got %+v", points[0])
	}
	if points[14].TotalAmount != 1300 {
		t.Errorf("day 15 running total = %d, want 1300", points[14].TotalAmount)
	}

	// last point equals the monthly total
	total := Total(Aggregate(entries))
	if points[len(points)-1].TotalAmount != total {
		t.Errorf("final running total %d != monthly total %d", points[len(points)-1].TotalAmount, total)
	}

	if points[0].Date != "6/1" {
		t.Errorf("date label = %q, want 6/1", points[0].Date)
	}
}

func TestDailyCumulativeEmptyMonth(t *testing.T) {
	points := DailyCumulative(nil, 2025, time.February, time.UTC)
	if len(points) != 28 {
		t.Fatalf("February 2025 should have 28 points, got %d", len(points))
	}
	for _, p := range points {
		if p.Amount != 0 || p.TotalAmount != 0 {
			t.Fatalf("empty month should be all zero, got %+v at %s", p, p.Date)
		}
	}
}

func TestDailyCumulativeIgnoresOtherMonths(t *testing.T) {
	entries := []Entry{
		entry(1, "遅刻", "家族", 500, 3),
		{RuleID: 1, RuleTitle: "遅刻", GroupName: "家族", Amount: 900,
			CreatedAt: time.Date(2025, time.May, 31, 23, 0, 0, 0, time.UTC)},
	}

	points := DailyCumulative(entries, 2025, time.June, time.UTC)
	if points[len(points)-1].TotalAmount != 500 {
		t.Errorf("entries outside the month must be ignored, total = %d", points[len(points)-1].TotalAmount)
	}
}
