// Package billing derives monthly penalty/reward figures from raw confession
// rows. It is pure: callers fetch the rows, this package only folds them.
package billing

import (
	"fmt"
	"time"
)

// Entry is one confession row joined to its rule and group.
type Entry struct {
	RuleID    uint
	RuleTitle string
	GroupName string
	Amount    uint
	CreatedAt time.Time
}

// Bucket is the per-(rule, group) aggregate shown in lists, charts and the
// invoice table.
type Bucket struct {
	RuleID    uint   `json:"rule_id"`
	RuleTitle string `json:"rule_title"`
	GroupName string `json:"group_name"`
	Count     int    `json:"count"`
	Amount    uint   `json:"amount"`
}

// DayPoint is one calendar day of the cumulative trend series.
type DayPoint struct {
	Date        string `json:"date"`
	Amount      uint   `json:"amount"`
	TotalAmount uint   `json:"total_amount"`
}

// Aggregate folds entries into (rule, group) buckets, preserving first-seen
// order so repeated runs over the same rows render identically.
func Aggregate(entries []Entry) []Bucket {
	type key struct {
		ruleID    uint
		groupName string
	}

	index := make(map[key]int)
	buckets := make([]Bucket, 0)

	for _, e := range entries {
		k := key{ruleID: e.RuleID, groupName: e.GroupName}
		if i, ok := index[k]; ok {
			buckets[i].Count++
			buckets[i].Amount += e.Amount
			continue
		}
		index[k] = len(buckets)
		buckets = append(buckets, Bucket{
			RuleID:    e.RuleID,
			RuleTitle: e.RuleTitle,
			GroupName: e.GroupName,
			Count:     1,
			Amount:    e.Amount,
		})
	}

	return buckets
}

// Total sums the bucket amounts. By construction it equals the sum of the
// raw entry amounts.
func Total(buckets []Bucket) uint {
	var total uint
	for _, b := range buckets {
		total += b.Amount
	}
	return total
}

// MonthInterval returns the inclusive start and exclusive end of the month.
func MonthInterval(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// DailyCumulative produces one point per calendar day of the month, zero
// days included, with a running total. The series is monotone
// non-decreasing and its last point equals the monthly total.
func DailyCumulative(entries []Entry, year int, month time.Month, loc *time.Location) []DayPoint {
	perDay := make(map[int]uint)
	for _, e := range entries {
		t := e.CreatedAt.In(loc)
		if t.Year() != year || t.Month() != month {
			continue
		}
		perDay[t.Day()] += e.Amount
	}

	start, _ := MonthInterval(year, month, loc)
	days := start.AddDate(0, 1, -1).Day()

	points := make([]DayPoint, 0, days)
	var running uint
	for day := 1; day <= days; day++ {
		running += perDay[day]
		points = append(points, DayPoint{
			Date:        fmt.Sprintf("%d/%d", int(month), day),
			Amount:      perDay[day],
			TotalAmount: running,
		})
	}

	return points
}
