// Package metrics derives dashboard figures from normalized call
// records. Everything here is a pure function recomputed on demand;
// list sizes are capped by the fetch limit, so no caching is needed.
package metrics

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"vapi-dashboard-tui/internal/models"
	"vapi-dashboard-tui/internal/vapi"
)

// Summary holds the headline KPIs for a set of calls.
type Summary struct {
	CallCount     int
	AvgDuration   string // M:SS
	TotalCost     string // "$X.YZ"
	TotalMinutes  int
	SuccessCounts map[models.EvaluationStatus]int
}

// DayBucket is one bar of the 7-day volume histogram.
type DayBucket struct {
	Label string // short weekday name, e.g. "Mon"
	Calls int
}

// Summarize computes the dashboard KPIs over an ordered call list.
// An empty list is valid and yields zeroed defaults.
func Summarize(calls []models.Call) Summary {
	s := Summary{
		AvgDuration:   "0:00",
		TotalCost:     "$0.00",
		SuccessCounts: make(map[models.EvaluationStatus]int),
	}
	if len(calls) == 0 {
		return s
	}

	totalSeconds := 0
	totalCost := 0.0
	for _, call := range calls {
		totalSeconds += ParseClock(call.Duration)
		totalCost += call.Cost
		s.SuccessCounts[call.Evaluation]++
	}

	avgSeconds := int(math.Round(float64(totalSeconds) / float64(len(calls))))

	s.CallCount = len(calls)
	s.AvgDuration = fmt.Sprintf("%d:%02d", avgSeconds/60, avgSeconds%60)
	s.TotalCost = fmt.Sprintf("$%.2f", totalCost)
	s.TotalMinutes = totalSeconds / 60
	return s
}

// DailyVolume buckets calls into the last 7 calendar days including
// today, oldest first. Bucketing is by short weekday label only, so
// calls from other weeks that share a label land in the same bucket;
// that matching is only meaningful within a single week and is kept
// as-is. Days with no calls still appear with a zero count.
func DailyVolume(calls []models.Call, now time.Time) []DayBucket {
	buckets := make([]DayBucket, 0, 7)
	index := make(map[string]int, 7)
	for i := 6; i >= 0; i-- {
		label := now.AddDate(0, 0, -i).Format("Mon")
		index[label] = len(buckets)
		buckets = append(buckets, DayBucket{Label: label})
	}

	for _, call := range calls {
		parsed, err := time.Parse(vapi.DisplayDateLayout(), call.Date)
		if err != nil {
			continue
		}
		if pos, ok := index[parsed.Format("Mon")]; ok {
			buckets[pos].Calls++
		}
	}

	return buckets
}

// ParseClock converts an M:SS string into total seconds. Anything
// other than exactly two numeric colon-separated parts contributes 0.
func ParseClock(clock string) int {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0
	}
	mins, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	secs, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return mins*60 + secs
}
