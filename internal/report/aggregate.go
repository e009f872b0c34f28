package report

import (
	"math"
	"sort"
	"time"

	"github.com/avoronov/forumsim/internal/domain"
)

// DailyMetrics is one row of the report: aggregate forum activity for a
// single calendar day.
type DailyMetrics struct {
	Date                   time.Time
	NewUsers               int
	AnonymousCommentsRatio float64
	CommentsCount          int
	// TopicCountChange is the percent change of the cumulative net topic
	// count (successful creations minus deletions) relative to the previous
	// day. Nil on the first day and whenever the previous cumulative count
	// is zero.
	TopicCountChange *float64
}

// dayKey truncates a timestamp to its calendar date (UTC-normalized key).
func dayKey(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Aggregate computes per-day metrics from a range of log records. Days with
// no records produce no row. The returned rows are ordered by date.
func Aggregate(records []domain.LogRecord) []DailyMetrics {
	type dayAgg struct {
		newUsers      int
		comments      int
		anonComments  int
		topicsCreated int
		topicsDeleted int
	}

	byDay := make(map[time.Time]*dayAgg)
	agg := func(t time.Time) *dayAgg {
		key := dayKey(t)
		a, ok := byDay[key]
		if !ok {
			a = &dayAgg{}
			byDay[key] = a
		}
		return a
	}

	for _, rec := range records {
		a := agg(rec.Time)
		switch rec.Activity {
		case domain.ActivityRegistration:
			a.newUsers++
		case domain.ActivityCreateComment:
			a.comments++
			if rec.IsAnonymous() {
				a.anonComments++
			}
		case domain.ActivityCreateTopic:
			if rec.Status != domain.StatusUnauthorized {
				a.topicsCreated++
			}
		case domain.ActivityDeleteTopic:
			a.topicsDeleted++
		}
	}

	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	rows := make([]DailyMetrics, 0, len(days))
	cumulative := 0
	for i, day := range days {
		a := byDay[day]

		row := DailyMetrics{
			Date:          day,
			NewUsers:      a.newUsers,
			CommentsCount: a.comments,
		}
		if a.comments > 0 {
			row.AnonymousCommentsRatio = round2(float64(a.anonComments) / float64(a.comments))
		}

		prev := cumulative
		cumulative += a.topicsCreated - a.topicsDeleted
		if i > 0 && prev != 0 {
			change := round2(float64(cumulative-prev) / float64(prev) * 100)
			row.TopicCountChange = &change
		}

		rows = append(rows, row)
	}

	return rows
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
