package service

import (
	"sort"
	"time"

	"github.com/noah-isme/ttms-admin-api/internal/models"
)

const (
	monthlyBucketCap  = 12
	categoryBucketCap = 10
	periodLayout      = "2006-01"
	monthLabelLayout  = "Jan 2006"
)

// Summarize turns raw aggregates into report statistics. Nil input yields a zero summary.
func Summarize(raw *models.ReportAggregates) models.ReportStatistics {
	stats := models.ReportStatistics{
		Aggregates: []models.NumericAggregate{},
		Breakdowns: []models.Breakdown{},
	}
	if raw == nil {
		return stats
	}
	stats.Total = raw.Total
	stats.OverallTotal = raw.Overall

	for _, sum := range raw.Sums {
		sum.Average = average(sum.Sum, raw.Total)
		stats.Aggregates = append(stats.Aggregates, sum)
	}
	for _, breakdown := range raw.Breakdowns {
		breakdown.Buckets = normaliseBuckets(breakdown.Kind, breakdown.Buckets)
		stats.Breakdowns = append(stats.Breakdowns, breakdown)
	}
	if raw.Statuses != nil {
		statuses := *raw.Statuses
		stats.Statuses = &statuses
	}
	return stats
}

func average(sum, count int64) float64 {
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

// normaliseBuckets caps and orders one histogram: monthly buckets most recent first,
// categorical buckets by count descending then label.
func normaliseBuckets(kind models.BreakdownKind, buckets []models.Bucket) []models.Bucket {
	out := append([]models.Bucket{}, buckets...)
	limit := categoryBucketCap
	if kind == models.BreakdownMonthly {
		limit = monthlyBucketCap
		sort.SliceStable(out, func(i, j int) bool { return out[i].Label > out[j].Label })
	} else {
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Count != out[j].Count {
				return out[i].Count > out[j].Count
			}
			return out[i].Label < out[j].Label
		})
	}
	if len(out) > limit {
		out = out[:limit]
	}
	if kind == models.BreakdownMonthly {
		for i := range out {
			out[i].Label = monthLabel(out[i].Label)
		}
	}
	return out
}

// monthLabel renders a YYYY-MM period as "Jan 2006". Unparseable periods pass through.
func monthLabel(period string) string {
	t, err := time.Parse(periodLayout, period)
	if err != nil {
		return period
	}
	return t.Format(monthLabelLayout)
}

// ClassifyResolution returns every status bucket a resolution falls into on the given day.
// Buckets are not exclusive: a resolution close to expiry is both active and expiring soon.
func ClassifyResolution(effectivity, expiration *time.Time, today time.Time) []string {
	day := civilDate(today)
	statuses := []string{}

	var eff, exp time.Time
	if effectivity != nil {
		eff = civilDate(*effectivity)
	}
	if expiration != nil {
		exp = civilDate(*expiration)
	}

	if effectivity != nil && expiration != nil && !eff.After(day) && !exp.Before(day) {
		statuses = append(statuses, models.ResolutionActive)
	}
	if expiration != nil && exp.Before(day) {
		statuses = append(statuses, models.ResolutionExpired)
	}
	if expiration != nil && !exp.Before(day) && !exp.After(day.Add(models.ExpiringSoonWindow)) {
		statuses = append(statuses, models.ResolutionExpiringSoon)
	}
	if effectivity != nil && eff.After(day) {
		statuses = append(statuses, models.ResolutionPending)
	}
	return statuses
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
