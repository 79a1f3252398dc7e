package pipeline

import (
	"sort"

	"runner-dashboard/internal/model"
)

// personGroup accumulates the runs of one person in discovery order.
type personGroup struct {
	person string
	miles  []float64
}

// groupByPerson buckets miles per person, keeping first-seen order.
func groupByPerson(records []model.Record) []*personGroup {
	index := make(map[string]*personGroup)
	groups := make([]*personGroup, 0)
	for _, rec := range records {
		g, ok := index[rec.Person]
		if !ok {
			g = &personGroup{person: rec.Person}
			index[rec.Person] = g
			groups = append(groups, g)
		}
		g.miles = append(g.miles, rec.Miles)
	}
	return groups
}

// summarize returns total, average, min and max of a non-empty slice.
func summarize(miles []float64) (total, avg, min, max float64) {
	min, max = miles[0], miles[0]
	for _, m := range miles {
		total += m
		if m < min {
			min = m
		}
		if m > max {
			max = m
		}
	}
	return total, total / float64(len(miles)), min, max
}

// OverallMetrics summarises every record. Empty input yields zeroes.
func OverallMetrics(records []model.Record) model.OverallMetric {
	if len(records) == 0 {
		return model.OverallMetric{}
	}

	miles := make([]float64, len(records))
	runners := make(map[string]struct{})
	for i, rec := range records {
		miles[i] = rec.Miles
		runners[rec.Person] = struct{}{}
	}

	total, avg, min, max := summarize(miles)
	return model.OverallMetric{
		TotalMiles:    total,
		AverageMiles:  avg,
		MinMiles:      min,
		MaxMiles:      max,
		TotalRuns:     len(records),
		UniqueRunners: len(runners),
	}
}

// PersonMetrics summarises each person, highest total first. Ties keep the
// order in which the people first appear.
func PersonMetrics(records []model.Record) []model.PersonMetric {
	groups := groupByPerson(records)
	metrics := make([]model.PersonMetric, 0, len(groups))
	for _, g := range groups {
		total, avg, min, max := summarize(g.miles)
		metrics = append(metrics, model.PersonMetric{
			Person:       g.person,
			TotalMiles:   total,
			AverageMiles: avg,
			MinMiles:     min,
			MaxMiles:     max,
			RunCount:     len(g.miles),
		})
	}

	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].TotalMiles > metrics[j].TotalMiles
	})
	return metrics
}

// MilesByDate sums miles per date in chronological order.
func MilesByDate(records []model.Record) []model.DateMilesPoint {
	totals := make(map[string]float64)
	points := make([]model.DateMilesPoint, 0)
	for _, rec := range records {
		if _, ok := totals[rec.Date]; !ok {
			points = append(points, model.DateMilesPoint{Date: rec.Date})
		}
		totals[rec.Date] += rec.Miles
	}
	for i := range points {
		points[i].Miles = totals[points[i].Date]
	}

	sort.SliceStable(points, func(i, j int) bool {
		return compareDates(points[i].Date, points[j].Date) < 0
	})
	return points
}

// MilesByPerson sums miles per person, highest first, with each person's
// share of the grand total in percent.
func MilesByPerson(records []model.Record) []model.PersonMilesPoint {
	groups := groupByPerson(records)
	points := make([]model.PersonMilesPoint, 0, len(groups))
	var grand float64
	for _, g := range groups {
		var sum float64
		for _, m := range g.miles {
			sum += m
		}
		grand += sum
		points = append(points, model.PersonMilesPoint{Person: g.person, Miles: sum})
	}
	if grand > 0 {
		for i := range points {
			points[i].Share = points[i].Miles / grand * 100
		}
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Miles > points[j].Miles
	})
	return points
}

// MilesByDateForPerson is MilesByDate restricted to one person (exact match).
func MilesByDateForPerson(records []model.Record, person string) []model.DateMilesPoint {
	if person == "" {
		return []model.DateMilesPoint{}
	}

	filtered := make([]model.Record, 0)
	for _, rec := range records {
		if rec.Person == person {
			filtered = append(filtered, rec)
		}
	}
	return MilesByDate(filtered)
}

// Runners lists the distinct people in alphabetical order.
func Runners(records []model.Record) []string {
	seen := make(map[string]struct{})
	runners := make([]string, 0)
	for _, rec := range records {
		if _, ok := seen[rec.Person]; ok {
			continue
		}
		seen[rec.Person] = struct{}{}
		runners = append(runners, rec.Person)
	}
	sort.Strings(runners)
	return runners
}

// BuildDashboard computes the overall and per-person views of an upload.
func BuildDashboard(fileName string, records []model.Record) model.Dashboard {
	return model.Dashboard{
		FileName:      fileName,
		RecordCount:   len(records),
		Runners:       Runners(records),
		Overall:       OverallMetrics(records),
		People:        PersonMetrics(records),
		MilesByDate:   MilesByDate(records),
		MilesByPerson: MilesByPerson(records),
	}
}

// BuildPersonView computes the detail view for one runner. An empty name
// selects the first runner alphabetically.
func BuildPersonView(records []model.Record, person string) model.PersonView {
	if person == "" {
		if runners := Runners(records); len(runners) > 0 {
			person = runners[0]
		}
	}

	view := model.PersonView{
		Person:      person,
		MilesByDate: MilesByDateForPerson(records, person),
	}
	for _, m := range PersonMetrics(records) {
		if m.Person == person {
			metric := m
			view.Metric = &metric
			break
		}
	}
	return view
}
