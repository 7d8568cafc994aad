// Package views derives the calendar, analytics and leaderboard read models
// from the task, group and participant collections. Nothing here is stored.
package views

import (
	"cmp"
	"slices"
	"time"

	"github.com/fastygo/taskup/domain"
)

const (
	GridCells       = 42
	SeriesDays      = 14
	MaxBuckets      = 6
	DefaultTop      = 5
	DefaultUpcoming = 3

	NoSubjectLabel = "Sin materia"
	NoGroupLabel   = "Sin grupo"

	dayLayout = "2006-01-02"
)

// CalendarTask is a task annotated with the name of its group.
type CalendarTask struct {
	domain.Task
	GroupName string `json:"groupName,omitempty"`
}

// Cell is one day of the month grid.
type Cell struct {
	Date         string         `json:"date"`
	IsToday      bool           `json:"isToday"`
	IsOtherMonth bool           `json:"isOtherMonth"`
	IsSelected   bool           `json:"isSelected"`
	Tasks        []CalendarTask `json:"tasks"`
}

// DayCount is one point of the daily completion series.
type DayCount struct {
	Date        string `json:"date"`
	Completadas int    `json:"completadas"`
	Total       int    `json:"total"`
}

// Bucket is a labelled count.
type Bucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Summary holds dashboard totals.
type Summary struct {
	Tasks        int `json:"tasks"`
	Completed    int `json:"completed"`
	Pending      int `json:"pending"`
	Participants int `json:"participants"`
	TotalPoints  int `json:"totalPoints"`
}

// MonthGrid lays out six weeks starting on the Sunday on or before the first
// day of ref's month. Dates are compared as calendar days in ref's location.
// selected may be nil.
func MonthGrid(ref, today time.Time, selected *time.Time, tasks []domain.Task, groupNames map[string]string, filter domain.TaskFilter) []Cell {
	loc := ref.Location()
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	todayKey := dayKey(today.In(loc))
	selectedKey := ""
	if selected != nil {
		selectedKey = dayKey(selected.In(loc))
	}

	byDay := make(map[string][]CalendarTask)
	for _, t := range tasks {
		due, ok := t.Due(loc)
		if !ok || !filter.Match(t) {
			continue
		}
		key := dayKey(due)
		entry := CalendarTask{Task: t}
		if t.GroupID != "" {
			entry.GroupName = groupNames[t.GroupID]
		}
		byDay[key] = append(byDay[key], entry)
	}

	cells := make([]Cell, 0, GridCells)
	for i := 0; i < GridCells; i++ {
		day := start.AddDate(0, 0, i)
		key := dayKey(day)
		dayTasks := byDay[key]
		if dayTasks == nil {
			dayTasks = []CalendarTask{}
		}
		cells = append(cells, Cell{
			Date:         key,
			IsToday:      key == todayKey,
			IsOtherMonth: day.Month() != first.Month(),
			IsSelected:   selectedKey != "" && key == selectedKey,
			Tasks:        dayTasks,
		})
	}
	return cells
}

// DailySeries counts due and completed tasks for each of the 14 days ending
// today. Tasks outside the window or without a readable date are ignored.
func DailySeries(tasks []domain.Task, today time.Time) []DayCount {
	loc := today.Location()
	end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)

	series := make([]DayCount, SeriesDays)
	index := make(map[string]int, SeriesDays)
	for i := 0; i < SeriesDays; i++ {
		key := dayKey(end.AddDate(0, 0, i-(SeriesDays-1)))
		series[i] = DayCount{Date: key}
		index[key] = i
	}

	for _, t := range tasks {
		due, ok := t.Due(loc)
		if !ok {
			continue
		}
		i, ok := index[dayKey(due)]
		if !ok {
			continue
		}
		series[i].Total++
		if t.Completed {
			series[i].Completadas++
		}
	}
	return series
}

// BySubject counts tasks per subject, largest first, capped at six buckets.
func BySubject(tasks []domain.Task) []Bucket {
	return topBuckets(tasks, func(t domain.Task) string {
		if !t.HasSubject() {
			return NoSubjectLabel
		}
		return t.Subject
	})
}

// ByGroup counts tasks per group name. Ids without a known group are shown as
// the id itself.
func ByGroup(tasks []domain.Task, groupNames map[string]string) []Bucket {
	return topBuckets(tasks, func(t domain.Task) string {
		if t.GroupID == "" {
			return NoGroupLabel
		}
		if name, ok := groupNames[t.GroupID]; ok && name != "" {
			return name
		}
		return t.GroupID
	})
}

// StatusTally splits tasks into completed and pending.
func StatusTally(tasks []domain.Task) []Bucket {
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return []Bucket{
		{Name: "Completadas", Value: completed},
		{Name: "Pendientes", Value: len(tasks) - completed},
	}
}

// Leaderboard orders participants by points, highest first. Ties keep their
// original order.
func Leaderboard(participants []domain.Participant) []domain.Participant {
	ranked := slices.Clone(participants)
	slices.SortStableFunc(ranked, func(a, b domain.Participant) int {
		return cmp.Compare(b.Points, a.Points)
	})
	if ranked == nil {
		ranked = []domain.Participant{}
	}
	return ranked
}

// TopParticipants returns the first n leaderboard entries.
func TopParticipants(participants []domain.Participant, n int) []domain.Participant {
	ranked := Leaderboard(participants)
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Upcoming returns up to n pending tasks due today or later, soonest first.
func Upcoming(tasks []domain.Task, now time.Time, filter domain.TaskFilter, n int) []domain.Task {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	type dated struct {
		task domain.Task
		due  time.Time
	}
	var pending []dated
	for _, t := range tasks {
		if t.Completed || !filter.Match(t) {
			continue
		}
		due, ok := t.Due(loc)
		if !ok || due.Before(today) {
			continue
		}
		pending = append(pending, dated{task: t, due: due})
	}
	slices.SortStableFunc(pending, func(a, b dated) int {
		return a.due.Compare(b.due)
	})

	out := make([]domain.Task, 0, min(n, len(pending)))
	for _, d := range pending {
		if len(out) == n {
			break
		}
		out = append(out, d.task)
	}
	return out
}

// Summarize totals tasks and participants.
func Summarize(tasks []domain.Task, participants []domain.Participant) Summary {
	s := Summary{Tasks: len(tasks), Participants: len(participants)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.Pending = s.Tasks - s.Completed
	for _, p := range participants {
		s.TotalPoints += p.Points
	}
	return s
}

func topBuckets(tasks []domain.Task, label func(domain.Task) string) []Bucket {
	counts := make(map[string]int)
	for _, t := range tasks {
		counts[label(t)]++
	}
	buckets := make([]Bucket, 0, len(counts))
	for name, value := range counts {
		buckets = append(buckets, Bucket{Name: name, Value: value})
	}
	slices.SortFunc(buckets, func(a, b Bucket) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	if len(buckets) > MaxBuckets {
		buckets = buckets[:MaxBuckets]
	}
	return buckets
}

func dayKey(t time.Time) string {
	return t.Format(dayLayout)
}
