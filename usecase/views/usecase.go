package views

import (
	"time"

	"github.com/fastygo/taskup/domain"
)

type TaskReader interface {
	List() []domain.Task
}

type GroupReader interface {
	Names() map[string]string
}

type ParticipantReader interface {
	List() []domain.Participant
}

// Calendar is the month grid for one month.
type Calendar struct {
	Month string `json:"month"`
	Cells []Cell `json:"cells"`
}

// Analytics bundles the dashboard charts.
type Analytics struct {
	Daily           []DayCount           `json:"daily"`
	BySubject       []Bucket             `json:"bySubject"`
	ByGroup         []Bucket             `json:"byGroup"`
	Status          []Bucket             `json:"status"`
	TopParticipants []domain.Participant `json:"topParticipants"`
	Summary         Summary              `json:"summary"`
}

// UseCase reads the live collections and renders views in a fixed location.
type UseCase struct {
	tasks        TaskReader
	groups       GroupReader
	participants ParticipantReader
	loc          *time.Location
	now          func() time.Time
}

func New(tasks TaskReader, groups GroupReader, participants ParticipantReader, loc *time.Location) *UseCase {
	if loc == nil {
		loc = time.Local
	}
	return &UseCase{
		tasks:        tasks,
		groups:       groups,
		participants: participants,
		loc:          loc,
		now:          time.Now,
	}
}

// WithClock replaces the time source and returns uc.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Today returns the current time in the configured location.
func (uc *UseCase) Today() time.Time {
	return uc.now().In(uc.loc)
}

// Location returns the configured time zone.
func (uc *UseCase) Location() *time.Location {
	return uc.loc
}

// Calendar renders the month containing month. A zero month means the current one.
func (uc *UseCase) Calendar(month time.Time, selected *time.Time, filter domain.TaskFilter) Calendar {
	today := uc.Today()
	if month.IsZero() {
		month = today
	}
	month = month.In(uc.loc)
	return Calendar{
		Month: month.Format("2006-01"),
		Cells: MonthGrid(month, today, selected, uc.tasks.List(), uc.groups.Names(), filter),
	}
}

func (uc *UseCase) Analytics() Analytics {
	tasks := uc.tasks.List()
	participants := uc.participants.List()
	names := uc.groups.Names()
	return Analytics{
		Daily:           DailySeries(tasks, uc.Today()),
		BySubject:       BySubject(tasks),
		ByGroup:         ByGroup(tasks, names),
		Status:          StatusTally(tasks),
		TopParticipants: TopParticipants(participants, DefaultTop),
		Summary:         Summarize(tasks, participants),
	}
}

func (uc *UseCase) Leaderboard() []domain.Participant {
	return Leaderboard(uc.participants.List())
}

// Upcoming lists the next n pending tasks; n <= 0 uses the default of three.
func (uc *UseCase) Upcoming(filter domain.TaskFilter, n int) []domain.Task {
	if n <= 0 {
		n = DefaultUpcoming
	}
	return Upcoming(uc.tasks.List(), uc.Today(), filter, n)
}

func (uc *UseCase) Summary() Summary {
	return Summarize(uc.tasks.List(), uc.participants.List())
}
