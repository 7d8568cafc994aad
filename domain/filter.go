package domain

// Filter values shared by the calendar and upcoming views.
const (
	FilterAll       = "all"
	StatusPending   = "pending"
	StatusCompleted = "completed"
	NoSubject       = "__NONE__"
	NoGroup         = "__NO_GROUP__"
)

// TaskFilter narrows tasks by subject, group and completion state. Empty
// fields and FilterAll accept everything; NoSubject and NoGroup select tasks
// without subject or group.
type TaskFilter struct {
	Subject string
	Group   string
	Status  string
}

// Match reports whether t passes the filter.
func (f TaskFilter) Match(t Task) bool {
	if !matchOptional(f.Subject, t.Subject, NoSubject) {
		return false
	}
	if !matchOptional(f.Group, t.GroupID, NoGroup) {
		return false
	}
	switch f.Status {
	case StatusPending:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	}
	return true
}

func matchOptional(want, got, none string) bool {
	switch want {
	case "", FilterAll:
		return true
	case none:
		return got == ""
	default:
		return got == want
	}
}
