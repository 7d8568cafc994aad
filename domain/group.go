package domain

import "strings"

// Group is a shared workspace joined by presenting its key.
//
// Tasks is kept in the persisted layout but is never authoritative: readers
// derive a group's tasks from the task collection by GroupID.
type Group struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatorID   string `json:"creatorId"`
	Key         string `json:"key"`
	Tasks       []Task `json:"tasks"`
}

// NewGroup carries the caller-provided fields of a group about to be created.
type NewGroup struct {
	Name        string
	Description string
	CreatorID   string
	Key         string
}

// Matches reports whether nameOrID identifies the group, by exact id or
// case-insensitive name.
func (g *Group) Matches(nameOrID string) bool {
	if g == nil {
		return false
	}
	return g.ID == nameOrID || strings.EqualFold(g.Name, nameOrID)
}
