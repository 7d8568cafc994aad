package transport

import (
	"strings"

	"github.com/fastygo/taskup/domain"
	"github.com/fastygo/taskup/pkg/textclean"
)

type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// User builds the profile to register. Free text is stripped of markup.
func (r RegisterRequest) User() domain.User {
	return domain.User{
		Name:        textclean.Plain(r.Name),
		Email:       strings.TrimSpace(r.Email),
		DisplayName: textclean.Plain(r.DisplayName),
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileUpdateRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	DisplayName *string `json:"displayName"`
	Level       *int    `json:"level"`
	Points      *int    `json:"points"`
}

func (r ProfileUpdateRequest) Patch() domain.UserPatch {
	var email *string
	if r.Email != nil {
		trimmed := strings.TrimSpace(*r.Email)
		email = &trimmed
	}
	return domain.UserPatch{
		Name:        textclean.PlainPtr(r.Name),
		Email:       email,
		DisplayName: textclean.PlainPtr(r.DisplayName),
		Level:       r.Level,
		Points:      r.Points,
	}
}

// TaskRequest is shared by create and update; absent fields are nil.
type TaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Subject     *string `json:"materia"`
	DueDate     *string `json:"fechaEntrega"`
	Completed   *bool   `json:"completada"`
	Points      *int    `json:"points"`
	GroupID     *string `json:"groupId"`
}

// NewTask validates the request for creation.
func (r TaskRequest) NewTask() (domain.NewTask, error) {
	title := textclean.Plain(deref(r.Title))
	if title == "" {
		return domain.NewTask{}, domain.ErrTitleRequired
	}
	return domain.NewTask{
		Title:       title,
		Description: textclean.Plain(deref(r.Description)),
		Subject:     textclean.Plain(deref(r.Subject)),
		DueDate:     strings.TrimSpace(deref(r.DueDate)),
		GroupID:     strings.TrimSpace(deref(r.GroupID)),
		Completed:   r.Completed,
		Points:      r.Points,
	}, nil
}

// Patch validates the request for an update. A title, when present, must not
// be blank.
func (r TaskRequest) Patch() (domain.TaskPatch, error) {
	title := textclean.PlainPtr(r.Title)
	if title != nil && *title == "" {
		return domain.TaskPatch{}, domain.ErrTitleRequired
	}
	return domain.TaskPatch{
		Title:       title,
		Description: textclean.PlainPtr(r.Description),
		Subject:     textclean.PlainPtr(r.Subject),
		DueDate:     trimPtr(r.DueDate),
		Completed:   r.Completed,
		Points:      r.Points,
		GroupID:     trimPtr(r.GroupID),
	}, nil
}

type GroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Key         string `json:"key"`
}

func (r GroupRequest) NewGroup(creatorID string) (domain.NewGroup, error) {
	name := textclean.Plain(r.Name)
	if name == "" {
		return domain.NewGroup{}, domain.ErrNameRequired
	}
	return domain.NewGroup{
		Name:        name,
		Description: textclean.Plain(r.Description),
		CreatorID:   creatorID,
		Key:         r.Key,
	}, nil
}

type JoinGroupRequest struct {
	NameOrID string `json:"nameOrId"`
	Key      string `json:"key"`
}

type ParticipantRequest struct {
	Name   string `json:"name"`
	School string `json:"school"`
	Avatar string `json:"avatar"`
}

func (r ParticipantRequest) NewParticipant() (domain.NewParticipant, error) {
	name := textclean.Plain(r.Name)
	if name == "" {
		return domain.NewParticipant{}, domain.ErrNameRequired
	}
	return domain.NewParticipant{
		Name:   name,
		School: textclean.Plain(r.School),
		Avatar: strings.TrimSpace(r.Avatar),
	}, nil
}

// PointsRequest carries a delta for POST and an absolute value for PUT.
type PointsRequest struct {
	Delta  *int `json:"delta"`
	Points *int `json:"points"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}
