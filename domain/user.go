package domain

// User represents the student signed in on this installation.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	Level       *int   `json:"level,omitempty"`
	Points      *int   `json:"points,omitempty"`
}

// UserPatch lists profile fields to overwrite; nil means keep.
type UserPatch struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	DisplayName *string `json:"displayName,omitempty"`
	Level       *int    `json:"level,omitempty"`
	Points      *int    `json:"points,omitempty"`
}

// Apply merges the patch into u.
func (p UserPatch) Apply(u *User) {
	if u == nil {
		return
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	if p.Level != nil {
		level := *p.Level
		u.Level = &level
	}
	if p.Points != nil {
		points := *p.Points
		u.Points = &points
	}
}
