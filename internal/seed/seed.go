// Package seed exposes the embedded demo data.
package seed

import (
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/fastygo/taskup/domain"
)

//go:embed seed.yaml
var raw []byte

type document struct {
	Tasks []struct {
		ID          string `yaml:"id"`
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		Subject     string `yaml:"subject"`
		Due         string `yaml:"due"`
		Points      int    `yaml:"points"`
		GroupID     string `yaml:"group_id"`
	} `yaml:"tasks"`
	Participants []struct {
		Name   string `yaml:"name"`
		School string `yaml:"school"`
		Avatar string `yaml:"avatar"`
		Points int    `yaml:"points"`
	} `yaml:"participants"`
}

// Data is the decoded seed document.
type Data struct {
	doc document
}

// Load decodes the embedded seed file.
func Load() (*Data, error) {
	return Parse(raw)
}

// Parse decodes a seed document from YAML.
func Parse(data []byte) (*Data, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode seed data: %w", err)
	}
	return &Data{doc: doc}, nil
}

// MustLoad panics if the embedded seed file is broken.
func MustLoad() *Data {
	d, err := Load()
	if err != nil {
		panic(err)
	}
	return d
}

// Tasks returns a fresh copy of the demo tasks.
func (d *Data) Tasks() []domain.Task {
	tasks := make([]domain.Task, 0, len(d.doc.Tasks))
	for _, t := range d.doc.Tasks {
		points := t.Points
		if points == 0 {
			points = domain.DefaultTaskPoints
		}
		id := t.ID
		if id == "" {
			id = uuid.NewString()
		}
		tasks = append(tasks, domain.Task{
			ID:          id,
			Title:       t.Title,
			Description: t.Description,
			Subject:     t.Subject,
			DueDate:     t.Due,
			Points:      points,
			GroupID:     t.GroupID,
		})
	}
	return tasks
}

// Participants returns the sample leaderboard with fresh ids.
func (d *Data) Participants() []domain.Participant {
	participants := make([]domain.Participant, 0, len(d.doc.Participants))
	for _, p := range d.doc.Participants {
		participants = append(participants, domain.Participant{
			ID:     uuid.NewString(),
			Name:   p.Name,
			School: p.School,
			Avatar: p.Avatar,
			Points: domain.ClampPoints(p.Points),
		})
	}
	return participants
}
