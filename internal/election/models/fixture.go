package models

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	id "ballotbox/pkg/domain"
)

type electionFile struct {
	ID         string          `yaml:"id"`
	Title      string          `yaml:"title"`
	Status     string          `yaml:"status"`
	Candidates []candidateFile `yaml:"candidates"`
}

type candidateFile struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Party       string `yaml:"party"`
	Description string `yaml:"description"`
}

// LoadFile reads an election definition from a YAML file.
func LoadFile(path string) (Election, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Election{}, fmt.Errorf("read election file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML election definition. Status defaults to
// open.
func Parse(raw []byte) (Election, error) {
	var f electionFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return Election{}, fmt.Errorf("decode election file: %w", err)
	}

	e := Election{
		ID:     id.ElectionID(f.ID),
		Title:  f.Title,
		Status: StatusOpen,
	}
	if f.Status != "" {
		status, err := ParseStatus(f.Status)
		if err != nil {
			return Election{}, err
		}
		e.Status = status
	}
	for _, c := range f.Candidates {
		e.Candidates = append(e.Candidates, Candidate{
			ID:          id.CandidateID(c.ID),
			Name:        c.Name,
			Party:       c.Party,
			Description: c.Description,
		})
	}
	if err := e.Validate(); err != nil {
		return Election{}, err
	}
	return e, nil
}

// Default is the built-in student council ballot used when no election file
// is configured.
func Default() Election {
	return Election{
		ID:     "student-council-2026",
		Title:  "Student Council President 2026",
		Status: StatusOpen,
		Candidates: []Candidate{
			{ID: "candidate-1", Name: "Alex Chen", Party: "Progressive Students", Description: "Improve campus sustainability and expand study spaces."},
			{ID: "candidate-2", Name: "Maria Rodriguez", Party: "Unity Coalition", Description: "Strengthen student support services and mental health resources."},
			{ID: "candidate-3", Name: "James Thompson", Party: "Independent", Description: "Increase transparency in student government spending."},
			{ID: "candidate-4", Name: "Emily Davis", Party: "Student Voice", Description: "Expand extracurricular funding and club support."},
		},
	}
}
