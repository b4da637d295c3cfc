package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/drydock-app/drydock/internal/database"
	"github.com/drydock-app/drydock/internal/database/repository"
)

// NoteService is the business layer for notes.
type NoteService struct {
	Notes *repository.NoteRepo
}

// Create validates input and stores a new note.
func (s *NoteService) Create(ctx context.Context, title, details string) (int64, error) {
	if err := validateNote(title, details); err != nil {
		return 0, err
	}
	return s.Notes.Insert(ctx, strings.TrimSpace(title), details, database.Now())
}

// Update validates input and rewrites an existing note.
func (s *NoteService) Update(ctx context.Context, id int64, title, details string) error {
	if err := validateNote(title, details); err != nil {
		return err
	}
	return s.Notes.Update(ctx, id, strings.TrimSpace(title), details, database.Now())
}

func (s *NoteService) Delete(ctx context.Context, id int64) error {
	return s.Notes.Delete(ctx, id)
}

func (s *NoteService) Get(ctx context.Context, id int64) (repository.Note, error) {
	return s.Notes.Get(ctx, id)
}

func (s *NoteService) List(ctx context.Context) ([]repository.Note, error) {
	return s.Notes.List(ctx)
}

// Search matches title or details case-insensitively. Title matches rank
// before body matches; ties break on edit distance between query and title.
func (s *NoteService) Search(ctx context.Context, query string) ([]repository.Note, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx)
	}

	all, err := s.Notes.List(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	type ranked struct {
		note     repository.Note
		inTitle  bool
		distance int
	}
	var hits []ranked
	for _, n := range all {
		title := strings.ToLower(n.Title)
		inTitle := strings.Contains(title, q)
		if !inTitle && !strings.Contains(strings.ToLower(n.Details), q) {
			continue
		}
		hits = append(hits, ranked{note: n, inTitle: inTitle, distance: levenshtein.ComputeDistance(q, title)})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].inTitle != hits[j].inTitle {
			return hits[i].inTitle
		}
		return hits[i].distance < hits[j].distance
	})

	out := make([]repository.Note, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.note)
	}
	return out, nil
}

func validateNote(title, details string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("note title cannot be empty")
	}
	if strings.TrimSpace(details) == "" {
		return fmt.Errorf("note details cannot be empty")
	}
	return nil
}
