package finder

import (
	"context"
	"errors"
	"testing"

	"gymdesk/models"
)

type stubSearcher struct {
	got  models.AssignableClientsQuery
	page *models.AssignableClientsPage
	err  error
}

func (s *stubSearcher) SearchAssignableClients(_ context.Context, q models.AssignableClientsQuery) (*models.AssignableClientsPage, error) {
	s.got = q
	return s.page, s.err
}

func TestSearchPassesQueryThrough(t *testing.T) {
	s := &stubSearcher{page: &models.AssignableClientsPage{Page: 0, Limit: 500, Total: 0}}
	f := NewAssignableClientFinder(s, nil)

	page, err := f.Search(context.Background(), models.AssignableClientsQuery{FreeText: "  perez ", Page: 0, PageSize: 500})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if s.got.FreeText != "perez" || s.got.Page != 0 || s.got.PageSize != 500 {
		t.Errorf("Unexpected query sent %+v", s.got)
	}
	if page.Data == nil {
		t.Errorf("Expected empty, non-nil data")
	}
}

func TestSearchPropagatesErrors(t *testing.T) {
	want := errors.New("down")
	f := NewAssignableClientFinder(&stubSearcher{err: want}, nil)
	if _, err := f.Search(context.Background(), models.AssignableClientsQuery{Page: 1, PageSize: 10}); !errors.Is(err, want) {
		t.Errorf("Expected %v, got %v", want, err)
	}
}
