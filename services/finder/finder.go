package finder

import (
	"context"
	"strings"

	"gymdesk/models"

	"go.uber.org/zap"
)

// Searcher runs the backend's assignable-clients query.
type Searcher interface {
	SearchAssignableClients(ctx context.Context, q models.AssignableClientsQuery) (*models.AssignableClientsPage, error)
}

// AssignableClientFinder looks up clients that may be assigned to a slot.
// Paging bounds are the backend's business; the query is passed through as given.
type AssignableClientFinder struct {
	Searcher Searcher
	Logger   *zap.Logger
}

func NewAssignableClientFinder(searcher Searcher, logger *zap.Logger) *AssignableClientFinder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignableClientFinder{Searcher: searcher, Logger: logger}
}

// Search returns one page. Results are not merged into the client directory.
func (f *AssignableClientFinder) Search(ctx context.Context, q models.AssignableClientsQuery) (*models.AssignableClientsPage, error) {
	q.FreeText = strings.TrimSpace(q.FreeText)
	page, err := f.Searcher.SearchAssignableClients(ctx, q)
	if err != nil {
		return nil, err
	}
	if page.Data == nil {
		page.Data = []models.ClientRecord{}
	}
	f.Logger.Debug("assignable clients page",
		zap.String("q", q.FreeText), zap.Int("page", page.Page), zap.Int("returned", len(page.Data)), zap.Int("total", page.Total))
	return page, nil
}
