package screens

import (
	"context"

	"finedesk/internal/models"
	"finedesk/internal/services/fetcher"
)

// MyFines is the driver's list of fines issued to them.
type MyFines struct {
	list *fetcher.Collection
}

func NewMyFines(d Deps) *MyFines {
	return &MyFines{list: fetcher.NewCollection(d.Fetcher, myFinesResource())}
}

func (s *MyFines) Load(ctx context.Context, sess models.Session) fetcher.State {
	return s.list.Load(ctx, sess)
}

func (s *MyFines) State() fetcher.State { return s.list.State() }
