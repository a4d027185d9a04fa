// Package fetcher loads list resources from the fines API and maps them to
// view rows.
package fetcher

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"time"

	"finedesk/internal/adapters/api"
	"finedesk/internal/models"
	"finedesk/internal/ports"
	"finedesk/internal/services/mapper"
)

const DefaultFallback = "Failed to fetch data."

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Resource binds an endpoint to the mapper for its records.
type Resource struct {
	Name     string
	Method   string
	Path     string
	Query    url.Values
	Body     any
	Envelope []string
	Mapper   mapper.Mapper
	Fallback string
}

type State struct {
	Status  Status           `json:"status"`
	Rows    []models.ViewRow `json:"rows"`
	Message string           `json:"message,omitempty"`

	// ServerMessage is the "message" of a successful response, if any.
	ServerMessage string `json:"-"`
	Err           error  `json:"-"`
}

type Service struct {
	API ports.API
}

func NewService(a ports.API) *Service { return &Service{API: a} }

// Fetch never fails: transport and server errors become an error State with
// a user facing message and no rows.
func (s *Service) Fetch(ctx context.Context, sess models.Session, res Resource) State {
	t0 := time.Now()
	method := res.Method
	if method == "" {
		method = http.MethodGet
	}
	log.Printf("[FETCH][START] resource=%s method=%s path=%q", res.Name, method, res.Path)

	body, err := s.API.JSON(ctx, sess, ports.Request{
		Method: method,
		Path:   res.Path,
		Query:  res.Query,
		Body:   res.Body,
	})
	if err != nil {
		fallback := res.Fallback
		if fallback == "" {
			fallback = DefaultFallback
		}
		log.Printf("[FETCH][ERR] resource=%s err=%v took=%s", res.Name, err, time.Since(t0))
		return State{
			Status:  StatusError,
			Rows:    []models.ViewRow{},
			Message: api.Message(err, fallback),
			Err:     err,
		}
	}

	items := Unwrap(body, res.Envelope...)
	rows := mapper.MapAll(res.Mapper, items)
	log.Printf("[FETCH][DONE] resource=%s mapper=%s rows=%d took=%s", res.Name, res.Mapper.Type(), len(rows), time.Since(t0))

	return State{
		Status:        StatusSuccess,
		Rows:          rows,
		ServerMessage: serverMessage(body),
	}
}
