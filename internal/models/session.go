package models

import (
	"strconv"
	"time"
)

type Role string

const (
	RoleDriver  Role = "driver"
	RoleOfficer Role = "officer"
	RoleAdmin   Role = "admin"
)

// Session is the authenticated caller. Every upstream call takes it
// explicitly; Token is the bearer sent to the fines API.
type Session struct {
	ID        int64
	UserID    int64
	Role      Role
	Token     string
	ExpiresAt *time.Time
}

func (s Session) Key() string { return strconv.FormatInt(s.ID, 10) }

func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.Before(now)
}
