package storage

import (
	"database/sql"
	"time"
)

// Session is one ingested flight recording.
type Session struct {
	ID        int64     `json:"ID"`
	CreatedAt time.Time `json:"createdAt"`
	Name      string    `json:"name"`     // Operator-given label
	Source    string    `json:"source"`   // Origin of the recording, e.g. the CSV path
	Aircraft  *string   `json:"aircraft"` // Aircraft parameters as JSON, if recorded
}

// Run is one analysis pass over a session's samples.
type Run struct {
	ID         int64     `json:"ID"`
	SessionID  int64     `json:"sessionID"`
	CreatedAt  time.Time `json:"createdAt"`
	Mode       string    `json:"mode"`                 // Velocity estimation mode used
	Options    *string   `json:"options,omitempty"`    // Full pipeline options as JSON
	SampleRate float64   `json:"sampleRate,omitempty"` // Hz used by the smoothing stage
}

type sessionRow struct {
	ID        int64
	CreatedAt time.Time
	Name      string
	Source    string
	Aircraft  sql.NullString
}

func (r sessionRow) toSession() *Session {
	s := &Session{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		Name:      r.Name,
		Source:    r.Source,
	}
	if r.Aircraft.Valid {
		s.Aircraft = &r.Aircraft.String
	}
	return s
}

type runRow struct {
	ID         int64
	SessionID  int64
	CreatedAt  time.Time
	Mode       string
	Options    sql.NullString
	SampleRate sql.NullFloat64
}

func (r runRow) toRun() *Run {
	run := &Run{
		ID:        r.ID,
		SessionID: r.SessionID,
		CreatedAt: r.CreatedAt,
		Mode:      r.Mode,
	}
	if r.Options.Valid {
		run.Options = &r.Options.String
	}
	if r.SampleRate.Valid {
		run.SampleRate = r.SampleRate.Float64
	}
	return run
}
