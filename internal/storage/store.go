// Package storage persists flight recordings and their analysis results in a
// per-project sqlite database: sessions hold raw sensor samples, runs hold
// the coefficient series computed over them. The pipeline itself is stateless;
// persistence exists so ingest, analysis and plotting can happen separately.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/airborne-labs/aerocoef/internal/aero"
	"github.com/airborne-labs/aerocoef/internal/flightdata"
)

// sqlite limits bound variables per statement; batch inserts are chunked to
// stay well under the historical 999 cap.
const insertChunkRows = 200

// Store handles database operations.
type Store struct {
	dbPath string

	writeDB     *sql.DB
	writeDBOnce sync.Once
	writeDBErr  error

	readDB     *sql.DB
	readDBOnce sync.Once
	readDBErr  error

	closeOnce sync.Once
	closeErr  error
}

// New creates a store for the given database path. Connections open lazily:
// the write connection initializes the schema on first use, the read
// connection opens read-only.
func New(dbPath string) *Store {
	return &Store{dbPath: dbPath}
}

func runSQLCommand(db *sql.DB, sql string) error {
	_, err := db.Exec(sql)
	return err
}

func (s *Store) getWriteDB() (*sql.DB, error) {
	s.writeDBOnce.Do(func() {
		db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?%s", s.dbPath, "_journal_mode=WAL&_synchronous=NORMAL"))
		if err != nil {
			s.writeDBErr = fmt.Errorf("opening write connection: %w", err)
			return
		}

		if err = runSQLCommand(db, initSchemaSQL); err != nil {
			_ = db.Close()
			s.writeDBErr = fmt.Errorf("initializing schema: %w", err)
			return
		}

		s.writeDB = db
	})

	return s.writeDB, s.writeDBErr
}

func (s *Store) getReadDB() (*sql.DB, error) {
	s.readDBOnce.Do(func() {
		db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?%s", s.dbPath, "mode=ro"))
		if err != nil {
			s.readDBErr = fmt.Errorf("opening read connection: %w", err)
			return
		}
		s.readDB = db
	})

	return s.readDB, s.readDBErr
}

// CreateSession records a new recording session and returns its ID. params
// may be the zero value when the operator has not supplied aircraft
// parameters at ingest time.
func (s *Store) CreateSession(ctx context.Context, name, source string, params *flightdata.AircraftParameters) (sessionID int64, err error) {
	var aircraft sql.NullString
	if params != nil {
		p, err2 := json.Marshal(params)
		if err2 != nil {
			return 0, fmt.Errorf("marshaling aircraft parameters: %w", err2)
		}
		aircraft.Valid = true
		aircraft.String = string(p)
	}

	db, err := s.getWriteDB()
	if err != nil {
		err = fmt.Errorf("getting write connection: %w", err)
		return
	}

	stmt, err := db.PrepareContext(ctx, insertSessionSQL)
	if err != nil {
		err = fmt.Errorf("preparing statement: %w", err)
		return
	}
	defer closeWithError(stmt, &err)

	result, err := stmt.ExecContext(ctx, name, source, aircraft)
	if err != nil {
		err = fmt.Errorf("inserting session: %w", err)
		return
	}

	sessionID, err = result.LastInsertId()
	if err != nil {
		err = fmt.Errorf("getting session ID: %w", err)
	}
	return
}

// Session loads one session by ID.
func (s *Store) Session(ctx context.Context, id int64) (session *Session, err error) {
	db, err := s.getReadDB()
	if err != nil {
		err = fmt.Errorf("getting read connection: %w", err)
		return
	}

	stmt, err := db.PrepareContext(ctx, selectSessionSQL)
	if err != nil {
		err = fmt.Errorf("preparing statement: %w", err)
		return
	}
	defer closeWithError(stmt, &err)

	var row sessionRow
	if err = stmt.QueryRowContext(ctx, id).Scan(&row.ID, &row.CreatedAt, &row.Name, &row.Source, &row.Aircraft); err != nil {
		err = fmt.Errorf("scanning session: %w", err)
		return
	}
	return row.toSession(), nil
}

// Sessions lists all recorded sessions.
func (s *Store) Sessions(ctx context.Context) (sessions []*Session, err error) {
	db, err := s.getReadDB()
	if err != nil {
		err = fmt.Errorf("getting read connection: %w", err)
		return
	}

	rows, err := db.QueryContext(ctx, selectSessionsSQL)
	if err != nil {
		err = fmt.Errorf("querying sessions: %w", err)
		return
	}
	defer closeWithError(rows, &err)

	for rows.Next() {
		var row sessionRow
		if err = rows.Scan(&row.ID, &row.CreatedAt, &row.Name, &row.Source, &row.Aircraft); err != nil {
			err = fmt.Errorf("scanning session: %w", err)
			return
		}
		sessions = append(sessions, row.toSession())
	}
	err = rows.Err()
	return
}

// StoreSamples batch-inserts a recording's samples for a session. Channel
// maps are persisted as JSON so the loose per-recording schema survives the
// round trip unchanged.
func (s *Store) StoreSamples(ctx context.Context, sessionID int64, samples []flightdata.SensorSample) (err error) {
	if len(samples) == 0 {
		return
	}

	db, err := s.getWriteDB()
	if err != nil {
		return fmt.Errorf("getting write connection: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer rollbackWithError(tx, &err)

	for offset := 0; offset < len(samples); offset += insertChunkRows {
		chunk := samples[offset:min(offset+insertChunkRows, len(samples))]

		values := make([]interface{}, 0, len(chunk)*4)
		var sb strings.Builder
		sb.WriteString(insertSampleSQL)

		for i, sample := range chunk {
			channels, err := json.Marshal(sample.Channels)
			if err != nil {
				return fmt.Errorf("marshaling channels for row %d: %w", offset+i, err)
			}
			values = append(values, sessionID, offset+i, sample.Timestamp, string(channels))

			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("(?, ?, ?, ?)")
		}

		if _, err = tx.ExecContext(ctx, sb.String(), values...); err != nil {
			return fmt.Errorf("batch inserting samples: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// CreateRun records an analysis pass over a session and returns its ID.
// options is persisted as JSON for later inspection.
func (s *Store) CreateRun(ctx context.Context, sessionID int64, mode string, options any, sampleRate float64) (runID int64, err error) {
	var optionsData sql.NullString
	if options != nil {
		p, err2 := json.Marshal(options)
		if err2 != nil {
			return 0, fmt.Errorf("marshaling run options: %w", err2)
		}
		optionsData.Valid = true
		optionsData.String = string(p)
	}

	db, err := s.getWriteDB()
	if err != nil {
		err = fmt.Errorf("getting write connection: %w", err)
		return
	}

	stmt, err := db.PrepareContext(ctx, insertRunSQL)
	if err != nil {
		err = fmt.Errorf("preparing statement: %w", err)
		return
	}
	defer closeWithError(stmt, &err)

	result, err := stmt.ExecContext(ctx, sessionID, mode, optionsData, sampleRate)
	if err != nil {
		err = fmt.Errorf("inserting run: %w", err)
		return
	}

	runID, err = result.LastInsertId()
	if err != nil {
		err = fmt.Errorf("getting run ID: %w", err)
	}
	return
}

// Runs lists the analysis passes recorded for a session.
func (s *Store) Runs(ctx context.Context, sessionID int64) (runs []*Run, err error) {
	db, err := s.getReadDB()
	if err != nil {
		err = fmt.Errorf("getting read connection: %w", err)
		return
	}

	rows, err := db.QueryContext(ctx, selectRunsSQL, sessionID)
	if err != nil {
		err = fmt.Errorf("querying runs: %w", err)
		return
	}
	defer closeWithError(rows, &err)

	for rows.Next() {
		var row runRow
		if err = rows.Scan(&row.ID, &row.SessionID, &row.CreatedAt, &row.Mode, &row.Options, &row.SampleRate); err != nil {
			err = fmt.Errorf("scanning run: %w", err)
			return
		}
		runs = append(runs, row.toRun())
	}
	err = rows.Err()
	return
}

// StoreCoefficients batch-inserts a run's coefficient series.
func (s *Store) StoreCoefficients(ctx context.Context, runID int64, series aero.Series) (err error) {
	if len(series) == 0 {
		return
	}

	db, err := s.getWriteDB()
	if err != nil {
		return fmt.Errorf("getting write connection: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer rollbackWithError(tx, &err)

	for offset := 0; offset < len(series); offset += insertChunkRows {
		chunk := series[offset:min(offset+insertChunkRows, len(series))]

		values := make([]interface{}, 0, len(chunk)*6)
		var sb strings.Builder
		sb.WriteString(insertCoefficientSQL)

		for i, c := range chunk {
			values = append(values, runID, c.Timestamp, c.CL, c.CD, c.Velocity, c.DynamicPressure)
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("(?, ?, ?, ?, ?, ?)")
		}

		if _, err = tx.ExecContext(ctx, sb.String(), values...); err != nil {
			return fmt.Errorf("batch inserting coefficients: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Close closes both connections, creating read indexes on the write side
// first so later readers benefit from them.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		var writeErr, readErr error

		if s.writeDB != nil {
			_ = runSQLCommand(s.writeDB, initIndexesSQL)

			writeErr = s.writeDB.Close()
			s.writeDB = nil
		}

		if s.readDB != nil {
			readErr = s.readDB.Close()
			s.readDB = nil
		}

		switch {
		case writeErr != nil && readErr != nil:
			s.closeErr = errors.Join(writeErr, readErr)
		case writeErr != nil:
			s.closeErr = writeErr
		case readErr != nil:
			s.closeErr = readErr
		}
	})

	return s.closeErr
}
