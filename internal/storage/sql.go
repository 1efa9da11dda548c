package storage

const initSchemaSQL = `
CREATE TABLE IF NOT EXISTS sessions (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    name        TEXT NOT NULL,
    source      TEXT NOT NULL,
    aircraft    TEXT
);

CREATE TABLE IF NOT EXISTS samples (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id  INTEGER NOT NULL REFERENCES sessions(id),
    idx         INTEGER NOT NULL,
    timestamp   REAL NOT NULL,
    channels    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id   INTEGER NOT NULL REFERENCES sessions(id),
    created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    mode         TEXT NOT NULL,
    options      TEXT,
    sample_rate  REAL
);

CREATE TABLE IF NOT EXISTS coefficients (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id           INTEGER NOT NULL REFERENCES runs(id),
    timestamp        REAL NOT NULL,
    cl               REAL NOT NULL,
    cd               REAL NOT NULL,
    velocity         REAL NOT NULL,
    dynamic_pressure REAL NOT NULL
);`

const initIndexesSQL = `
CREATE INDEX IF NOT EXISTS idx_samples_session_ts ON samples(session_id, timestamp);
CREATE INDEX IF NOT EXISTS idx_coefficients_run_ts ON coefficients(run_id, timestamp);
CREATE INDEX IF NOT EXISTS idx_runs_session ON runs(session_id);`

const (
	insertSessionSQL = `
INSERT INTO sessions (
                      created_at,
                      name,
                      source,
                      aircraft)
VALUES (CURRENT_TIMESTAMP, ?, ?, ?)`

	selectSessionSQL = `
SELECT
    id,
    created_at,
    name,
    source,
    aircraft
FROM sessions
WHERE
    id = ?`

	selectSessionsSQL = `
SELECT
    id,
    created_at,
    name,
    source,
    aircraft
FROM sessions`

	insertRunSQL = `
INSERT INTO runs (
                  session_id,
                  created_at,
                  mode,
                  options,
                  sample_rate)
VALUES (?, CURRENT_TIMESTAMP, ?, ?, ?)`

	selectRunsSQL = `
SELECT
    id,
    session_id,
    created_at,
    mode,
    options,
    sample_rate
FROM runs
WHERE
    session_id = ?
ORDER BY id`

	insertSampleSQL = `
INSERT INTO samples (session_id,
                     idx,
                     timestamp,
                     channels)
VALUES `

	insertCoefficientSQL = `
INSERT INTO coefficients (run_id,
                          timestamp,
                          cl,
                          cd,
                          velocity,
                          dynamic_pressure)
VALUES `

	selectSamplesSQL = `
SELECT
    timestamp,
    channels
FROM samples
WHERE
    session_id = ?`

	selectCoefficientsSQL = `
SELECT
    timestamp,
    cl,
    cd,
    velocity,
    dynamic_pressure
FROM coefficients
WHERE
    run_id = ?`
)
