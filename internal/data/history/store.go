package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const (
	driverName  = "sqlite"
	maxAttempts = 5
)

// Store persists conversion runs in a local sqlite database.
type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// SaveRun records one run together with its pass breakdown in a single
// transaction.
func (s *Store) SaveRun(run Run, passes []PassTiming) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(run.RunID) == "" {
		return fmt.Errorf("run id must not be empty")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	if run.SchemaVersion == 0 {
		run.SchemaVersion = SchemaVersion
	}
	if run.SchemaVersion != SchemaVersion {
		return fmt.Errorf("unsupported run schema version %d", run.SchemaVersion)
	}

	return s.withRetry("save run", func() error {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
INSERT INTO runs (run_id, library, schema_version, started_at_utc, duration_ns, file_count, warning_count, failed)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(run_id) DO UPDATE SET
  library=excluded.library,
  duration_ns=excluded.duration_ns,
  file_count=excluded.file_count,
  warning_count=excluded.warning_count,
  failed=excluded.failed
`,
			run.RunID,
			run.Library,
			run.SchemaVersion,
			run.StartedAt.UTC().Format(time.RFC3339Nano),
			run.Duration.Nanoseconds(),
			run.FileCount,
			run.WarningCount,
			boolToInt(run.Failed),
		)
		if err != nil {
			_ = tx.Rollback()
			return err
		}

		for i, p := range passes {
			ordinal := p.Ordinal
			if ordinal == 0 {
				ordinal = i
			}
			if _, err := tx.Exec(`
INSERT INTO pass_timings (run_id, pass, ordinal, duration_ns, changed)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(run_id, ordinal) DO UPDATE SET
  pass=excluded.pass,
  duration_ns=excluded.duration_ns,
  changed=excluded.changed
`, run.RunID, p.Pass, ordinal, p.Duration.Nanoseconds(), boolToInt(p.Changed)); err != nil {
				_ = tx.Rollback()
				return err
			}
		}

		return tx.Commit()
	})
}

// LoadRuns returns runs for one library, oldest first. An empty library
// selects every run. since narrows the window when non-zero.
func (s *Store) LoadRuns(library string, since time.Time) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
SELECT run_id, library, schema_version, started_at_utc, duration_ns, file_count, warning_count, failed
FROM runs
WHERE 1=1`
	args := make([]any, 0, 2)
	if strings.TrimSpace(library) != "" {
		query += " AND library = ?"
		args = append(args, library)
	}
	if !since.IsZero() {
		query += " AND started_at_utc >= ?"
		args = append(args, since.UTC().Format(time.RFC3339Nano))
	}
	query += " ORDER BY started_at_utc ASC"

	var rows *sql.Rows
	err := s.withRetry("load runs", func() error {
		var qErr error
		rows, qErr = s.db.Query(query, args...)
		return qErr
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		var (
			run        Run
			startedRaw string
			durationNS int64
			failed     int
		)
		if err := rows.Scan(
			&run.RunID,
			&run.Library,
			&run.SchemaVersion,
			&startedRaw,
			&durationNS,
			&run.FileCount,
			&run.WarningCount,
			&failed,
		); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}

		started, err := time.Parse(time.RFC3339Nano, startedRaw)
		if err != nil {
			return nil, fmt.Errorf("parse run timestamp %q: %w", startedRaw, err)
		}
		run.StartedAt = started.UTC()
		run.Duration = time.Duration(durationNS)
		run.Failed = failed != 0

		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run rows: %w", err)
	}

	return runs, nil
}

// LoadPassTimings returns the pass breakdown of one run in pass order.
func (s *Store) LoadPassTimings(runID string) ([]PassTiming, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows *sql.Rows
	err := s.withRetry("load pass timings", func() error {
		var qErr error
		rows, qErr = s.db.Query(`
SELECT run_id, pass, ordinal, duration_ns, changed
FROM pass_timings
WHERE run_id = ?
ORDER BY ordinal ASC
`, runID)
		return qErr
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	timings := make([]PassTiming, 0)
	for rows.Next() {
		var (
			p          PassTiming
			durationNS int64
			changed    int
		)
		if err := rows.Scan(&p.RunID, &p.Pass, &p.Ordinal, &durationNS, &changed); err != nil {
			return nil, fmt.Errorf("scan pass timing row: %w", err)
		}
		p.Duration = time.Duration(durationNS)
		p.Changed = changed != 0
		timings = append(timings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pass timing rows: %w", err)
	}

	return timings, nil
}

func (s *Store) withRetry(op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isLockError(err) || attempt == maxAttempts {
			break
		}
		time.Sleep(time.Duration(attempt*25) * time.Millisecond)
	}
	return fmt.Errorf("%s: %w", op, lastErr)
}

func isLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
