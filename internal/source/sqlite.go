package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/janekbaraniewski/branchboard/internal/core"
	_ "github.com/mattn/go-sqlite3"
)

// Schema is the table layout the SQLite source reads. Months are stored as
// "YYYY-MM" strings.
const Schema = `
CREATE TABLE IF NOT EXISTS branches (
	branch_id INTEGER PRIMARY KEY,
	branch_name TEXT NOT NULL,
	branch_code TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS metrics (
	branch_id INTEGER NOT NULL,
	metric_type_id INTEGER NOT NULL,
	metric_name TEXT NOT NULL DEFAULT '',
	metric_description TEXT NOT NULL DEFAULT '',
	unit_symbol TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (branch_id, metric_type_id)
);
CREATE TABLE IF NOT EXISTS metric_data (
	branch_id INTEGER NOT NULL,
	metric_type_id INTEGER NOT NULL,
	month TEXT NOT NULL,
	value REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_metric_data_series ON metric_data(branch_id, metric_type_id, month);
`

type SQLiteFetcher struct {
	Path   string
	Months int

	now func() time.Time
}

func NewSQLiteFetcher(path string, months int) *SQLiteFetcher {
	return &SQLiteFetcher{Path: path, Months: months, now: time.Now}
}

// Open opens the database and makes sure the schema exists.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite source: opening DB: %w", err)
	}
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite source: init schema: %w", err)
	}
	return db, nil
}

func (f *SQLiteFetcher) Fetch(ctx context.Context) (core.APIResponse, error) {
	if _, err := os.Stat(f.Path); err != nil {
		return core.APIResponse{}, fmt.Errorf("sqlite source: %w", err)
	}
	db, err := Open(ctx, f.Path)
	if err != nil {
		return core.APIResponse{}, err
	}
	defer db.Close()

	branches, err := f.loadBranches(ctx, db)
	if err != nil {
		return core.APIResponse{}, err
	}
	metrics, err := f.loadMetrics(ctx, db)
	if err != nil {
		return core.APIResponse{}, err
	}
	points, err := f.loadPoints(ctx, db)
	if err != nil {
		return core.APIResponse{}, err
	}

	for i := range branches {
		for _, m := range metrics[branches[i].BranchID] {
			m.Data = points[seriesKey{branches[i].BranchID, m.MetricTypeID}]
			if m.Data == nil {
				m.Data = []core.APIDataPoint{}
			}
			branches[i].Metrics = append(branches[i].Metrics, m)
		}
	}
	return core.APIResponse{Branches: branches}, nil
}

type seriesKey struct {
	branchID   int
	metricType int
}

func (f *SQLiteFetcher) loadBranches(ctx context.Context, db *sql.DB) ([]core.APIBranch, error) {
	rows, err := db.QueryContext(ctx, `SELECT branch_id, branch_name, branch_code, city, status FROM branches ORDER BY branch_id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite source: query branches: %w", err)
	}
	defer rows.Close()

	branches := []core.APIBranch{}
	for rows.Next() {
		var b core.APIBranch
		if err := rows.Scan(&b.BranchID, &b.BranchName, &b.BranchCode, &b.City, &b.Status); err != nil {
			return nil, fmt.Errorf("sqlite source: scan branch: %w", err)
		}
		branches = append(branches, b)
	}
	return branches, rows.Err()
}

func (f *SQLiteFetcher) loadMetrics(ctx context.Context, db *sql.DB) (map[int][]core.APIMetric, error) {
	rows, err := db.QueryContext(ctx, `SELECT branch_id, metric_type_id, metric_name, metric_description, unit_symbol
		FROM metrics ORDER BY branch_id, metric_type_id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite source: query metrics: %w", err)
	}
	defer rows.Close()

	out := make(map[int][]core.APIMetric)
	for rows.Next() {
		var (
			branchID int
			symbol   string
			m        core.APIMetric
		)
		if err := rows.Scan(&branchID, &m.MetricTypeID, &m.MetricName, &m.MetricDescription, &symbol); err != nil {
			return nil, fmt.Errorf("sqlite source: scan metric: %w", err)
		}
		if symbol != "" {
			m.Unit = &core.APIUnit{UnitSymbol: symbol}
		}
		out[branchID] = append(out[branchID], m)
	}
	return out, rows.Err()
}

func (f *SQLiteFetcher) loadPoints(ctx context.Context, db *sql.DB) (map[seriesKey][]core.APIDataPoint, error) {
	query := `SELECT branch_id, metric_type_id, month, value FROM metric_data`
	var args []any
	if cutoff, ok := f.cutoff(); ok {
		query += ` WHERE month >= ?`
		args = append(args, cutoff)
	}
	query += ` ORDER BY branch_id, metric_type_id, month`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite source: query metric data: %w", err)
	}
	defer rows.Close()

	out := make(map[seriesKey][]core.APIDataPoint)
	for rows.Next() {
		var (
			k seriesKey
			p core.APIDataPoint
		)
		if err := rows.Scan(&k.branchID, &k.metricType, &p.Month, &p.Value); err != nil {
			return nil, fmt.Errorf("sqlite source: scan metric data: %w", err)
		}
		out[k] = append(out[k], p)
	}
	return out, rows.Err()
}

// cutoff is the first month included when Months is set: the current month
// counts as one of them.
func (f *SQLiteFetcher) cutoff() (string, bool) {
	if f.Months <= 0 {
		return "", false
	}
	now := time.Now
	if f.now != nil {
		now = f.now
	}
	t := now().UTC()
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(f.Months - 1), 0)
	return first.Format("2006-01"), true
}
