// Package store persists pipeline run outputs in SQLite so the
// dashboard and export commands can read them back without recomputing.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"revscope/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store is the SQLite-backed results database.
type Store struct {
	db *sql.DB
}

// RunInfo summarizes one stored run.
type RunInfo struct {
	RunID        string
	CreatedAt    time.Time
	Customers    int
	Transactions int
}

// RunConfig is the configuration snapshot stored alongside a run.
type RunConfig struct {
	Horizon    int
	Clusters   int
	Confidence float64
	Seed       int64
}

// DataDir returns the platform-appropriate data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "revscope")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "revscope")
}

// DBPath returns the full path to the results database.
func DBPath() string {
	return filepath.Join(DataDir(), "results.db")
}

// Open opens or creates the results database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening results db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores a complete run output in one transaction.
func (s *Store) SaveRun(r *model.RunResult, cfg RunConfig) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`INSERT INTO runs
		(run_id, created_at, reference, customers, transactions, horizon, clusters, confidence, seed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.CreatedAt.UTC().Format(time.RFC3339), r.Reference.UTC().Format("2006-01-02"),
		r.Customers, r.Transactions, cfg.Horizon, cfg.Clusters, cfg.Confidence, cfg.Seed,
	)
	if err != nil {
		return err
	}

	for _, seg := range r.Segments {
		_, err = tx.Exec(`INSERT INTO segments
			(run_id, cluster, customer_count, avg_recency, avg_frequency, avg_monetary, total_monetary, decision_action)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.RunID, seg.Cluster, seg.CustomerCount, seg.AvgRecency, seg.AvgFrequency,
			seg.AvgMonetary, seg.TotalMonetary, seg.DecisionAction,
		)
		if err != nil {
			return err
		}
	}

	for i, p := range r.Aggregate.Base.Points {
		_, err = tx.Exec(`INSERT INTO forecasts
			(run_id, period, date, base_forecast, best_case, worst_case, lower_ci, upper_ci)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.RunID, i+1, p.Period.UTC().Format("2006-01-02"),
			p.Point, r.Aggregate.Best[i], r.Aggregate.Worst[i], p.Lower, p.Upper,
		)
		if err != nil {
			return err
		}
	}

	for _, roi := range r.ROI {
		_, err = tx.Exec(`INSERT INTO roi
			(run_id, cluster, scenario, investment, uplift_rate, projected_revenue, projected_gain, roi, break_even_revenue)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.RunID, roi.Cluster, string(roi.Scenario), roi.Investment, roi.UpliftRate,
			roi.ProjectedRevenue, roi.ProjectedGain, roi.ROI, roi.BreakEvenRevenue,
		)
		if err != nil {
			return err
		}
	}

	for i, rm := range r.Risk {
		_, err = tx.Exec(`INSERT INTO risk
			(run_id, period, date, base_value, worst_value, shortfall, shortfall_pct, var_lower)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.RunID, i+1, rm.Period.UTC().Format("2006-01-02"),
			rm.BaseValue, rm.WorstValue, rm.Shortfall, rm.ShortfallPct, rm.VaRLower,
		)
		if err != nil {
			return err
		}
	}

	for _, sen := range r.Sensitivity {
		_, err = tx.Exec(`INSERT INTO sensitivities
			(run_id, cluster, parameter, delta_pct, roi_low, roi_high, elasticity)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.RunID, sen.Cluster, sen.Parameter, sen.DeltaPct, sen.ROILow, sen.ROIHigh, sen.Elasticity,
		)
		if err != nil {
			return err
		}
	}

	for i, w := range r.Warnings {
		_, err = tx.Exec(`INSERT INTO warnings (run_id, seq, stage, ref, message)
			VALUES (?, ?, ?, ?, ?)`,
			r.RunID, i, w.Stage, w.Ref, w.Message,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LatestRunID returns the most recently created run id.
func (s *Store) LatestRunID() (string, error) {
	var id string
	err := s.db.QueryRow("SELECT run_id FROM runs ORDER BY created_at DESC LIMIT 1").Scan(&id)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("no runs stored yet")
	}
	return id, err
}

// ListRuns returns stored runs, most recent first.
func (s *Store) ListRuns() ([]RunInfo, error) {
	rows, err := s.db.Query(`SELECT run_id, created_at, customers, transactions
		FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []RunInfo
	for rows.Next() {
		var (
			info    RunInfo
			created string
		)
		if err := rows.Scan(&info.RunID, &created, &info.Customers, &info.Transactions); err != nil {
			return nil, err
		}
		info.CreatedAt, _ = time.Parse(time.RFC3339, created)
		runs = append(runs, info)
	}
	return runs, rows.Err()
}

// LoadRun reads the published tables of one run back into a RunResult.
// Intermediate artifacts (per-customer features, per-segment scenario
// sets) are not persisted; rerun the pipeline if they are needed.
func (s *Store) LoadRun(runID string) (*model.RunResult, error) {
	r := &model.RunResult{RunID: runID, PerSegment: map[int]model.ScenarioSet{}}

	var created, reference string
	err := s.db.QueryRow(`SELECT created_at, reference, customers, transactions
		FROM runs WHERE run_id = ?`, runID).
		Scan(&created, &reference, &r.Customers, &r.Transactions)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, err
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, created)
	r.Reference, _ = time.Parse("2006-01-02", reference)

	if err := s.loadSegments(r); err != nil {
		return nil, err
	}
	if err := s.loadForecast(r); err != nil {
		return nil, err
	}
	if err := s.loadROI(r); err != nil {
		return nil, err
	}
	if err := s.loadRisk(r); err != nil {
		return nil, err
	}
	if err := s.loadSensitivity(r); err != nil {
		return nil, err
	}
	if err := s.loadWarnings(r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Store) loadSegments(r *model.RunResult) error {
	rows, err := s.db.Query(`SELECT cluster, customer_count, avg_recency, avg_frequency,
		avg_monetary, total_monetary, decision_action
		FROM segments WHERE run_id = ? ORDER BY cluster`, r.RunID)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var seg model.Segment
		if err := rows.Scan(&seg.Cluster, &seg.CustomerCount, &seg.AvgRecency,
			&seg.AvgFrequency, &seg.AvgMonetary, &seg.TotalMonetary, &seg.DecisionAction); err != nil {
			return err
		}
		r.Segments = append(r.Segments, seg)
	}
	return rows.Err()
}

func (s *Store) loadForecast(r *model.RunResult) error {
	rows, err := s.db.Query(`SELECT date, base_forecast, best_case, worst_case, lower_ci, upper_ci
		FROM forecasts WHERE run_id = ? ORDER BY period`, r.RunID)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	set := model.ScenarioSet{SeriesID: "aggregate"}
	set.Base.SeriesID = "aggregate"
	for rows.Next() {
		var (
			date                    string
			p                       model.ForecastPoint
			best, worst             float64
		)
		if err := rows.Scan(&date, &p.Point, &best, &worst, &p.Lower, &p.Upper); err != nil {
			return err
		}
		p.Period, _ = time.Parse("2006-01-02", date)
		set.Base.Points = append(set.Base.Points, p)
		set.Best = append(set.Best, best)
		set.Worst = append(set.Worst, worst)
	}
	r.Aggregate = set
	return rows.Err()
}

func (s *Store) loadROI(r *model.RunResult) error {
	rows, err := s.db.Query(`SELECT cluster, scenario, investment, uplift_rate,
		projected_revenue, projected_gain, roi, break_even_revenue
		FROM roi WHERE run_id = ? ORDER BY cluster, scenario`, r.RunID)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			res      model.ROIResult
			scenario string
		)
		if err := rows.Scan(&res.Cluster, &scenario, &res.Investment, &res.UpliftRate,
			&res.ProjectedRevenue, &res.ProjectedGain, &res.ROI, &res.BreakEvenRevenue); err != nil {
			return err
		}
		res.Scenario = model.ScenarioKind(scenario)
		r.ROI = append(r.ROI, res)
	}
	return rows.Err()
}

func (s *Store) loadRisk(r *model.RunResult) error {
	rows, err := s.db.Query(`SELECT date, base_value, worst_value, shortfall, shortfall_pct, var_lower
		FROM risk WHERE run_id = ? ORDER BY period`, r.RunID)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			date string
			rm   model.RiskMetric
		)
		if err := rows.Scan(&date, &rm.BaseValue, &rm.WorstValue, &rm.Shortfall,
			&rm.ShortfallPct, &rm.VaRLower); err != nil {
			return err
		}
		rm.Period, _ = time.Parse("2006-01-02", date)
		r.Risk = append(r.Risk, rm)
	}
	return rows.Err()
}

func (s *Store) loadSensitivity(r *model.RunResult) error {
	rows, err := s.db.Query(`SELECT cluster, parameter, delta_pct, roi_low, roi_high, elasticity
		FROM sensitivities WHERE run_id = ? ORDER BY cluster, parameter`, r.RunID)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var sen model.Sensitivity
		if err := rows.Scan(&sen.Cluster, &sen.Parameter, &sen.DeltaPct,
			&sen.ROILow, &sen.ROIHigh, &sen.Elasticity); err != nil {
			return err
		}
		r.Sensitivity = append(r.Sensitivity, sen)
	}
	return rows.Err()
}

func (s *Store) loadWarnings(r *model.RunResult) error {
	rows, err := s.db.Query(`SELECT stage, ref, message
		FROM warnings WHERE run_id = ? ORDER BY seq`, r.RunID)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			w   model.Warning
			ref sql.NullString
		)
		if err := rows.Scan(&w.Stage, &ref, &w.Message); err != nil {
			return err
		}
		if ref.Valid {
			w.Ref = ref.String
		}
		r.Warnings = append(r.Warnings, w)
	}
	return rows.Err()
}
