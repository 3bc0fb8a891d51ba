package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    run_id        TEXT PRIMARY KEY,
    created_at    TEXT NOT NULL,
    reference     TEXT NOT NULL,
    customers     INTEGER NOT NULL,
    transactions  INTEGER NOT NULL,
    horizon       INTEGER NOT NULL,
    clusters      INTEGER NOT NULL,
    confidence    REAL NOT NULL,
    seed          INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS segments (
    run_id          TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
    cluster         INTEGER NOT NULL,
    customer_count  INTEGER NOT NULL,
    avg_recency     REAL NOT NULL,
    avg_frequency   REAL NOT NULL,
    avg_monetary    REAL NOT NULL,
    total_monetary  REAL NOT NULL,
    decision_action TEXT NOT NULL,
    PRIMARY KEY (run_id, cluster)
);

CREATE TABLE IF NOT EXISTS forecasts (
    run_id        TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
    period        INTEGER NOT NULL,
    date          TEXT NOT NULL,
    base_forecast REAL NOT NULL,
    best_case     REAL NOT NULL,
    worst_case    REAL NOT NULL,
    lower_ci      REAL NOT NULL,
    upper_ci      REAL NOT NULL,
    PRIMARY KEY (run_id, period)
);

CREATE TABLE IF NOT EXISTS roi (
    run_id             TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
    cluster            INTEGER NOT NULL,
    scenario           TEXT NOT NULL,
    investment         REAL NOT NULL,
    uplift_rate        REAL NOT NULL,
    projected_revenue  REAL NOT NULL,
    projected_gain     REAL NOT NULL,
    roi                REAL NOT NULL,
    break_even_revenue REAL NOT NULL,
    PRIMARY KEY (run_id, cluster, scenario)
);

CREATE TABLE IF NOT EXISTS risk (
    run_id        TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
    period        INTEGER NOT NULL,
    date          TEXT NOT NULL,
    base_value    REAL NOT NULL,
    worst_value   REAL NOT NULL,
    shortfall     REAL NOT NULL,
    shortfall_pct REAL NOT NULL,
    var_lower     REAL NOT NULL,
    PRIMARY KEY (run_id, period)
);

CREATE TABLE IF NOT EXISTS sensitivities (
    run_id     TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
    cluster    INTEGER NOT NULL,
    parameter  TEXT NOT NULL,
    delta_pct  REAL NOT NULL,
    roi_low    REAL NOT NULL,
    roi_high   REAL NOT NULL,
    elasticity REAL NOT NULL,
    PRIMARY KEY (run_id, cluster, parameter)
);

CREATE TABLE IF NOT EXISTS warnings (
    run_id  TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
    seq     INTEGER NOT NULL,
    stage   TEXT NOT NULL,
    ref     TEXT,
    message TEXT NOT NULL,
    PRIMARY KEY (run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
