package source

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"revscope/internal/model"

	_ "github.com/go-sql-driver/mysql" // register mysql driver
)

var tableNameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// OpenMySQL opens a pooled connection from a mariadb:// or mysql:// URL,
// or a raw go-sql-driver DSN.
func OpenMySQL(dsn string) (*sql.DB, error) {
	mysqlDSN, err := toMySQLDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

func toMySQLDSN(dsn string) (string, error) {
	if !strings.HasPrefix(dsn, "mariadb://") && !strings.HasPrefix(dsn, "mysql://") {
		return dsn, nil
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	user := ""
	pass := ""
	if u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
	}
	host := u.Host
	db := strings.TrimPrefix(u.Path, "/")
	if user == "" || host == "" || db == "" {
		return "", fmt.Errorf("incomplete dsn (user/host/db required)")
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&interpolateParams=true",
		user, pass, host, db), nil
}

// LoadMySQL reads transactions from a table with (transaction_id,
// customer_id, transaction_date, amount) columns. NULL amounts are
// dropped with a warning, matching the CSV policy.
func LoadMySQL(ctx context.Context, db *sql.DB, table string) (*LoadResult, error) {
	if !tableNameRe.MatchString(table) {
		return nil, &model.ConfigurationError{Field: "input.table", Reason: fmt.Sprintf("invalid table name %q", table)}
	}

	q := fmt.Sprintf(`SELECT transaction_id, customer_id, transaction_date, amount
		FROM %s ORDER BY transaction_date, transaction_id`, table)

	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	result := &LoadResult{}
	for rows.Next() {
		result.TotalRows++

		var (
			id       string
			customer string
			date     time.Time
			amount   sql.NullFloat64
		)
		if err := rows.Scan(&id, &customer, &date, &amount); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}

		if !amount.Valid {
			result.DroppedRows++
			result.Warnings = append(result.Warnings, model.Warning{
				Stage:   "prep",
				Ref:     id,
				Message: "missing amount",
			})
			continue
		}

		result.Transactions = append(result.Transactions, model.Transaction{
			ID:         id,
			CustomerID: customer,
			Date:       date,
			Amount:     amount.Float64,
		})
	}

	return result, rows.Err()
}
