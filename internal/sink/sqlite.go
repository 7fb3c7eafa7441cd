package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"minion-profit/internal/model"

	_ "modernc.org/sqlite"
)

// Table is the sqlite table results are stored in.
const Table = "minion_simulation_result"

func openSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return db, nil
}

func createTable(ctx context.Context, db *sql.DB) error {
	defs := []string{"id INTEGER PRIMARY KEY AUTOINCREMENT", "run_id TEXT"}
	for _, c := range columns {
		var r model.Result
		typ := "INTEGER"
		switch c.field(&r).(type) {
		case *string, *map[string]int64:
			typ = "TEXT"
		}
		defs = append(defs, c.name+" "+typ)
	}
	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", Table, strings.Join(defs, ", "))
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

// WriteSQLite appends results to the table, creating it when needed. Rows are tagged
// with opts.RunID.
func WriteSQLite(ctx context.Context, path string, results []model.Result, opts Options) error {
	db, err := openSQLite(path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := createTable(ctx, db); err != nil {
		return err
	}

	names := append([]string{"run_id"}, columnNames()...)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", Table, strings.Join(names, ", "), placeholders)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(names))
	for _, r := range results {
		r = opts.apply(r)
		args[0] = opts.RunID
		for i, c := range columns {
			if args[i+1], err = sqlValue(c.field(&r)); err != nil {
				return err
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert result: %w", err)
		}
	}
	return tx.Commit()
}

// ReadSQLite loads every stored result in insertion order.
func ReadSQLite(ctx context.Context, path string) ([]model.Result, error) {
	db, err := openSQLite(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", strings.Join(columnNames(), ", "), Table)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []model.Result
	for rows.Next() {
		var r model.Result
		scanners := make([]scanner, len(columns))
		dests := make([]any, len(columns))
		for i, c := range columns {
			s, err := newScanner(c.field(&r))
			if err != nil {
				return nil, err
			}
			scanners[i], dests[i] = s, s.dest
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, err
		}
		for _, s := range scanners {
			if err := s.apply(); err != nil {
				return nil, err
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
