package loaders

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/df07/go-event-injector/pkg/injector"
	"github.com/df07/go-event-injector/pkg/particle"
)

//go:embed replay_schema.sql
var replaySchema string

// ErrMismatchedTables is returned when the per-row tables of a dataset disagree in length
var ErrMismatchedTables = errors.New("loaders: replay tables have different row counts")

// ReplayGroup is one named block of rows in a replay dataset
type ReplayGroup struct {
	Name string
	Rows []injector.ReplayRow
}

// SQLiteReplayLoader reads replay datasets stored as SQLite databases.
// The source passed to LoadReplayTable is the database path.
type SQLiteReplayLoader struct{}

var _ injector.ReplayLoader = SQLiteReplayLoader{}

const replayQuery = `
SELECT
    i.x, i.y, i.z, i.dx, i.dy, i.dz, i.energy,
    f1.x, f1.y, f1.z, f1.dx, f1.dy, f1.dz, f1.energy, f1.type,
    f2.x, f2.y, f2.z, f2.dx, f2.dy, f2.dz, f2.energy,
    ow.value, fw.value
FROM groups g
JOIN initial i       ON i.grp = g.ordinal
JOIN final_1 f1      ON f1.grp = i.grp AND f1.row = i.row
JOIN final_2 f2      ON f2.grp = i.grp AND f2.row = i.row
JOIN one_weights ow  ON ow.grp = i.grp AND ow.row = i.row
JOIN flux_weights fw ON fw.grp = i.grp AND fw.row = i.row
ORDER BY g.ordinal, i.row`

// LoadReplayTable concatenates every group in ordinal order, joining the five
// per-row tables by row position and numbering the result 1..N
func (SQLiteReplayLoader) LoadReplayTable(ctx context.Context, source string) (injector.ReplayTable, error) {
	sqlDB, err := openReplayDB(source, false)
	if err != nil {
		return nil, err
	}
	defer sqlDB.Close()

	if err := checkRowCounts(ctx, sqlDB); err != nil {
		return nil, err
	}

	rows, err := sqlDB.QueryContext(ctx, replayQuery)
	if err != nil {
		return nil, fmt.Errorf("query replay rows: %w", err)
	}
	defer rows.Close()

	var table injector.ReplayTable
	for rows.Next() {
		var row injector.ReplayRow
		var typeCode int64
		if err := rows.Scan(
			&row.Initial.Position.X, &row.Initial.Position.Y, &row.Initial.Position.Z,
			&row.Initial.Direction.X, &row.Initial.Direction.Y, &row.Initial.Direction.Z,
			&row.Initial.Energy,
			&row.Final1.Position.X, &row.Final1.Position.Y, &row.Final1.Position.Z,
			&row.Final1.Direction.X, &row.Final1.Direction.Y, &row.Final1.Direction.Z,
			&row.Final1.Energy, &typeCode,
			&row.Final2.Position.X, &row.Final2.Position.Y, &row.Final2.Position.Z,
			&row.Final2.Direction.X, &row.Final2.Direction.Y, &row.Final2.Direction.Z,
			&row.Final2.Energy,
			&row.OneWeight, &row.FluxWeight,
		); err != nil {
			return nil, fmt.Errorf("scan replay row %d: %w", len(table)+1, err)
		}
		row.Final1.Type = particle.Type(typeCode)
		row.ID = len(table) + 1
		table = append(table, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate replay rows: %w", err)
	}
	return table, nil
}

// checkRowCounts makes sure the inner join cannot silently drop rows
func checkRowCounts(ctx context.Context, sqlDB *sql.DB) error {
	var want int
	if err := sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM initial").Scan(&want); err != nil {
		return fmt.Errorf("count initial rows: %w", err)
	}
	for _, name := range []string{"final_1", "final_2", "one_weights", "flux_weights"} {
		var got int
		if err := sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+name).Scan(&got); err != nil {
			return fmt.Errorf("count %s rows: %w", name, err)
		}
		if got != want {
			return fmt.Errorf("%s has %d rows, initial has %d: %w", name, got, want, ErrMismatchedTables)
		}
	}
	return nil
}

// WriteReplayDataset stores groups in a new SQLite database at path.
// Row IDs are ignored; rows are keyed by their position inside each group.
func WriteReplayDataset(ctx context.Context, path string, groups []ReplayGroup) error {
	sqlDB, err := openReplayDB(path, true)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if _, err := sqlDB.ExecContext(ctx, replaySchema); err != nil {
		return fmt.Errorf("create replay schema: %w", err)
	}

	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replay transaction: %w", err)
	}
	if err := writeGroups(ctx, tx, groups); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replay dataset: %w", err)
	}
	return nil
}

func writeGroups(ctx context.Context, tx *sql.Tx, groups []ReplayGroup) error {
	var nextOrdinal int
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(ordinal), 0) FROM groups").Scan(&nextOrdinal); err != nil {
		return fmt.Errorf("read group ordinals: %w", err)
	}

	for _, group := range groups {
		nextOrdinal++
		name := strings.TrimSpace(group.Name)
		if name == "" {
			return fmt.Errorf("replay group %d has no name", nextOrdinal)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO groups (ordinal, name) VALUES (?, ?)", nextOrdinal, name); err != nil {
			return fmt.Errorf("insert group %q: %w", name, err)
		}

		for i, row := range group.Rows {
			if err := insertLeg(ctx, tx, "initial", nextOrdinal, i, row.Initial, false); err != nil {
				return err
			}
			if err := insertLeg(ctx, tx, "final_1", nextOrdinal, i, row.Final1, true); err != nil {
				return err
			}
			if err := insertLeg(ctx, tx, "final_2", nextOrdinal, i, row.Final2, false); err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, "INSERT INTO one_weights (grp, row, value) VALUES (?, ?, ?)", nextOrdinal, i, row.OneWeight); err != nil {
				return fmt.Errorf("insert one weight %s/%d: %w", name, i, err)
			}
			if _, err := tx.ExecContext(ctx, "INSERT INTO flux_weights (grp, row, value) VALUES (?, ?, ?)", nextOrdinal, i, row.FluxWeight); err != nil {
				return fmt.Errorf("insert flux weight %s/%d: %w", name, i, err)
			}
		}
	}
	return nil
}

func insertLeg(ctx context.Context, tx *sql.Tx, table string, grp, row int, leg injector.Leg, withType bool) error {
	pos, dir := leg.Position, leg.Direction
	args := []any{grp, row, pos.X, pos.Y, pos.Z, dir.X, dir.Y, dir.Z, leg.Energy}
	columns := "grp, row, x, y, z, dx, dy, dz, energy"
	placeholders := "?, ?, ?, ?, ?, ?, ?, ?, ?"
	if withType {
		args = append(args, int64(leg.Type))
		columns += ", type"
		placeholders += ", ?"
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, columns, placeholders)
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s row %d of group %d: %w", table, row, grp, err)
	}
	return nil
}

// openReplayDB opens the dataset at path. Reading requires an existing file so a
// typo does not silently produce an empty database.
func openReplayDB(path string, create bool) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("replay dataset path is required")
	}
	cleanPath := filepath.Clean(path)
	if !create {
		if _, err := os.Stat(cleanPath); err != nil {
			return nil, fmt.Errorf("replay dataset: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", cleanPath+"?_foreign_keys=ON&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return sqlDB, nil
}
