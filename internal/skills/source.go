package skills

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Source loads the full skill dataset from a backing resource.
type Source interface {
	List(ctx context.Context) ([]Skill, error)
}

// FileSource loads skills from a CSV file with columns
// skill, notation, difficulty, description. The first row is a header and
// is skipped.
type FileSource struct {
	Path string
}

// List reads and parses the entire CSV file.
// Rows with an empty skill name are skipped; a difficulty that fails to
// parse (or is negative) is recorded as 0.
func (f FileSource) List(_ context.Context) ([]Skill, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open skill dataset %s: %w", f.Path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // tolerate short rows
	reader.LazyQuotes = true

	var (
		out []Skill
		row int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse skill dataset %s: %w", f.Path, err)
		}
		row++
		if row == 1 {
			continue // header
		}
		if skill, ok := recordToSkill(record); ok {
			out = append(out, skill)
		}
	}

	return out, nil
}

// recordToSkill converts one CSV record into a Skill.
// Returns ok=false when the record has no usable name.
func recordToSkill(record []string) (Skill, bool) {
	field := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	name := field(0)
	if name == "" {
		return Skill{}, false
	}

	difficulty, err := strconv.ParseFloat(field(2), 64)
	if err != nil || difficulty < 0 {
		difficulty = 0
	}

	return Skill{
		Name:        name,
		Notation:    field(1),
		Difficulty:  difficulty,
		Description: field(3),
	}, true
}

// DBSource loads skills from a PostgreSQL table with the same columns as
// the CSV dataset. It applies the same row-level tolerances as FileSource.
type DBSource struct {
	Pool *pgxpool.Pool
}

// NewDBSource connects to the database and returns a DBSource backed by a
// connection pool.
func NewDBSource(ctx context.Context, databaseURL string) (*DBSource, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &DBSource{Pool: pool}, nil
}

// List queries all skill rows in insertion order.
func (d *DBSource) List(ctx context.Context) ([]Skill, error) {
	rows, err := d.Pool.Query(ctx,
		`SELECT skill, notation, difficulty, description FROM skills ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query skills: %w", err)
	}
	defer rows.Close()

	var out []Skill
	for rows.Next() {
		var (
			name, notation, description string
			difficulty                  float64
		)
		if err := rows.Scan(&name, &notation, &difficulty, &description); err != nil {
			return nil, fmt.Errorf("failed to scan skill row: %w", err)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if difficulty < 0 {
			difficulty = 0
		}
		out = append(out, Skill{
			Name:        name,
			Notation:    strings.TrimSpace(notation),
			Difficulty:  difficulty,
			Description: strings.TrimSpace(description),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read skill rows: %w", err)
	}

	return out, nil
}

// Close releases the underlying connection pool.
func (d *DBSource) Close() {
	if d.Pool != nil {
		d.Pool.Close()
	}
}
