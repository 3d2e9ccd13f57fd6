package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fieldlock/fieldlock/internal/record"
)

// ErrNotFound is returned when a definition or record does not exist.
var ErrNotFound = errors.New("not found")

// StoredRecord is one row of the records table, rehydrated.
type StoredRecord struct {
	ID             string
	DefinitionHash string
	Name           string // definition type name
	Instance       *record.Instance
	BatchToken     string
	CreatedAt      string
}

// GetDefinition returns the definition with the given content address.
func (s *Store) GetDefinition(ctx context.Context, hash string) (*record.Definition, error) {
	var fieldsJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT fields FROM definitions WHERE hash = ?`, hash,
	).Scan(&fieldsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("definition %s: %w", hash, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get definition: %w", err)
	}

	return unmarshalDefinition(fieldsJSON)
}

// FindDefinition returns the newest stored definition with the given type
// name. Content addressing permits several shapes under one name; ties
// break on hash for determinism.
func (s *Store) FindDefinition(ctx context.Context, name string) (*record.Definition, string, error) {
	var hash, fieldsJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT hash, fields FROM definitions
		WHERE name = ?
		ORDER BY created_at DESC, hash COLLATE BINARY ASC
		LIMIT 1
	`, name).Scan(&hash, &fieldsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", fmt.Errorf("definition %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, "", fmt.Errorf("find definition: %w", err)
	}

	def, err := unmarshalDefinition(fieldsJSON)
	if err != nil {
		return nil, "", err
	}
	return def, hash, nil
}

// GetRecord returns the stored record with the given content address.
func (s *Store) GetRecord(ctx context.Context, id string) (*StoredRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT r.id, r.definition_hash, d.name, d.fields, r.vals, r.batch_token, r.created_at
		FROM records r
		JOIN definitions d ON r.definition_hash = d.hash
		WHERE r.id = ?
	`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("record %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListFilter narrows ListRecords. The zero value matches everything.
type ListFilter struct {
	Name  string       // definition type name
	Field string       // field to compare; requires Value
	Value record.Value // scalar value the field must equal
}

// ListRecords returns stored records with deterministic ordering:
// ORDER BY id COLLATE BINARY ASC, so the same database always lists the
// same way. A scalar field filter compiles to a json_extract comparison.
func (s *Store) ListRecords(ctx context.Context, filter ListFilter) ([]StoredRecord, error) {
	query := `
		SELECT r.id, r.definition_hash, d.name, d.fields, r.vals, r.batch_token, r.created_at
		FROM records r
		JOIN definitions d ON r.definition_hash = d.hash
	`
	var conds []string
	var args []any

	if filter.Name != "" {
		conds = append(conds, "d.name = ?")
		args = append(args, filter.Name)
	}
	if filter.Field != "" {
		arg, err := filterArg(filter.Value)
		if err != nil {
			return nil, fmt.Errorf("list records: %w", err)
		}
		conds = append(conds, "json_extract(r.vals, '$.'||?) = ?")
		args = append(args, filter.Field, arg)
	}

	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY r.id COLLATE BINARY ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	records := []StoredRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}

// filterArg converts a scalar filter value to its SQL binding.
// json_extract yields SQL integers for JSON numbers and booleans, so both
// bind as int64.
func filterArg(v record.Value) (any, error) {
	switch val := v.(type) {
	case record.String:
		return string(val), nil
	case record.Int:
		return int64(val), nil
	case record.Bool:
		if val {
			return int64(1), nil
		}
		return int64(0), nil
	case nil:
		return nil, fmt.Errorf("field filter requires a value")
	default:
		return nil, fmt.Errorf("field filter supports scalar values only, got %T", v)
	}
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*StoredRecord, error) {
	var rec StoredRecord
	var fieldsJSON, valsJSON string

	err := row.Scan(&rec.ID, &rec.DefinitionHash, &rec.Name, &fieldsJSON,
		&valsJSON, &rec.BatchToken, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}

	def, err := unmarshalDefinition(fieldsJSON)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", rec.ID, err)
	}
	rec.Instance, err = unmarshalValues(def, valsJSON)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", rec.ID, err)
	}

	return &rec, nil
}
