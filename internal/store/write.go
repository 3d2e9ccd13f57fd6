package store

import (
	"context"
	"fmt"

	"github.com/fieldlock/fieldlock/internal/record"
)

// PutDefinition inserts a definition and returns its content address.
// Uses ON CONFLICT(hash) DO NOTHING for idempotency - writing the same
// definition twice is a no-op that returns the same hash.
func (s *Store) PutDefinition(ctx context.Context, def *record.Definition) (string, error) {
	hash, err := record.DefinitionHash(def)
	if err != nil {
		return "", fmt.Errorf("put definition: %w", err)
	}

	fieldsJSON, err := marshalDefinition(def)
	if err != nil {
		return "", fmt.Errorf("put definition: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO definitions (hash, name, fields)
		VALUES (?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`, hash, def.Name(), fieldsJSON)
	if err != nil {
		return "", fmt.Errorf("put definition: %w", err)
	}

	return hash, nil
}

// PutRecord inserts an instance and returns its content address. The
// instance's definition is written first so the foreign key always holds.
// Duplicate IDs (the same instance written twice) are silently ignored.
//
// batchToken groups records written together; use a TokenGenerator to mint
// one per write batch.
func (s *Store) PutRecord(ctx context.Context, in *record.Instance, batchToken string) (string, error) {
	defHash, err := s.PutDefinition(ctx, in.Definition())
	if err != nil {
		return "", fmt.Errorf("put record: %w", err)
	}

	id, err := record.InstanceID(in)
	if err != nil {
		return "", fmt.Errorf("put record: %w", err)
	}

	valsJSON, err := marshalValues(in)
	if err != nil {
		return "", fmt.Errorf("put record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (id, definition_hash, vals, batch_token)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, id, defHash, valsJSON, batchToken)
	if err != nil {
		return "", fmt.Errorf("put record: %w", err)
	}

	return id, nil
}
