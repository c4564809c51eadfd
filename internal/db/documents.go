package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/atsresumie/latex-studio/internal/types"
)

// -----------------------------------------------------------------------------
// Document Methods
// -----------------------------------------------------------------------------

// CreateDocument stores a new document as version 1
func (db *DB) CreateDocument(ctx context.Context, label, latex string, style types.StyleConfig) (*Document, error) {
	styleJSON, err := encodeStyle(style)
	if err != nil {
		return nil, err
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	doc := Document{ID: uuid.New(), Label: label, Latex: latex, Style: style, Version: 1}
	err = tx.QueryRow(ctx,
		`INSERT INTO documents (id, label, latex, style, version)
		 VALUES ($1, $2, $3, $4, 1)
		 RETURNING created_at, updated_at`,
		doc.ID, label, latex, styleJSON,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO document_versions (document_id, version, latex, style)
		 VALUES ($1, 1, $2, $3)`,
		doc.ID, latex, styleJSON,
	); err != nil {
		return nil, fmt.Errorf("failed to record document version: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit document: %w", err)
	}
	return &doc, nil
}

// GetDocument retrieves a document by ID. Returns nil when it does not exist.
func (db *DB) GetDocument(ctx context.Context, id uuid.UUID) (*Document, error) {
	var doc Document
	var styleJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, label, latex, style, version, created_at, updated_at
		 FROM documents WHERE id = $1`,
		id,
	).Scan(&doc.ID, &doc.Label, &doc.Latex, &styleJSON, &doc.Version, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	if doc.Style, err = decodeStyle(styleJSON); err != nil {
		return nil, err
	}
	return &doc, nil
}

// SaveDocumentVersion replaces the document's LaTeX and style and records the
// new version. Returns nil when the document does not exist.
func (db *DB) SaveDocumentVersion(ctx context.Context, id uuid.UUID, latex string, style types.StyleConfig) (*Document, error) {
	styleJSON, err := encodeStyle(style)
	if err != nil {
		return nil, err
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	doc := Document{ID: id, Latex: latex, Style: style}
	err = tx.QueryRow(ctx,
		`UPDATE documents SET latex = $2, style = $3, version = version + 1, updated_at = NOW()
		 WHERE id = $1
		 RETURNING label, version, created_at, updated_at`,
		id, latex, styleJSON,
	).Scan(&doc.Label, &doc.Version, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO document_versions (document_id, version, latex, style)
		 VALUES ($1, $2, $3, $4)`,
		id, doc.Version, latex, styleJSON,
	); err != nil {
		return nil, fmt.Errorf("failed to record document version: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit document version: %w", err)
	}
	return &doc, nil
}

// ListDocumentVersions returns every saved version of a document, oldest first
func (db *DB) ListDocumentVersions(ctx context.Context, id uuid.UUID) ([]DocumentVersion, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT document_id, version, latex, style, created_at
		 FROM document_versions WHERE document_id = $1 ORDER BY version`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list document versions: %w", err)
	}
	defer rows.Close()

	var versions []DocumentVersion
	for rows.Next() {
		var v DocumentVersion
		var styleJSON []byte
		if err := rows.Scan(&v.DocumentID, &v.Version, &v.Latex, &styleJSON, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document version: %w", err)
		}
		if v.Style, err = decodeStyle(styleJSON); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate document versions: %w", err)
	}
	return versions, nil
}
