package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mohsinonxrm/pptb-mxrm-fetchxml-studio-sub001/internal/fetchxml"
)

// View is one saved query/layout pair. ID is a UUIDv7 assigned at first
// save and stable across updates; Seq orders listings by first-save
// order.
type View struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FetchXML  string `json:"fetch_xml"`
	LayoutXML string `json:"layout_xml,omitempty"`
	Seq       int64  `json:"seq"`
}

// ErrViewNotFound is returned by GetView and DeleteView for unknown names.
var ErrViewNotFound = errors.New("view not found")

// SaveView inserts or updates a view by name. The fetch XML must pass
// syntax validation; the layout XML may be empty. Updating an existing
// view keeps its id and seq.
func (s *Store) SaveView(ctx context.Context, name, fetchXML, layoutXML string) (View, error) {
	if name == "" {
		return View{}, fmt.Errorf("save view: name is required")
	}
	if err := fetchxml.ValidateSyntax(fetchXML); err != nil {
		return View{}, fmt.Errorf("save view %q: invalid fetch xml: %w", name, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return View{}, fmt.Errorf("save view %q: %w", name, err)
	}
	defer tx.Rollback()

	var existing View
	err = tx.QueryRowContext(ctx,
		`SELECT id, seq FROM views WHERE name = ?`, name,
	).Scan(&existing.ID, &existing.Seq)
	switch {
	case err == nil:
		_, err = tx.ExecContext(ctx,
			`UPDATE views SET fetch_xml = ?, layout_xml = ? WHERE name = ?`,
			fetchXML, layoutXML, name)
		if err != nil {
			return View{}, fmt.Errorf("save view %q: %w", name, err)
		}
	case errors.Is(err, sql.ErrNoRows):
		var next int64
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(seq), 0) + 1 FROM views`,
		).Scan(&next); err != nil {
			return View{}, fmt.Errorf("save view %q: %w", name, err)
		}
		existing.ID = uuid.Must(uuid.NewV7()).String()
		existing.Seq = next
		_, err = tx.ExecContext(ctx,
			`INSERT INTO views (id, name, fetch_xml, layout_xml, seq) VALUES (?, ?, ?, ?, ?)`,
			existing.ID, name, fetchXML, layoutXML, next)
		if err != nil {
			return View{}, fmt.Errorf("save view %q: %w", name, err)
		}
	default:
		return View{}, fmt.Errorf("save view %q: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return View{}, fmt.Errorf("save view %q: %w", name, err)
	}
	return View{ID: existing.ID, Name: name, FetchXML: fetchXML, LayoutXML: layoutXML, Seq: existing.Seq}, nil
}

// GetView returns the view with the given name.
func (s *Store) GetView(ctx context.Context, name string) (View, error) {
	var v View
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, fetch_xml, layout_xml, seq FROM views WHERE name = ?`, name,
	).Scan(&v.ID, &v.Name, &v.FetchXML, &v.LayoutXML, &v.Seq)
	if errors.Is(err, sql.ErrNoRows) {
		return View{}, fmt.Errorf("get view %q: %w", name, ErrViewNotFound)
	}
	if err != nil {
		return View{}, fmt.Errorf("get view %q: %w", name, err)
	}
	return v, nil
}

// ListViews returns all views ordered by seq then id, so listings are
// deterministic across processes.
func (s *Store) ListViews(ctx context.Context) ([]View, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, fetch_xml, layout_xml, seq FROM views
		 ORDER BY seq ASC, id COLLATE BINARY ASC`)
	if err != nil {
		return nil, fmt.Errorf("list views: %w", err)
	}
	defer rows.Close()

	var views []View
	for rows.Next() {
		var v View
		if err := rows.Scan(&v.ID, &v.Name, &v.FetchXML, &v.LayoutXML, &v.Seq); err != nil {
			return nil, fmt.Errorf("list views: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list views: %w", err)
	}
	return views, nil
}

// DeleteView removes the view with the given name.
func (s *Store) DeleteView(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM views WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete view %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete view %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("delete view %q: %w", name, ErrViewNotFound)
	}
	return nil
}
