// Package store persists the stub backend's menu table.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/vparedes/menuadmin/internal/domain"
)

// ErrNotFound is returned for mutations on a missing row.
var ErrNotFound = fmt.Errorf("menu item not found")

type MenuStore struct {
	db *sql.DB
}

func NewMenuStore(db *sql.DB) *MenuStore {
	return &MenuStore{db: db}
}

const columns = `id, name_en, name_es, description_en, description_es, price,
	category, is_popular, is_vegetarian, ingredients, image`

func (s *MenuStore) Create(ctx context.Context, item domain.MenuItem) error {
	ingredients, err := json.Marshal(item.Ingredients)
	if err != nil {
		return fmt.Errorf("failed to encode ingredients: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO menu_items (`+columns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.ID, item.Name["en"], item.Name["es"],
		item.Description["en"], item.Description["es"],
		item.Price, item.Category, item.IsPopular, item.IsVegetarian,
		string(ingredients), item.Image)
	if err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}

func (s *MenuStore) GetByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+columns+` FROM menu_items WHERE id = ?
	`, id)

	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return item, nil
}

func (s *MenuStore) List(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+columns+` FROM menu_items ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	items := []domain.MenuItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}
	return items, nil
}

// Patch applies a partial update by reading the row, applying the patch, and
// writing it back in one transaction.
func (s *MenuStore) Patch(ctx context.Context, id string, patch domain.MenuItemPatch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `
		SELECT `+columns+` FROM menu_items WHERE id = ?
	`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get menu item: %w", err)
	}

	patch.Apply(item)

	ingredients, err := json.Marshal(item.Ingredients)
	if err != nil {
		return fmt.Errorf("failed to encode ingredients: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE menu_items SET name_en = ?, name_es = ?, description_en = ?,
			description_es = ?, price = ?, category = ?, is_popular = ?,
			is_vegetarian = ?, ingredients = ?, image = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, item.Name["en"], item.Name["es"],
		item.Description["en"], item.Description["es"],
		item.Price, item.Category, item.IsPopular, item.IsVegetarian,
		string(ingredients), item.Image, id)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit update: %w", err)
	}
	return nil
}

func (s *MenuStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM menu_items WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of rows, used to decide whether to seed.
func (s *MenuStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM menu_items").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count menu items: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*domain.MenuItem, error) {
	var (
		item          domain.MenuItem
		nameEN        string
		nameES        string
		descriptionEN string
		descriptionES string
		ingredients   string
	)
	err := row.Scan(&item.ID, &nameEN, &nameES, &descriptionEN, &descriptionES,
		&item.Price, &item.Category, &item.IsPopular, &item.IsVegetarian,
		&ingredients, &item.Image)
	if err != nil {
		return nil, err
	}

	item.Name = domain.LocalizedText{"en": nameEN, "es": nameES}
	item.Description = domain.LocalizedText{"en": descriptionEN, "es": descriptionES}
	if err := json.Unmarshal([]byte(ingredients), &item.Ingredients); err != nil {
		return nil, fmt.Errorf("failed to decode ingredients for %s: %w", item.ID, err)
	}
	return &item, nil
}
