package repository

import (
	"context"
	"fmt"
	"time"

	"inkhub/internal/models"

	"github.com/Masterminds/squirrel"
)

// InsertNews stores a news item. Insertion order is kept by the seq column.
func (r *Repository) InsertNews(ctx context.Context, item models.NewsItem) error {
	query, args, err := r.Builder.Insert("news").
		Columns("id", "title", "body", "image", "created_at").
		Values(item.ID, item.Title, item.Body, item.Image, item.CreatedAt.UnixMilli()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert news item: %w", err)
	}
	return nil
}

// ListNews returns all news items in insertion order, or reversed when
// newestFirst is set.
func (r *Repository) ListNews(ctx context.Context, newestFirst bool) ([]models.NewsItem, error) {
	order := "seq ASC"
	if newestFirst {
		order = "seq DESC"
	}

	query, args, err := r.Builder.Select("id", "title", "body", "image", "created_at").
		From("news").
		OrderBy(order).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query news: %w", err)
	}
	defer rows.Close()

	items := make([]models.NewsItem, 0)
	for rows.Next() {
		var item models.NewsItem
		var createdAt int64
		if err := rows.Scan(&item.ID, &item.Title, &item.Body, &item.Image, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan news item: %w", err)
		}
		item.CreatedAt = time.UnixMilli(createdAt).UTC()
		items = append(items, item)
	}
	return items, rows.Err()
}

// DeleteNews removes the item with the given id and reports how many rows
// were removed (0 or 1).
func (r *Repository) DeleteNews(ctx context.Context, id string) (int64, error) {
	query, args, err := r.Builder.Delete("news").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete news item: %w", err)
	}
	return res.RowsAffected()
}
