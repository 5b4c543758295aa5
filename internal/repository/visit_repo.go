package repository

import (
	"context"
	"fmt"
	"time"

	"inkhub/internal/models"

	"github.com/Masterminds/squirrel"
)

// InsertVisit records a single page view.
func (r *Repository) InsertVisit(ctx context.Context, v models.Visit) error {
	query, args, err := r.Builder.Insert("visits").
		Columns("path", "visited_at").
		Values(v.Path, v.VisitedAt.Unix()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert visit: %w", err)
	}
	return nil
}

// VisitStats aggregates all visits at or after since.
func (r *Repository) VisitStats(ctx context.Context, since time.Time) (*models.VisitStats, error) {
	window := squirrel.GtOrEq{"visited_at": since.Unix()}
	stats := &models.VisitStats{
		Since:  since.UTC(),
		ByPath: make([]models.PathCount, 0),
		ByDay:  make([]models.DayCount, 0),
	}

	totalQuery, args, err := r.Builder.Select("COUNT(*)").From("visits").Where(window).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build total query: %w", err)
	}
	if err := r.DB.QueryRowContext(ctx, totalQuery, args...).Scan(&stats.Total); err != nil {
		return nil, fmt.Errorf("failed to count visits: %w", err)
	}

	pathQuery, args, err := r.Builder.Select("path", "COUNT(*) AS hits").
		From("visits").
		Where(window).
		GroupBy("path").
		OrderBy("hits DESC", "path ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build per-path query: %w", err)
	}
	rows, err := r.DB.QueryContext(ctx, pathQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query per-path visits: %w", err)
	}
	for rows.Next() {
		var pc models.PathCount
		if err := rows.Scan(&pc.Path, &pc.Count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan per-path visits: %w", err)
		}
		stats.ByPath = append(stats.ByPath, pc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	dayQuery, args, err := r.Builder.Select("strftime('%Y-%m-%d', visited_at, 'unixepoch') AS day", "COUNT(*)").
		From("visits").
		Where(window).
		GroupBy("day").
		OrderBy("day ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build per-day query: %w", err)
	}
	rows, err = r.DB.QueryContext(ctx, dayQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query per-day visits: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var dc models.DayCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan per-day visits: %w", err)
		}
		stats.ByDay = append(stats.ByDay, dc)
	}
	return stats, rows.Err()
}
