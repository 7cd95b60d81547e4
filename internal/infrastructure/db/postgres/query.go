package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// query adapts a prepared gorm chain to pagination.Query. Rows of model M are
// turned into domain values R by load, which may issue follow-up queries.
type query[M any, R any] struct {
	db   *gorm.DB
	load func(ctx context.Context, rows []M) ([]R, error)
}

func newQuery[M any, R any](db *gorm.DB, load func(ctx context.Context, rows []M) ([]R, error)) *query[M, R] {
	return &query[M, R]{db: db.Session(&gorm.Session{}), load: load}
}

func (q *query[M, R]) Ordered() bool {
	_, ok := q.db.Statement.Clauses["ORDER BY"]
	return ok
}

func (q *query[M, R]) Fetch(ctx context.Context, offset, limit int) ([]R, error) {
	var rows []M
	if err := q.db.WithContext(ctx).Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch rows: %w", err)
	}
	return q.load(ctx, rows)
}

func (q *query[M, R]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := q.db.WithContext(ctx).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return n, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

const dateLayout = "2006-01-02"
