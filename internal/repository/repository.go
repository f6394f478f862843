package repository

import (
	"context"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/spec-kit/pizza-service/pkg/util/errorutil"
)

// ErrUnknownUser is returned when an email/password pair does not match an account.
var ErrUnknownUser = apperrors.NewDomainError("NOT_FOUND", "unknown user", http.StatusNotFound, nil)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// namePattern turns a "*" wildcard filter into a LIKE pattern.
func namePattern(name string) string {
	if name == "" {
		return "%"
	}
	return strings.ReplaceAll(name, "*", "%")
}

// pageWindow returns LIMIT and OFFSET for a one-row lookahead page.
func pageWindow(page, limit, firstPage int) (int, int) {
	if limit <= 0 {
		limit = 10
	}
	if page < firstPage {
		page = firstPage
	}
	return limit + 1, (page - firstPage) * limit
}
