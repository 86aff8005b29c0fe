package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/staffhub-api/internal/domain/policy"
)

// Querier lo cumplen *pgxpool.Pool y pgx.Tx: los repositorios funcionan dentro o fuera de una tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// pgxScanner abstrae pgx.Row y pgx.Rows para reutilizar los scan*.
type pgxScanner interface {
	Scan(dest ...any) error
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// scopeCondition traduce un policy.Scope a una condición SQL sobre la fila del usuario dueño
// (alias owner). Los placeholders empiezan en $next. El tenant siempre se filtra.
func scopeCondition(scope policy.Scope, owner string, next int) (string, []any) {
	cond := fmt.Sprintf("%s.company_id = $%d", owner, next)
	args := []any{scope.CompanyID}
	switch scope.Kind {
	case policy.ScopeSelf:
		cond += fmt.Sprintf(" AND %s.id = $%d", owner, next+1)
		args = append(args, scope.UserID)
	case policy.ScopeMarket:
		cond += fmt.Sprintf(" AND %s.market_id = $%d", owner, next+1)
		args = append(args, scope.MarketID)
	}
	return cond, args
}

// collect recorre rows aplicando scan y cierra el cursor.
func collect[T any](rows pgx.Rows, scan func(pgxScanner) (*T, error)) ([]*T, error) {
	defer rows.Close()
	var out []*T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
