package dbmetrics

import (
	"context"
	"database/sql"
)

// QueryExecutor минимальный интерфейс исполнителя запросов
// Реализуется *sql.DB, *sql.Tx, *dbmetrics.DB и *dbmetrics.Tx
type QueryExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// DBExecutor интерфейс, который репозитории принимают в конструкторе
// Совпадает с QueryExecutor: транзакции репозитории получают через контекст
type DBExecutor = QueryExecutor

// TxExecutor исполнитель запросов внутри транзакции
type TxExecutor interface {
	QueryExecutor
	Commit() error
	Rollback() error
}

type txContextKey struct{}

// WithTransaction кладет активную транзакцию в контекст
// Используется транзакционными менеджерами; репозитории достают её через GetExecutor
func WithTransaction(ctx context.Context, tx QueryExecutor) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// TxFromContext возвращает транзакцию из контекста, если она там есть
func TxFromContext(ctx context.Context) (QueryExecutor, bool) {
	tx, ok := ctx.Value(txContextKey{}).(QueryExecutor)
	return tx, ok
}

// IsInTransaction возвращает true, если в контексте есть активная транзакция
func IsInTransaction(ctx context.Context) bool {
	_, ok := TxFromContext(ctx)
	return ok
}

// GetExecutor возвращает исполнителя запросов: транзакцию из контекста,
// если она есть, иначе переданный по умолчанию (обычно поле репозитория)
func GetExecutor(ctx context.Context, fallback QueryExecutor) QueryExecutor {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return fallback
}
