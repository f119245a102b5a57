package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
)

// SQLSTATE serialization_failure
const serializationFailureCode = "40001"

var (
	// ErrSerializationFailure Postgres отклонил сериализуемую транзакцию (SQLSTATE 40001)
	ErrSerializationFailure = errors.New("txmanager: serialization failure")

	// ErrTransaction ошибка открытия/фиксации транзакции
	ErrTransaction = errors.New("txmanager: transaction error")
)

// TxBeginner *dbmetrics.DB или любая совместимая обёртка
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции в транзакции, передавая её через контекст
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создаёт менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции READ COMMITTED
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		if IsSerializationFailure(err) && !errors.Is(err, ErrSerializationFailure) {
			return fmt.Errorf("%w: %v", ErrSerializationFailure, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if IsSerializationFailure(err) {
			return fmt.Errorf("%w: commit: %v", ErrSerializationFailure, err)
		}
		return fmt.Errorf("%w: commit: %v", ErrTransaction, err)
	}

	return nil
}

// IsSerializationFailure проверяет SQLSTATE 40001 в цепочке ошибок
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == serializationFailureCode
	}
	return false
}

// WrapQueryError оборачивает ошибку запроса в sentinel хранилища.
// SQLSTATE 40001 оборачивается в ErrSerializationFailure, чтобы вызывающий код мог повторить или отклонить операцию.
func WrapQueryError(sentinel error, op string, err error) error {
	if IsSerializationFailure(err) {
		return fmt.Errorf("%w: %s: %v", ErrSerializationFailure, op, err)
	}
	return fmt.Errorf("%w: %s: %v", sentinel, op, err)
}
