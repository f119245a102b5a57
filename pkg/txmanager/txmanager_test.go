package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	commitErr  error
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Commit() error {
	f.committed = true
	return f.commitErr
}

func (f *fakeTx) Rollback() error {
	f.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx      *fakeTx
	opts    *sql.TxOptions
	begins  int
	beginFn func() error
}

func (f *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	f.begins++
	f.opts = opts
	if f.beginFn != nil {
		if err := f.beginFn(); err != nil {
			return nil, err
		}
	}
	return f.tx, nil
}

func TestDoSerializable_Commits(t *testing.T) {
	tx := &fakeTx{}
	db := &fakeBeginner{tx: tx}
	m := NewTransactionManager(db)

	var sawTx bool
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		sawTx = dbmetrics.IsInTransaction(ctx)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, sawTx)
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
	assert.Equal(t, sql.LevelSerializable, db.opts.Isolation)
}

func TestDo_RollsBackOnError(t *testing.T) {
	tx := &fakeTx{}
	m := NewTransactionManager(&fakeBeginner{tx: tx})
	boom := errors.New("boom")

	err := m.Do(context.Background(), func(ctx context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func TestDoSerializable_MapsSerializationFailure(t *testing.T) {
	t.Run("inside fn", func(t *testing.T) {
		m := NewTransactionManager(&fakeBeginner{tx: &fakeTx{}})
		err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
			return &pq.Error{Code: "40001"}
		})
		assert.ErrorIs(t, err, ErrSerializationFailure)
	})

	t.Run("on commit", func(t *testing.T) {
		m := NewTransactionManager(&fakeBeginner{tx: &fakeTx{commitErr: &pq.Error{Code: "40001"}}})
		err := m.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })
		assert.ErrorIs(t, err, ErrSerializationFailure)
	})

	t.Run("other commit error", func(t *testing.T) {
		m := NewTransactionManager(&fakeBeginner{tx: &fakeTx{commitErr: errors.New("conn reset")}})
		err := m.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })
		assert.ErrorIs(t, err, ErrTransaction)
		assert.NotErrorIs(t, err, ErrSerializationFailure)
	})
}

func TestDo_NestedReusesTransaction(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return m.Do(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Equal(t, 1, db.begins)
}

func TestDo_BeginError(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{beginFn: func() error { return errors.New("no conn") }})
	err := m.Do(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrTransaction)
}

func TestWrapQueryError(t *testing.T) {
	errExec := errors.New("repo: failed to execute query")

	t.Run("serialization failure", func(t *testing.T) {
		err := WrapQueryError(errExec, "ActiveOverlapping - execute query", &pq.Error{Code: "40001"})
		assert.ErrorIs(t, err, ErrSerializationFailure)
		assert.NotErrorIs(t, err, errExec)
	})

	t.Run("other error", func(t *testing.T) {
		err := WrapQueryError(errExec, "ActiveOverlapping - execute query", &pq.Error{Code: "42P01"})
		assert.ErrorIs(t, err, errExec)
		assert.NotErrorIs(t, err, ErrSerializationFailure)
	})
}
