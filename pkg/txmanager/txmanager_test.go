package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
)

type recordingTx struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
}

func (t *recordingTx) Commit() error   { t.committed = true; return nil }
func (t *recordingTx) Rollback() error { t.rolledBack = true; return nil }

type recordingDB struct {
	begun []*sql.TxOptions
	tx    *recordingTx
}

func (d *recordingDB) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	d.begun = append(d.begun, opts)
	d.tx = &recordingTx{}
	return d.tx, nil
}

func TestTransactionManager_Commit(t *testing.T) {
	db := &recordingDB{}
	tm := NewTransactionManager(db)

	var sawTx bool
	err := tm.Do(context.Background(), func(ctx context.Context) error {
		sawTx = dbmetrics.IsInTransaction(ctx)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, sawTx)
	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)
	assert.Equal(t, sql.LevelReadCommitted, db.begun[0].Isolation)
}

func TestTransactionManager_RollbackOnError(t *testing.T) {
	db := &recordingDB{}
	tm := NewTransactionManager(db)
	boom := errors.New("boom")

	err := tm.DoSerializable(context.Background(), func(context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.True(t, db.tx.rolledBack)
	assert.False(t, db.tx.committed)
	assert.Equal(t, sql.LevelSerializable, db.begun[0].Isolation)
}

func TestTransactionManager_NestedJoinsOuter(t *testing.T) {
	db := &recordingDB{}
	tm := NewTransactionManager(db)

	err := tm.Do(context.Background(), func(ctx context.Context) error {
		return tm.DoReadOnly(ctx, func(context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Len(t, db.begun, 1)
}

func TestTransactionManager_ReadOnly(t *testing.T) {
	db := &recordingDB{}
	tm := NewTransactionManager(db)

	require.NoError(t, tm.DoReadOnly(context.Background(), func(context.Context) error { return nil }))
	assert.True(t, db.begun[0].ReadOnly)
	assert.Equal(t, sql.LevelRepeatableRead, db.begun[0].Isolation)
}
