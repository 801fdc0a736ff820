package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/household_ledger/internal/apperrors"
	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/SscSPs/household_ledger/internal/core/services"
	"github.com/SscSPs/household_ledger/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSheetsSync_NotConfigured(t *testing.T) {
	svc := services.NewSheetsSyncService(new(MockLedgerTransfer), nil, nil)

	_, err := svc.ExportToSheets(context.Background(), ownerID)
	assert.ErrorIs(t, err, apperrors.ErrInternal)

	_, err = svc.ImportFromSheets(context.Background(), ownerID, fixedNow, dto.ImportModeMerge)
	assert.ErrorIs(t, err, apperrors.ErrInternal)
}

func TestSheetsSync_Export(t *testing.T) {
	ctx := context.Background()
	transfer := new(MockLedgerTransfer)
	store := new(MockSnapshotStore)
	svc := services.NewSheetsSyncService(transfer, store, func() time.Time { return fixedNow })

	payload := []byte(`{"schemaVersion":2}`)
	transfer.On("ExportProfile", ctx, ownerID).Return(payload, nil).Once()
	store.On("AppendSnapshot", ctx, "profile:"+ownerID, fixedNow, payload).Return(nil).Once()

	res, err := svc.ExportToSheets(ctx, ownerID)

	require.NoError(t, err)
	assert.Equal(t, services.DatasetKey(ownerID), res.DatasetKey)
	assert.Equal(t, fixedNow, res.ExportedAt)
	assert.Equal(t, len(payload), res.Bytes)
	transfer.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestSheetsSync_ExportStoreError(t *testing.T) {
	ctx := context.Background()
	transfer := new(MockLedgerTransfer)
	store := new(MockSnapshotStore)
	svc := services.NewSheetsSyncService(transfer, store, func() time.Time { return fixedNow })

	transfer.On("ExportProfile", ctx, ownerID).Return([]byte("{}"), nil).Once()
	store.On("AppendSnapshot", ctx, services.DatasetKey(ownerID), fixedNow, []byte("{}")).Return(assert.AnError).Once()

	res, err := svc.ExportToSheets(ctx, ownerID)

	assert.Nil(t, res)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSheetsSync_Import(t *testing.T) {
	ctx := context.Background()
	transfer := new(MockLedgerTransfer)
	store := new(MockSnapshotStore)
	svc := services.NewSheetsSyncService(transfer, store, nil)

	payload := []byte(`{"collections":{"income":[]}}`)
	imported := domain.NewProfile()
	store.On("LatestSnapshot", ctx, services.DatasetKey(ownerID), fixedNow).Return(payload, nil).Once()
	transfer.On("ImportProfile", ctx, ownerID, payload, dto.ImportModeReplace).Return(&imported, nil).Once()

	p, err := svc.ImportFromSheets(ctx, ownerID, fixedNow, dto.ImportModeReplace)

	require.NoError(t, err)
	assert.Equal(t, &imported, p)
	store.AssertExpectations(t)
	transfer.AssertExpectations(t)
}

func TestSheetsSync_ImportWithoutSnapshot(t *testing.T) {
	ctx := context.Background()
	transfer := new(MockLedgerTransfer)
	store := new(MockSnapshotStore)
	svc := services.NewSheetsSyncService(transfer, store, nil)

	store.On("LatestSnapshot", ctx, services.DatasetKey(ownerID), fixedNow).Return(nil, apperrors.NewNotFoundError("none")).Once()

	_, err := svc.ImportFromSheets(ctx, ownerID, fixedNow, dto.ImportModeMerge)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	transfer.AssertNotCalled(t, "ImportProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
