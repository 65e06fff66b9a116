package service

import (
	"context"
	"errors"
	"testing"

	cacheMocks "ticket-registry/internal/cache/mocks"
	"ticket-registry/internal/ledger"
	"ticket-registry/internal/model"
	"ticket-registry/internal/service"
	apperrors "ticket-registry/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestQueryService_GetTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss falls through and populates", func(t *testing.T) {
		l := ledger.NewMemoryTicketLedger()
		mockCache := cacheMocks.NewMockTicketStateCache(t)
		svc := service.NewQueryService(newTestAuthority(), l, mockCache)

		id := seedTicket(t, l, "VIP-1", adminID)

		mockCache.EXPECT().GetTicket(ctx, id).Return(nil, nil).Once()
		mockCache.EXPECT().SetTicket(ctx, mock.Anything).Return(nil).Once()

		ticket, err := svc.GetTicket(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, "VIP-1", ticket.Info)
		mockCache.AssertExpectations(t)
	})

	t.Run("cache hit skips the ledger", func(t *testing.T) {
		l := ledger.NewMemoryTicketLedger()
		mockCache := cacheMocks.NewMockTicketStateCache(t)
		svc := service.NewQueryService(newTestAuthority(), l, mockCache)

		// 存放層沒有這張票，只能從快取來
		cached := &model.Ticket{ID: 7, Info: "cached-info"}
		mockCache.EXPECT().GetTicket(ctx, uint64(7)).Return(cached, nil).Once()

		ticket, err := svc.GetTicket(ctx, 7)

		require.NoError(t, err)
		assert.Equal(t, "cached-info", ticket.Info)
	})

	t.Run("cache failure does not fail the query", func(t *testing.T) {
		l := ledger.NewMemoryTicketLedger()
		mockCache := cacheMocks.NewMockTicketStateCache(t)
		svc := service.NewQueryService(newTestAuthority(), l, mockCache)

		id := seedTicket(t, l, "VIP-1", adminID)

		mockCache.EXPECT().GetTicket(ctx, id).Return(nil, errors.New("redis down")).Once()
		mockCache.EXPECT().SetTicket(ctx, mock.Anything).Return(errors.New("redis down")).Once()

		ticket, err := svc.GetTicket(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, "VIP-1", ticket.Info)
	})

	t.Run("Failed - ErrTicketNotFound", func(t *testing.T) {
		l := ledger.NewMemoryTicketLedger()
		mockCache := cacheMocks.NewMockTicketStateCache(t)
		svc := service.NewQueryService(newTestAuthority(), l, mockCache)

		mockCache.EXPECT().GetTicket(ctx, uint64(99)).Return(nil, nil).Once()

		_, err := svc.GetTicket(ctx, 99)

		assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
	})
}

func TestQueryService_Reads(t *testing.T) {
	ctx := context.Background()

	newQueryService := func(t *testing.T, l ledger.TicketLedger) service.QueryService {
		mockCache := cacheMocks.NewMockTicketStateCache(t)
		// 這組測試只驗證讀取語義，快取一律 miss
		mockCache.EXPECT().GetTicket(mock.Anything, mock.Anything).Return(nil, nil).Maybe()
		mockCache.EXPECT().SetTicket(mock.Anything, mock.Anything).Return(nil).Maybe()
		return service.NewQueryService(newTestAuthority(), l, mockCache)
	}

	t.Run("GetOwner - active, cancelled, restored", func(t *testing.T) {
		l := ledger.NewMemoryTicketLedger()
		svc := newQueryService(t, l)

		id := seedTicket(t, l, "VIP-1", "bob")

		owner, err := svc.GetOwner(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, owner)
		assert.Equal(t, "bob", *owner)

		require.NoError(t, l.SetCancelled(ctx, id, true))
		owner, err = svc.GetOwner(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, owner)

		require.NoError(t, l.SetCancelled(ctx, id, false))
		owner, err = svc.GetOwner(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, owner)
	})

	t.Run("Exists - issued, cancelled, unknown", func(t *testing.T) {
		l := ledger.NewMemoryTicketLedger()
		svc := newQueryService(t, l)

		id := seedTicket(t, l, "VIP-1", "bob")

		exists, err := svc.Exists(ctx, id)
		require.NoError(t, err)
		assert.True(t, exists)

		// 作廢的票券仍然存在（id 永不重用）
		require.NoError(t, l.SetCancelled(ctx, id, true))
		exists, err = svc.Exists(ctx, id)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = svc.Exists(ctx, 99)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("IsCancelled and IsTransferable", func(t *testing.T) {
		l := ledger.NewMemoryTicketLedger()
		svc := newQueryService(t, l)

		id := seedTicket(t, l, "VIP-1", "bob")

		cancelled, err := svc.IsCancelled(ctx, id)
		require.NoError(t, err)
		assert.False(t, cancelled)

		transferable, err := svc.IsTransferable(ctx, id)
		require.NoError(t, err)
		assert.True(t, transferable)

		require.NoError(t, l.SetCancelled(ctx, id, true))

		cancelled, err = svc.IsCancelled(ctx, id)
		require.NoError(t, err)
		assert.True(t, cancelled)

		transferable, err = svc.IsTransferable(ctx, id)
		require.NoError(t, err)
		assert.False(t, transferable)

		// 復原後沒有持有人，仍不可轉讓
		require.NoError(t, l.SetCancelled(ctx, id, false))
		transferable, err = svc.IsTransferable(ctx, id)
		require.NoError(t, err)
		assert.False(t, transferable)
	})

	t.Run("TotalIssued counts cancelled tickets too", func(t *testing.T) {
		l := ledger.NewMemoryTicketLedger()
		svc := newQueryService(t, l)

		seedTicket(t, l, "a", "bob")
		seedCancelledTicket(t, l, "b", "bob")

		count, err := svc.TotalIssued(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), count)
	})

	t.Run("GetBatchMetadata", func(t *testing.T) {
		l := ledger.NewMemoryTicketLedger()
		svc := newQueryService(t, l)

		ids, err := l.IssueBatch(ctx, []string{"a"}, adminID, "batch:ref:size=1")
		require.NoError(t, err)

		note, err := svc.GetBatchMetadata(ctx, ids[0])
		require.NoError(t, err)
		assert.Equal(t, "batch:ref:size=1", note)

		_, err = svc.GetBatchMetadata(ctx, 99)
		assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
	})

	t.Run("admin queries", func(t *testing.T) {
		l := ledger.NewMemoryTicketLedger()
		svc := newQueryService(t, l)

		assert.Equal(t, adminID, svc.AdminID())
		assert.True(t, svc.IsAdmin(adminID))
		assert.False(t, svc.IsAdmin("mallory"))
	})
}

func TestPriceService_ValidatePrice(t *testing.T) {
	svc := service.NewPriceService(10)

	t.Run("Success", func(t *testing.T) {
		assert.NoError(t, svc.ValidatePrice(10))
		assert.NoError(t, svc.ValidatePrice(250.5))
	})

	t.Run("Failed - ErrPriceTooLow", func(t *testing.T) {
		err := svc.ValidatePrice(9.99)
		assert.ErrorIs(t, err, apperrors.ErrPriceTooLow)
	})
}
