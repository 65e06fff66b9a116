package service

import (
	"context"
	"testing"

	"ticket-registry/config"
	"ticket-registry/internal/authority"
	"ticket-registry/internal/ledger"

	"github.com/stretchr/testify/require"
)

const adminID = "admin"

func testRegistryConfig() config.RegistryConfig {
	return config.RegistryConfig{
		AdminID:          adminID,
		MaxBatchSize:     50,
		MaxInfoBytes:     128,
		MinPrice:         10,
		BatchIssuePolicy: config.BatchPolicyAtomic,
	}
}

func newTestAuthority() *authority.AdminAuthority {
	return authority.NewAdminAuthority(adminID)
}

// seedTicket 直接在存放層種一張票，回傳 id
func seedTicket(t *testing.T, l ledger.TicketLedger, info string, owner string) uint64 {
	t.Helper()

	id, err := l.IssueOne(context.Background(), info, owner)
	require.NoError(t, err)
	return id
}

// seedCancelledTicket 種一張已作廢的票
func seedCancelledTicket(t *testing.T, l ledger.TicketLedger, info string, owner string) uint64 {
	t.Helper()

	id := seedTicket(t, l, info, owner)
	require.NoError(t, l.SetCancelled(context.Background(), id, true))
	return id
}
