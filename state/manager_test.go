package state

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"eduledger/native/certificate"
	"eduledger/native/token"
	"eduledger/storage"
)

func addr(b byte) [20]byte {
	var a [20]byte
	a[19] = b
	return a
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	db := storage.NewMemDB()
	t.Cleanup(db.Close)
	return NewManager(db)
}

func TestAccessRoundTrip(t *testing.T) {
	m := newTestManager(t)

	_, ok, err := m.AccessAdminGet()
	require.NoError(t, err)
	require.False(t, ok, "fresh state has no admin")

	require.NoError(t, m.AccessAdminPut(addr(1)))
	admin, ok, err := m.AccessAdminGet()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, addr(1), admin)

	paused, err := m.AccessPausedGet()
	require.NoError(t, err)
	require.False(t, paused)
	require.NoError(t, m.AccessPausedPut(true))
	paused, err = m.AccessPausedGet()
	require.NoError(t, err)
	require.True(t, paused)

	flagged, err := m.AccessMinterGet(addr(2))
	require.NoError(t, err)
	require.False(t, flagged, "absent minter entry reads false")
	require.NoError(t, m.AccessMinterPut(addr(2), true))
	flagged, err = m.AccessMinterGet(addr(2))
	require.NoError(t, err)
	require.True(t, flagged)
	// Removal semantics store an explicit false flag.
	require.NoError(t, m.AccessMinterPut(addr(2), false))
	flagged, err = m.AccessMinterGet(addr(2))
	require.NoError(t, err)
	require.False(t, flagged)

	listed, err := m.AccessBlacklistGet(addr(3))
	require.NoError(t, err)
	require.False(t, listed)
	require.NoError(t, m.AccessBlacklistPut(addr(3), true))
	listed, err = m.AccessBlacklistGet(addr(3))
	require.NoError(t, err)
	require.True(t, listed)
}

func TestTokenRoundTrip(t *testing.T) {
	m := newTestManager(t)

	balance, err := m.TokenBalanceGet(addr(1))
	require.NoError(t, err)
	require.Zero(t, balance.Sign(), "absent balance reads zero")

	require.NoError(t, m.TokenBalancePut(addr(1), big.NewInt(1234)))
	balance, err = m.TokenBalanceGet(addr(1))
	require.NoError(t, err)
	require.Equal(t, int64(1234), balance.Int64())

	supply, err := m.TokenSupplyGet()
	require.NoError(t, err)
	require.Zero(t, supply.Sign())
	require.NoError(t, m.TokenSupplyPut(big.NewInt(1234)))
	supply, err = m.TokenSupplyGet()
	require.NoError(t, err)
	require.Equal(t, int64(1234), supply.Int64())

	allowance, err := m.TokenAllowanceGet(addr(1), addr(2))
	require.NoError(t, err)
	require.Zero(t, allowance.Sign())
	require.NoError(t, m.TokenAllowancePut(addr(1), addr(2), big.NewInt(55)))
	allowance, err = m.TokenAllowanceGet(addr(1), addr(2))
	require.NoError(t, err)
	require.Equal(t, int64(55), allowance.Int64())
	// The reverse pair is a distinct key.
	reverse, err := m.TokenAllowanceGet(addr(2), addr(1))
	require.NoError(t, err)
	require.Zero(t, reverse.Sign())

	counter, err := m.TokenMintCounterGet()
	require.NoError(t, err)
	require.Zero(t, counter)
	require.NoError(t, m.TokenMintCounterPut(7))
	counter, err = m.TokenMintCounterGet()
	require.NoError(t, err)
	require.Equal(t, uint64(7), counter)

	_, ok, err := m.TokenMintRecordGet(1)
	require.NoError(t, err)
	require.False(t, ok)
	record := &token.MintRecord{
		ID:        1,
		Minter:    addr(1),
		Recipient: addr(2),
		Amount:    big.NewInt(500),
		Metadata:  "course completion",
		Height:    9,
	}
	require.NoError(t, m.TokenMintRecordPut(record))
	loaded, ok, err := m.TokenMintRecordGet(1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, record.Minter, loaded.Minter)
	require.Equal(t, record.Recipient, loaded.Recipient)
	require.Zero(t, record.Amount.Cmp(loaded.Amount))
	require.Equal(t, record.Metadata, loaded.Metadata)
	require.Equal(t, record.Height, loaded.Height)
}

func TestCertificateRoundTrip(t *testing.T) {
	m := newTestManager(t)

	counter, err := m.CertificateCounterGet()
	require.NoError(t, err)
	require.Zero(t, counter)
	require.NoError(t, m.CertificateCounterPut(3))
	counter, err = m.CertificateCounterGet()
	require.NoError(t, err)
	require.Equal(t, uint64(3), counter)

	_, ok, err := m.CertificateOwnerGet(1)
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, m.CertificateOwnerPut(1, addr(2)))
	owner, ok, err := m.CertificateOwnerGet(1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, addr(2), owner)

	meta := &certificate.Metadata{
		ModuleRef:   "module-go-101",
		Recipient:   addr(2),
		Title:       "Go Basics",
		Description: "Completed the first course",
		Height:      4,
	}
	require.NoError(t, m.CertificateMetadataPut(1, meta))
	loadedMeta, ok, err := m.CertificateMetadataGet(1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, meta, loadedMeta)

	// Burn deletes only the owner and metadata projections.
	require.NoError(t, m.CertificateOwnerDelete(1))
	require.NoError(t, m.CertificateMetadataDelete(1))
	_, ok, err = m.CertificateOwnerGet(1)
	require.NoError(t, err)
	require.False(t, ok)
	_, ok, err = m.CertificateMetadataGet(1)
	require.NoError(t, err)
	require.False(t, ok)

	entry := &certificate.Version{TokenID: 1, Version: 5, Payload: "rev-5", Height: 4}
	require.NoError(t, m.CertificateVersionPut(entry))
	loadedVersion, ok, err := m.CertificateVersionGet(1, 5)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, entry, loadedVersion)
	_, ok, err = m.CertificateVersionGet(1, 6)
	require.NoError(t, err)
	require.False(t, ok)

	category := &certificate.Category{Label: "course", Tags: []string{"go", "basics"}, Height: 4}
	require.NoError(t, m.CertificateCategoryPut(1, category))
	loadedCategory, ok, err := m.CertificateCategoryGet(1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, category, loadedCategory)

	grant := &certificate.CollaboratorGrant{
		TokenID:      1,
		Collaborator: addr(4),
		Role:         "editor",
		Permissions:  []string{"write"},
		Height:       4,
	}
	require.NoError(t, m.CertificateCollaboratorPut(grant))
	loadedGrant, ok, err := m.CertificateCollaboratorGet(1, addr(4))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, grant, loadedGrant)

	status := &certificate.Status{Label: "active", Visible: true, Height: 4}
	require.NoError(t, m.CertificateStatusPut(1, status))
	loadedStatus, ok, err := m.CertificateStatusGet(1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, status, loadedStatus)
}

func TestManagerPersistsAcrossInstances(t *testing.T) {
	db := storage.NewMemDB()
	t.Cleanup(db.Close)

	first := NewManager(db)
	require.NoError(t, first.AccessAdminPut(addr(1)))
	require.NoError(t, first.TokenBalancePut(addr(2), big.NewInt(77)))

	second := NewManager(db)
	admin, ok, err := second.AccessAdminGet()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, addr(1), admin)
	balance, err := second.TokenBalanceGet(addr(2))
	require.NoError(t, err)
	require.Equal(t, int64(77), balance.Int64())
}
