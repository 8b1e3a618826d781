package core

import (
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"eduledger/config"
	"eduledger/core/events"
	"eduledger/native/certificate"
	"eduledger/native/token"
	"eduledger/storage"
)

func addr(b byte) [20]byte {
	var a [20]byte
	a[19] = b
	return a
}

func hexAddr(a [20]byte) string {
	return "0x" + hex.EncodeToString(a[:])
}

func newTestNode(t *testing.T) (*Node, storage.Database) {
	t.Helper()
	db := storage.NewMemDB()
	t.Cleanup(db.Close)
	cfg := config.Default()
	cfg.GenesisAdmin = hexAddr(addr(1))
	node, err := NewNode(cfg, db)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	return node, db
}

func TestNewNodeRequiresGenesisAdmin(t *testing.T) {
	db := storage.NewMemDB()
	t.Cleanup(db.Close)
	if _, err := NewNode(config.Default(), db); !errors.Is(err, ErrNoGenesisAdmin) {
		t.Fatalf("expected ErrNoGenesisAdmin, got %v", err)
	}
}

func TestNodeSeedsGenesisAdmin(t *testing.T) {
	node, _ := newTestNode(t)
	if got := node.GetAdmin(); got != addr(1) {
		t.Fatalf("unexpected admin: %v", got)
	}
	if !node.IsMinter(addr(1)) {
		t.Fatalf("genesis admin must be pre-registered as minter")
	}
}

func TestNodeReopenKeepsAdmin(t *testing.T) {
	db := storage.NewMemDB()
	t.Cleanup(db.Close)
	cfg := config.Default()
	cfg.GenesisAdmin = hexAddr(addr(1))
	if _, err := NewNode(cfg, db); err != nil {
		t.Fatalf("first node: %v", err)
	}
	// A reopened database needs no GenesisAdmin and keeps its admin.
	reopened, err := NewNode(config.Default(), db)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := reopened.GetAdmin(); got != addr(1) {
		t.Fatalf("reopened node lost the admin: %v", got)
	}
}

func TestNodeRewardScenario(t *testing.T) {
	node, _ := newTestNode(t)

	id, err := node.MintToken(addr(1), big.NewInt(1000), addr(11), "reward")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected record id 1, got %d", id)
	}
	if err := node.TransferToken(addr(11), big.NewInt(500), addr(11), addr(12)); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if err := node.ApproveToken(addr(11), addr(12), big.NewInt(500)); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := node.TransferTokenFrom(addr(12), big.NewInt(300), addr(11), addr(12)); err != nil {
		t.Fatalf("transferFrom: %v", err)
	}

	if got := node.GetBalance(addr(11)); got.Cmp(big.NewInt(200)) != 0 {
		t.Fatalf("unexpected U1 balance: %s", got)
	}
	if got := node.GetBalance(addr(12)); got.Cmp(big.NewInt(800)) != 0 {
		t.Fatalf("unexpected U2 balance: %s", got)
	}
	if got := node.GetAllowance(addr(11), addr(12)); got.Cmp(big.NewInt(200)) != 0 {
		t.Fatalf("unexpected allowance: %s", got)
	}
	if got := node.GetTotalSupply(); got.Cmp(big.NewInt(1000)) != 0 {
		t.Fatalf("unexpected supply: %s", got)
	}
	if got := node.Height(); got != 4 {
		t.Fatalf("expected height 4 after four mutating calls, got %d", got)
	}

	record, ok := node.GetMintRecord(1)
	if !ok {
		t.Fatalf("missing mint record")
	}
	if record.Height != 1 {
		t.Fatalf("mint record must carry the call height, got %d", record.Height)
	}

	recorded := node.Events()
	if len(recorded) != 4 {
		t.Fatalf("expected 4 audit events, got %d", len(recorded))
	}
	if recorded[0].Type != events.TypeTokenMinted {
		t.Fatalf("unexpected first event: %s", recorded[0].Type)
	}
	if recorded[0].Attributes["amount"] != "1000" {
		t.Fatalf("unexpected mint amount attribute: %s", recorded[0].Attributes["amount"])
	}
}

func TestNodePauseGatesBothEngines(t *testing.T) {
	node, _ := newTestNode(t)
	if err := node.Pause(addr(1)); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if !node.IsPaused() {
		t.Fatalf("expected paused")
	}
	if _, err := node.MintToken(addr(1), big.NewInt(1), addr(2), ""); !errors.Is(err, token.ErrPaused) {
		t.Fatalf("expected token.ErrPaused, got %v", err)
	}
	if _, err := node.MintCertificate(addr(1), "m", addr(2), "t", "d"); !errors.Is(err, certificate.ErrPaused) {
		t.Fatalf("expected certificate.ErrPaused, got %v", err)
	}
	if err := node.Unpause(addr(1)); err != nil {
		t.Fatalf("unpause: %v", err)
	}
	if _, err := node.MintToken(addr(1), big.NewInt(1), addr(2), ""); err != nil {
		t.Fatalf("mint after unpause: %v", err)
	}
}

func TestNodeBlacklistBlocksMint(t *testing.T) {
	node, _ := newTestNode(t)
	if err := node.Blacklist(addr(1), addr(2)); err != nil {
		t.Fatalf("blacklist: %v", err)
	}
	if _, err := node.MintToken(addr(1), big.NewInt(10), addr(2), ""); !errors.Is(err, token.ErrBlacklisted) {
		t.Fatalf("expected token.ErrBlacklisted, got %v", err)
	}
	if got := node.GetTotalSupply(); got.Sign() != 0 {
		t.Fatalf("failed mint changed supply: %s", got)
	}
	if err := node.Unblacklist(addr(1), addr(2)); err != nil {
		t.Fatalf("unblacklist: %v", err)
	}
	if _, err := node.MintToken(addr(1), big.NewInt(10), addr(2), ""); err != nil {
		t.Fatalf("mint after unblacklist: %v", err)
	}
}

func TestNodeCertificateLifecycle(t *testing.T) {
	node, _ := newTestNode(t)

	id, err := node.MintCertificate(addr(1), "module-go-101", addr(2), "Go Basics", "Completed the first course")
	if err != nil {
		t.Fatalf("mint certificate: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected certificate id 1, got %d", id)
	}
	if err := node.RegisterCertificateVersion(addr(2), id, 1, "rev-a"); err != nil {
		t.Fatalf("register version: %v", err)
	}
	if err := node.AddCertificateCategory(addr(2), id, "course", []string{"go"}); err != nil {
		t.Fatalf("add category: %v", err)
	}
	if err := node.AddCertificateCollaborator(addr(2), id, addr(3), "reviewer", []string{"read"}); err != nil {
		t.Fatalf("add collaborator: %v", err)
	}
	if err := node.UpdateCertificateStatus(addr(2), id, "published", true); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if err := node.TransferCertificate(addr(2), id, addr(4)); err != nil {
		t.Fatalf("transfer certificate: %v", err)
	}
	owner, ok := node.GetCertificateOwner(id)
	if !ok || owner != addr(4) {
		t.Fatalf("unexpected owner: %v ok=%v", owner, ok)
	}

	if err := node.BurnCertificate(addr(4), id); err != nil {
		t.Fatalf("burn certificate: %v", err)
	}
	if _, ok := node.GetCertificateOwner(id); ok {
		t.Fatalf("burned certificate still has an owner")
	}
	if _, ok := node.GetCertificateMetadata(id); ok {
		t.Fatalf("burned certificate still has metadata")
	}
	// History survives the burn.
	if entry, ok := node.GetCertificateVersion(id, 1); !ok || entry.Payload != "rev-a" {
		t.Fatalf("version history lost: %+v ok=%v", entry, ok)
	}
	if record, ok := node.GetCertificateCategory(id); !ok || record.Label != "course" {
		t.Fatalf("category record lost")
	}
	if grant, ok := node.GetCertificateCollaborator(id, addr(3)); !ok || grant.Role != "reviewer" {
		t.Fatalf("collaborator grant lost")
	}
	if record, ok := node.GetCertificateStatus(id); !ok || record.Label != "published" {
		t.Fatalf("status record lost")
	}
}

func TestNodeRejectedCallsStillAdvanceHeight(t *testing.T) {
	node, _ := newTestNode(t)
	if _, err := node.MintToken(addr(2), big.NewInt(1), addr(3), ""); !errors.Is(err, token.ErrInvalidMinter) {
		t.Fatalf("expected token.ErrInvalidMinter, got %v", err)
	}
	// The substrate admits the call, so the height moves even on a
	// rejected operation; queries never move it.
	if got := node.Height(); got != 1 {
		t.Fatalf("expected height 1, got %d", got)
	}
	node.GetBalance(addr(3))
	if got := node.Height(); got != 1 {
		t.Fatalf("queries must not advance the height, got %d", got)
	}
}
