// Package core wires the access controller and both accounting engines to
// a storage backend and exposes the serialized entry points the
// surrounding ledger substrate calls one at a time.
package core

import (
	"errors"
	"log/slog"
	"math/big"
	"strings"
	"sync"

	"eduledger/config"
	"eduledger/core/events"
	"eduledger/core/types"
	"eduledger/native/access"
	"eduledger/native/certificate"
	"eduledger/native/token"
	"eduledger/observability"
	"eduledger/observability/logging"
	"eduledger/state"
	"eduledger/storage"
)

// ErrNoGenesisAdmin is returned when a fresh database is opened without a
// configured genesis admin.
var ErrNoGenesisAdmin = errors.New("core: fresh database requires GenesisAdmin")

// meteredEmitter counts every emitted event before appending it to the
// audit recorder.
type meteredEmitter struct {
	sink *events.Recorder
}

func (m meteredEmitter) Emit(evt events.Event) {
	if evt == nil {
		return
	}
	observability.Engines().RecordEvent(evt.EventType())
	m.sink.Emit(evt)
}

// Node owns the database, the state manager, the engines, the ledger
// height, and the audit recorder. Calls are serialized: one mutating
// operation runs to completion before the next is admitted.
type Node struct {
	mu       sync.Mutex
	db       storage.Database
	state    *state.Manager
	access   *access.Controller
	tokens   *token.Engine
	certs    *certificate.Engine
	recorder *events.Recorder
	logger   *slog.Logger
	height   uint64
}

// NewNode opens the engines over the provided database. A fresh database
// is initialised with the configured genesis admin as deployer; a reopened
// one keeps its recorded admin.
func NewNode(cfg *config.Config, db storage.Database) (*Node, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	logger := logging.Setup(cfg.ServiceName, cfg.Environment)

	manager := state.NewManager(db)
	var deployer [20]byte
	if _, ok, err := manager.AccessAdminGet(); err != nil {
		return nil, err
	} else if !ok {
		if strings.TrimSpace(cfg.GenesisAdmin) == "" {
			return nil, ErrNoGenesisAdmin
		}
		addr, err := cfg.AdminAddress()
		if err != nil {
			return nil, err
		}
		deployer = addr
	}
	controller, err := access.NewController(manager, deployer)
	if err != nil {
		return nil, err
	}

	node := &Node{
		db:       db,
		state:    manager,
		access:   controller,
		recorder: events.NewRecorder(),
		logger:   logger.With("component", "node"),
	}
	emitter := meteredEmitter{sink: node.recorder}
	heightFn := func() uint64 { return node.height }

	controller.SetEmitter(emitter)
	controller.SetHeightFunc(heightFn)

	node.tokens = token.NewEngine(manager, controller)
	node.tokens.SetEmitter(emitter)
	node.tokens.SetHeightFunc(heightFn)
	maxSupply, err := cfg.MaxSupplyBig()
	if err != nil {
		return nil, err
	}
	node.tokens.SetMaxSupply(maxSupply)

	node.certs = certificate.NewEngine(manager, controller)
	node.certs.SetEmitter(emitter)
	node.certs.SetHeightFunc(heightFn)

	node.logger.Info("node initialised", "admin", cfg.GenesisAdmin)
	return node, nil
}

// Close releases the underlying database.
func (n *Node) Close() {
	n.db.Close()
}

// Height returns the current ledger height.
func (n *Node) Height() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.height
}

// Events returns a snapshot of the audit log in emission order.
func (n *Node) Events() []types.Event {
	return n.recorder.Events()
}

// apply serializes a mutating call, advances the ledger height, runs the
// operation, and records the outcome.
func (n *Node) apply(module, op string, fn func() error) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.height++
	err := fn()
	observability.Engines().RecordOperation(module, op, err)
	if err != nil {
		n.logger.Debug("operation rejected", "module", module, "op", op, "height", n.height, "err", err)
	} else {
		n.logger.Info("operation applied", "module", module, "op", op, "height", n.height)
	}
	return err
}

// --- access entry points ---

func (n *Node) SetAdmin(caller [20]byte, newAdmin [20]byte) error {
	return n.apply("access", "setAdmin", func() error { return n.access.SetAdmin(caller, newAdmin) })
}

func (n *Node) Pause(caller [20]byte) error {
	return n.apply("access", "pause", func() error { return n.access.Pause(caller) })
}

func (n *Node) Unpause(caller [20]byte) error {
	return n.apply("access", "unpause", func() error { return n.access.Unpause(caller) })
}

func (n *Node) AddMinter(caller [20]byte, account [20]byte) error {
	return n.apply("access", "addMinter", func() error { return n.access.AddMinter(caller, account) })
}

func (n *Node) RemoveMinter(caller [20]byte, account [20]byte) error {
	return n.apply("access", "removeMinter", func() error { return n.access.RemoveMinter(caller, account) })
}

func (n *Node) Blacklist(caller [20]byte, account [20]byte) error {
	return n.apply("access", "blacklist", func() error { return n.access.Blacklist(caller, account) })
}

func (n *Node) Unblacklist(caller [20]byte, account [20]byte) error {
	return n.apply("access", "unblacklist", func() error { return n.access.Unblacklist(caller, account) })
}

// --- fungible ledger entry points ---

func (n *Node) MintToken(caller [20]byte, amount *big.Int, recipient [20]byte, metadata string) (uint64, error) {
	var id uint64
	err := n.apply("token", "mint", func() error {
		var mintErr error
		id, mintErr = n.tokens.Mint(caller, amount, recipient, metadata)
		return mintErr
	})
	return id, err
}

func (n *Node) TransferToken(caller [20]byte, amount *big.Int, sender [20]byte, recipient [20]byte) error {
	return n.apply("token", "transfer", func() error {
		return n.tokens.Transfer(caller, amount, sender, recipient)
	})
}

func (n *Node) TransferTokenFrom(caller [20]byte, amount *big.Int, owner [20]byte, recipient [20]byte) error {
	return n.apply("token", "transferFrom", func() error {
		return n.tokens.TransferFrom(caller, amount, owner, recipient)
	})
}

func (n *Node) ApproveToken(caller [20]byte, spender [20]byte, amount *big.Int) error {
	return n.apply("token", "approve", func() error {
		return n.tokens.Approve(caller, spender, amount)
	})
}

func (n *Node) BurnToken(caller [20]byte, amount *big.Int) error {
	return n.apply("token", "burn", func() error {
		return n.tokens.Burn(caller, amount)
	})
}

// --- certificate registry entry points ---

func (n *Node) MintCertificate(caller [20]byte, moduleRef string, recipient [20]byte, title string, description string) (uint64, error) {
	var id uint64
	err := n.apply("certificate", "mint", func() error {
		var mintErr error
		id, mintErr = n.certs.Mint(caller, moduleRef, recipient, title, description)
		return mintErr
	})
	return id, err
}

func (n *Node) TransferCertificate(caller [20]byte, id uint64, newOwner [20]byte) error {
	return n.apply("certificate", "transfer", func() error {
		return n.certs.Transfer(caller, id, newOwner)
	})
}

func (n *Node) BurnCertificate(caller [20]byte, id uint64) error {
	return n.apply("certificate", "burn", func() error {
		return n.certs.Burn(caller, id)
	})
}

func (n *Node) RegisterCertificateVersion(caller [20]byte, id uint64, version uint64, payload string) error {
	return n.apply("certificate", "registerNewVersion", func() error {
		return n.certs.RegisterNewVersion(caller, id, version, payload)
	})
}

func (n *Node) AddCertificateCategory(caller [20]byte, id uint64, category string, tags []string) error {
	return n.apply("certificate", "addCategory", func() error {
		return n.certs.AddCategory(caller, id, category, tags)
	})
}

func (n *Node) AddCertificateCollaborator(caller [20]byte, id uint64, collaborator [20]byte, role string, permissions []string) error {
	return n.apply("certificate", "addCollaborator", func() error {
		return n.certs.AddCollaborator(caller, id, collaborator, role, permissions)
	})
}

func (n *Node) UpdateCertificateStatus(caller [20]byte, id uint64, status string, visible bool) error {
	return n.apply("certificate", "updateStatus", func() error {
		return n.certs.UpdateStatus(caller, id, status, visible)
	})
}

// --- read-only queries; never fail, never advance the height ---

func (n *Node) GetBalance(account [20]byte) *big.Int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.tokens.BalanceOf(account)
}

func (n *Node) GetTotalSupply() *big.Int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.tokens.TotalSupply()
}

func (n *Node) GetAllowance(owner [20]byte, spender [20]byte) *big.Int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.tokens.Allowance(owner, spender)
}

func (n *Node) GetMintRecord(id uint64) (*token.MintRecord, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.tokens.GetMintRecord(id)
}

func (n *Node) GetAdmin() [20]byte {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.access.Admin()
}

func (n *Node) IsPaused() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.access.IsPaused()
}

func (n *Node) IsMinter(account [20]byte) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.access.IsMinter(account)
}

func (n *Node) IsBlacklisted(account [20]byte) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.access.IsBlacklisted(account)
}

func (n *Node) GetCertificateOwner(id uint64) ([20]byte, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.certs.GetOwner(id)
}

func (n *Node) GetCertificateMetadata(id uint64) (*certificate.Metadata, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.certs.GetMetadata(id)
}

func (n *Node) GetCertificateVersion(id uint64, version uint64) (*certificate.Version, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.certs.GetVersion(id, version)
}

func (n *Node) GetCertificateCategory(id uint64) (*certificate.Category, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.certs.GetCategory(id)
}

func (n *Node) GetCertificateCollaborator(id uint64, collaborator [20]byte) (*certificate.CollaboratorGrant, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.certs.GetCollaborator(id, collaborator)
}

func (n *Node) GetCertificateStatus(id uint64) (*certificate.Status, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.certs.GetStatus(id)
}
