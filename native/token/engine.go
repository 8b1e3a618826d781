// Package token implements the fungible reward-token ledger: per-account
// balances, allowances, burning, and minting with an append-only audit log.
package token

import (
	"math/big"
	"unicode/utf16"

	"eduledger/core/events"
)

// State is the persistence surface the ledger engine mutates. Absent
// balances and allowances read as zero.
type State interface {
	TokenBalanceGet(addr [20]byte) (*big.Int, error)
	TokenBalancePut(addr [20]byte, amount *big.Int) error
	TokenSupplyGet() (*big.Int, error)
	TokenSupplyPut(amount *big.Int) error
	TokenAllowanceGet(owner [20]byte, spender [20]byte) (*big.Int, error)
	TokenAllowancePut(owner [20]byte, spender [20]byte, amount *big.Int) error
	TokenMintCounterGet() (uint64, error)
	TokenMintCounterPut(id uint64) error
	TokenMintRecordGet(id uint64) (*MintRecord, bool, error)
	TokenMintRecordPut(record *MintRecord) error
}

// AccessView is the slice of the access controller the engine consults
// before mutating state.
type AccessView interface {
	IsPaused() bool
	IsMinter(account [20]byte) bool
	IsBlacklisted(account [20]byte) bool
}

// Engine applies ledger operations atomically: every precondition is
// checked before the first write, so a failing call leaves state untouched.
type Engine struct {
	state     State
	access    AccessView
	emitter   events.Emitter
	heightFn  func() uint64
	maxSupply *big.Int
}

// NewEngine constructs a ledger engine over the given state and access
// controller view.
func NewEngine(state State, access AccessView) *Engine {
	return &Engine{
		state:     state,
		access:    access,
		emitter:   events.NoopEmitter{},
		heightFn:  func() uint64 { return 0 },
		maxSupply: DefaultMaxSupply(),
	}
}

// SetEmitter configures the audit sink. Passing nil resets to a no-op.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetHeightFunc overrides the ledger height source used to timestamp mint
// records.
func (e *Engine) SetHeightFunc(height func() uint64) {
	if height == nil {
		e.heightFn = func() uint64 { return 0 }
		return
	}
	e.heightFn = height
}

// SetMaxSupply overrides the supply cap. Nil restores the default.
func (e *Engine) SetMaxSupply(max *big.Int) {
	if max == nil || max.Sign() <= 0 {
		e.maxSupply = DefaultMaxSupply()
		return
	}
	e.maxSupply = new(big.Int).Set(max)
}

func (e *Engine) emit(evt events.Event) {
	if e == nil || e.emitter == nil {
		return
	}
	e.emitter.Emit(evt)
}

func (e *Engine) height() uint64 {
	if e == nil || e.heightFn == nil {
		return 0
	}
	return e.heightFn()
}

func metadataUnits(metadata string) int {
	return len(utf16.Encode([]rune(metadata)))
}

func isNullAccount(addr [20]byte) bool {
	var zero [20]byte
	return addr == zero
}

// Mint creates new supply for the recipient and appends an immutable mint
// record. It returns the new record id.
func (e *Engine) Mint(caller [20]byte, amount *big.Int, recipient [20]byte, metadata string) (uint64, error) {
	if e == nil || e.state == nil {
		return 0, ErrNilState
	}
	if e.access.IsPaused() {
		return 0, ErrPaused
	}
	if !e.access.IsMinter(caller) {
		return 0, ErrInvalidMinter
	}
	if amount == nil || amount.Sign() <= 0 {
		return 0, ErrInvalidAmount
	}
	if isNullAccount(recipient) {
		return 0, ErrInvalidRecipient
	}
	if metadataUnits(metadata) > MetadataMaxLen {
		return 0, ErrMetadataTooLong
	}
	if e.access.IsBlacklisted(recipient) {
		return 0, ErrBlacklisted
	}
	supply, err := e.state.TokenSupplyGet()
	if err != nil {
		return 0, err
	}
	newSupply := new(big.Int).Add(supply, amount)
	if e.maxSupply != nil && newSupply.Cmp(e.maxSupply) > 0 {
		return 0, ErrSupplyCapExceeded
	}
	balance, err := e.state.TokenBalanceGet(recipient)
	if err != nil {
		return 0, err
	}
	counter, err := e.state.TokenMintCounterGet()
	if err != nil {
		return 0, err
	}

	id := counter + 1
	record := &MintRecord{
		ID:        id,
		Minter:    caller,
		Recipient: recipient,
		Amount:    new(big.Int).Set(amount),
		Metadata:  metadata,
		Height:    e.height(),
	}
	if err := e.state.TokenBalancePut(recipient, new(big.Int).Add(balance, amount)); err != nil {
		return 0, err
	}
	if err := e.state.TokenSupplyPut(newSupply); err != nil {
		return 0, err
	}
	if err := e.state.TokenMintRecordPut(record); err != nil {
		return 0, err
	}
	if err := e.state.TokenMintCounterPut(id); err != nil {
		return 0, err
	}
	e.emit(events.TokenMinted{
		RecordID:  id,
		Minter:    caller,
		Recipient: recipient,
		Amount:    record.Amount,
		Supply:    newSupply,
		Height:    record.Height,
	})
	return id, nil
}

// Transfer moves amount from the caller's own balance to the recipient.
// Third-party moves must go through TransferFrom with an allowance.
func (e *Engine) Transfer(caller [20]byte, amount *big.Int, sender [20]byte, recipient [20]byte) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if e.access.IsPaused() {
		return ErrPaused
	}
	if caller != sender {
		return ErrNotAuthorized
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if e.access.IsBlacklisted(recipient) {
		return ErrBlacklisted
	}
	senderBalance, err := e.state.TokenBalanceGet(sender)
	if err != nil {
		return err
	}
	if senderBalance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	// A self-transfer debits and credits the same account, so balances
	// stay as they are.
	if sender != recipient {
		recipientBalance, err := e.state.TokenBalanceGet(recipient)
		if err != nil {
			return err
		}
		if err := e.state.TokenBalancePut(sender, new(big.Int).Sub(senderBalance, amount)); err != nil {
			return err
		}
		if err := e.state.TokenBalancePut(recipient, new(big.Int).Add(recipientBalance, amount)); err != nil {
			return err
		}
	}
	e.emit(events.TokenTransferred{
		Caller:    caller,
		Sender:    sender,
		Recipient: recipient,
		Amount:    new(big.Int).Set(amount),
		Height:    e.height(),
	})
	return nil
}

// TransferFrom moves amount from the owner to the recipient on the
// strength of the (owner, caller) allowance, decrementing it by amount.
func (e *Engine) TransferFrom(caller [20]byte, amount *big.Int, owner [20]byte, recipient [20]byte) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if e.access.IsPaused() {
		return ErrPaused
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if e.access.IsBlacklisted(recipient) {
		return ErrBlacklisted
	}
	ownerBalance, err := e.state.TokenBalanceGet(owner)
	if err != nil {
		return err
	}
	if ownerBalance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	allowance, err := e.state.TokenAllowanceGet(owner, caller)
	if err != nil {
		return err
	}
	if allowance.Cmp(amount) < 0 {
		return ErrInsufficientAllowance
	}
	// The allowance is spent even when the owner is also the recipient;
	// only the balance writes collapse to a no-op in that case.
	if owner != recipient {
		recipientBalance, err := e.state.TokenBalanceGet(recipient)
		if err != nil {
			return err
		}
		if err := e.state.TokenBalancePut(owner, new(big.Int).Sub(ownerBalance, amount)); err != nil {
			return err
		}
		if err := e.state.TokenBalancePut(recipient, new(big.Int).Add(recipientBalance, amount)); err != nil {
			return err
		}
	}
	if err := e.state.TokenAllowancePut(owner, caller, new(big.Int).Sub(allowance, amount)); err != nil {
		return err
	}
	e.emit(events.TokenTransferred{
		Caller:    caller,
		Sender:    owner,
		Recipient: recipient,
		Amount:    new(big.Int).Set(amount),
		Height:    e.height(),
	})
	return nil
}

// Approve sets the (caller, spender) allowance to amount exactly. The new
// value overwrites any prior allowance.
func (e *Engine) Approve(caller [20]byte, spender [20]byte, amount *big.Int) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if e.access.IsPaused() {
		return ErrPaused
	}
	if spender == caller {
		return ErrInvalidSpender
	}
	value := big.NewInt(0)
	if amount != nil {
		if amount.Sign() < 0 {
			return ErrInvalidAmount
		}
		value = new(big.Int).Set(amount)
	}
	if err := e.state.TokenAllowancePut(caller, spender, value); err != nil {
		return err
	}
	e.emit(events.TokenApproved{
		Owner:   caller,
		Spender: spender,
		Amount:  value,
		Height:  e.height(),
	})
	return nil
}

// Burn destroys amount from the caller's balance and shrinks total supply.
func (e *Engine) Burn(caller [20]byte, amount *big.Int) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if e.access.IsPaused() {
		return ErrPaused
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	balance, err := e.state.TokenBalanceGet(caller)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	supply, err := e.state.TokenSupplyGet()
	if err != nil {
		return err
	}
	newSupply := new(big.Int).Sub(supply, amount)

	if err := e.state.TokenBalancePut(caller, new(big.Int).Sub(balance, amount)); err != nil {
		return err
	}
	if err := e.state.TokenSupplyPut(newSupply); err != nil {
		return err
	}
	e.emit(events.TokenBurned{
		Owner:  caller,
		Amount: new(big.Int).Set(amount),
		Supply: newSupply,
		Height: e.height(),
	})
	return nil
}

// BalanceOf returns the account balance; absent entries resolve to zero.
func (e *Engine) BalanceOf(account [20]byte) *big.Int {
	balance, err := e.state.TokenBalanceGet(account)
	if err != nil || balance == nil {
		return big.NewInt(0)
	}
	return balance
}

// TotalSupply returns the live supply.
func (e *Engine) TotalSupply() *big.Int {
	supply, err := e.state.TokenSupplyGet()
	if err != nil || supply == nil {
		return big.NewInt(0)
	}
	return supply
}

// Allowance returns the remaining (owner, spender) allowance; absent
// entries resolve to zero.
func (e *Engine) Allowance(owner [20]byte, spender [20]byte) *big.Int {
	allowance, err := e.state.TokenAllowanceGet(owner, spender)
	if err != nil || allowance == nil {
		return big.NewInt(0)
	}
	return allowance
}

// GetMintRecord returns the record for the given id, or false when no such
// record exists.
func (e *Engine) GetMintRecord(id uint64) (*MintRecord, bool) {
	record, ok, err := e.state.TokenMintRecordGet(id)
	if err != nil || !ok {
		return nil, false
	}
	return record, true
}
