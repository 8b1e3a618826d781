// Package access holds the shared administrative state consulted by both
// accounting engines: the admin identity, the pause flag, the minter set and
// the blacklist.
//
// Minter removal intentionally writes a false flag instead of deleting the
// entry, and AddMinter only rejects accounts whose stored flag is true. An
// account that was removed can therefore always be re-added. This mirrors
// the deployed contract's behaviour and is kept as-is.
package access

import (
	"eduledger/core/events"
)

// State is the minimal persistence surface the controller needs.
type State interface {
	AccessAdminGet() ([20]byte, bool, error)
	AccessAdminPut(addr [20]byte) error
	AccessPausedGet() (bool, error)
	AccessPausedPut(paused bool) error
	AccessMinterGet(addr [20]byte) (bool, error)
	AccessMinterPut(addr [20]byte, flag bool) error
	AccessBlacklistGet(addr [20]byte) (bool, error)
	AccessBlacklistPut(addr [20]byte, flag bool) error
}

// Controller gates every administrative mutation behind the current admin
// identity. It is shared-read by the token and certificate engines.
type Controller struct {
	state    State
	emitter  events.Emitter
	heightFn func() uint64
}

// NewController constructs a controller over the given state. If no admin
// has been recorded yet, the deployer becomes the initial admin and is
// pre-registered as a minter.
func NewController(state State, deployer [20]byte) (*Controller, error) {
	if state == nil {
		return nil, ErrNilState
	}
	c := &Controller{
		state:    state,
		emitter:  events.NoopEmitter{},
		heightFn: func() uint64 { return 0 },
	}
	if _, ok, err := state.AccessAdminGet(); err != nil {
		return nil, err
	} else if !ok {
		if err := state.AccessAdminPut(deployer); err != nil {
			return nil, err
		}
		if err := state.AccessMinterPut(deployer, true); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// SetEmitter configures the audit sink. Passing nil resets to a no-op.
func (c *Controller) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		c.emitter = events.NoopEmitter{}
		return
	}
	c.emitter = emitter
}

// SetHeightFunc overrides the ledger height source.
func (c *Controller) SetHeightFunc(height func() uint64) {
	if height == nil {
		c.heightFn = func() uint64 { return 0 }
		return
	}
	c.heightFn = height
}

func (c *Controller) emit(evt events.Event) {
	if c == nil || c.emitter == nil {
		return
	}
	c.emitter.Emit(evt)
}

func (c *Controller) height() uint64 {
	if c == nil || c.heightFn == nil {
		return 0
	}
	return c.heightFn()
}

func (c *Controller) requireAdmin(caller [20]byte) error {
	admin, ok, err := c.state.AccessAdminGet()
	if err != nil {
		return err
	}
	if !ok || admin != caller {
		return ErrNotAuthorized
	}
	return nil
}

// SetAdmin replaces the admin identity. Only the current admin may call it.
func (c *Controller) SetAdmin(caller [20]byte, newAdmin [20]byte) error {
	if err := c.requireAdmin(caller); err != nil {
		return err
	}
	if err := c.state.AccessAdminPut(newAdmin); err != nil {
		return err
	}
	c.emit(events.AdminChanged{Previous: caller, Admin: newAdmin, Height: c.height()})
	return nil
}

// Pause sets the pause flag. Setting it to its current value still succeeds.
func (c *Controller) Pause(caller [20]byte) error {
	return c.setPaused(caller, true)
}

// Unpause clears the pause flag.
func (c *Controller) Unpause(caller [20]byte) error {
	return c.setPaused(caller, false)
}

func (c *Controller) setPaused(caller [20]byte, paused bool) error {
	if err := c.requireAdmin(caller); err != nil {
		return err
	}
	if err := c.state.AccessPausedPut(paused); err != nil {
		return err
	}
	c.emit(events.PauseToggled{Admin: caller, Paused: paused, Height: c.height()})
	return nil
}

// AddMinter registers an account as a minter. It fails only when the stored
// flag is already true; an account demoted by RemoveMinter carries a false
// flag and may be re-added.
func (c *Controller) AddMinter(caller [20]byte, account [20]byte) error {
	if err := c.requireAdmin(caller); err != nil {
		return err
	}
	flagged, err := c.state.AccessMinterGet(account)
	if err != nil {
		return err
	}
	if flagged {
		return ErrAlreadyRegistered
	}
	if err := c.state.AccessMinterPut(account, true); err != nil {
		return err
	}
	c.emit(events.MinterUpdated{Admin: caller, Account: account, Granted: true, Height: c.height()})
	return nil
}

// RemoveMinter demotes an account unconditionally, even if it was never a
// minter.
func (c *Controller) RemoveMinter(caller [20]byte, account [20]byte) error {
	if err := c.requireAdmin(caller); err != nil {
		return err
	}
	if err := c.state.AccessMinterPut(account, false); err != nil {
		return err
	}
	c.emit(events.MinterUpdated{Admin: caller, Account: account, Granted: false, Height: c.height()})
	return nil
}

// Blacklist flags an account so the engines refuse to move value to it.
func (c *Controller) Blacklist(caller [20]byte, account [20]byte) error {
	return c.setBlacklisted(caller, account, true)
}

// Unblacklist clears the flag. No existence precondition applies.
func (c *Controller) Unblacklist(caller [20]byte, account [20]byte) error {
	return c.setBlacklisted(caller, account, false)
}

func (c *Controller) setBlacklisted(caller [20]byte, account [20]byte, listed bool) error {
	if err := c.requireAdmin(caller); err != nil {
		return err
	}
	if err := c.state.AccessBlacklistPut(account, listed); err != nil {
		return err
	}
	c.emit(events.BlacklistUpdated{Admin: caller, Account: account, Listed: listed, Height: c.height()})
	return nil
}

// Admin returns the current admin identity, or the zero address when state
// is unreadable.
func (c *Controller) Admin() [20]byte {
	admin, ok, err := c.state.AccessAdminGet()
	if err != nil || !ok {
		return [20]byte{}
	}
	return admin
}

// IsPaused reports the pause flag. Read errors resolve to false.
func (c *Controller) IsPaused() bool {
	paused, err := c.state.AccessPausedGet()
	if err != nil {
		return false
	}
	return paused
}

// IsMinter reports whether the account's minter flag is set. Absent
// entries resolve to false.
func (c *Controller) IsMinter(account [20]byte) bool {
	flagged, err := c.state.AccessMinterGet(account)
	if err != nil {
		return false
	}
	return flagged
}

// IsBlacklisted reports whether the account is blacklisted. Absent entries
// resolve to false.
func (c *Controller) IsBlacklisted(account [20]byte) bool {
	listed, err := c.state.AccessBlacklistGet(account)
	if err != nil {
		return false
	}
	return listed
}
