// Package certificate implements the non-fungible certificate registry:
// ownership, immutable mint metadata, version history, categories,
// collaborator grants, and status records.
//
// Burning a certificate retires its id and removes only the ownership and
// metadata projections. Version, category, collaborator, and status
// records stay queryable for the retired id.
package certificate

import (
	"strings"
	"unicode/utf16"

	"eduledger/core/events"
)

// State is the persistence surface the registry engine mutates.
type State interface {
	CertificateCounterGet() (uint64, error)
	CertificateCounterPut(id uint64) error
	CertificateOwnerGet(id uint64) ([20]byte, bool, error)
	CertificateOwnerPut(id uint64, owner [20]byte) error
	CertificateOwnerDelete(id uint64) error
	CertificateMetadataGet(id uint64) (*Metadata, bool, error)
	CertificateMetadataPut(id uint64, meta *Metadata) error
	CertificateMetadataDelete(id uint64) error
	CertificateVersionGet(id uint64, version uint64) (*Version, bool, error)
	CertificateVersionPut(entry *Version) error
	CertificateCategoryGet(id uint64) (*Category, bool, error)
	CertificateCategoryPut(id uint64, category *Category) error
	CertificateCollaboratorGet(id uint64, collaborator [20]byte) (*CollaboratorGrant, bool, error)
	CertificateCollaboratorPut(grant *CollaboratorGrant) error
	CertificateStatusGet(id uint64) (*Status, bool, error)
	CertificateStatusPut(id uint64, status *Status) error
}

// AccessView is the slice of the access controller the registry consults.
// Certificate minting is admin-only, unlike the fungible ledger's open
// minter set.
type AccessView interface {
	IsPaused() bool
	Admin() [20]byte
}

// Engine applies registry operations atomically; a failing precondition
// leaves state untouched.
type Engine struct {
	state    State
	access   AccessView
	emitter  events.Emitter
	heightFn func() uint64
}

// NewEngine constructs a registry engine over the given state and access
// controller view.
func NewEngine(state State, access AccessView) *Engine {
	return &Engine{
		state:    state,
		access:   access,
		emitter:  events.NoopEmitter{},
		heightFn: func() uint64 { return 0 },
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

// SetHeightFunc overrides the ledger height source.
func (e *Engine) SetHeightFunc(height func() uint64) {
	if height == nil {
		e.heightFn = func() uint64 { return 0 }
		return
	}
	e.heightFn = height
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

func descriptionUnits(description string) int {
	return len(utf16.Encode([]rune(description)))
}

// requireOwner resolves the current owner for id, surfacing ErrInvalidID
// for unknown tokens and ErrNotOwner when the caller does not hold it. The
// check order (id, pause, owner) matches the registry contract.
func (e *Engine) requireOwner(caller [20]byte, id uint64) error {
	owner, ok, err := e.state.CertificateOwnerGet(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidID
	}
	if e.access.IsPaused() {
		return ErrPaused
	}
	if owner != caller {
		return ErrNotOwner
	}
	return nil
}

// Mint issues a new certificate to the recipient and returns its id.
func (e *Engine) Mint(caller [20]byte, moduleRef string, recipient [20]byte, title string, description string) (uint64, error) {
	if e == nil || e.state == nil {
		return 0, ErrNilState
	}
	if e.access.IsPaused() {
		return 0, ErrPaused
	}
	if caller != e.access.Admin() {
		return 0, ErrNotAuthorized
	}
	if descriptionUnits(description) > DescriptionMaxLen {
		return 0, ErrMetadataTooLong
	}
	counter, err := e.state.CertificateCounterGet()
	if err != nil {
		return 0, err
	}

	id := counter + 1
	meta := &Metadata{
		ModuleRef:   strings.TrimSpace(moduleRef),
		Recipient:   recipient,
		Title:       title,
		Description: description,
		Height:      e.height(),
	}
	if err := e.state.CertificateOwnerPut(id, recipient); err != nil {
		return 0, err
	}
	if err := e.state.CertificateMetadataPut(id, meta); err != nil {
		return 0, err
	}
	if err := e.state.CertificateCounterPut(id); err != nil {
		return 0, err
	}
	e.emit(events.CertificateMinted{
		TokenID:   id,
		ModuleRef: meta.ModuleRef,
		Recipient: recipient,
		Title:     title,
		Height:    meta.Height,
	})
	return id, nil
}

// Transfer reassigns ownership to newOwner. Ownership is exclusive and
// singular; there is no allowance concept.
func (e *Engine) Transfer(caller [20]byte, id uint64, newOwner [20]byte) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if err := e.requireOwner(caller, id); err != nil {
		return err
	}
	if err := e.state.CertificateOwnerPut(id, newOwner); err != nil {
		return err
	}
	e.emit(events.CertificateTransferred{
		TokenID:  id,
		Previous: caller,
		Owner:    newOwner,
		Height:   e.height(),
	})
	return nil
}

// Burn retires the certificate, deleting its ownership and metadata
// projections. The id is never reassigned.
func (e *Engine) Burn(caller [20]byte, id uint64) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if err := e.requireOwner(caller, id); err != nil {
		return err
	}
	if err := e.state.CertificateOwnerDelete(id); err != nil {
		return err
	}
	if err := e.state.CertificateMetadataDelete(id); err != nil {
		return err
	}
	e.emit(events.CertificateBurned{TokenID: id, Owner: caller, Height: e.height()})
	return nil
}

// RegisterNewVersion inserts an immutable version entry. Version numbers
// may be registered in any order, but a (token, version) pair is written
// at most once.
func (e *Engine) RegisterNewVersion(caller [20]byte, id uint64, version uint64, payload string) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if err := e.requireOwner(caller, id); err != nil {
		return err
	}
	if _, ok, err := e.state.CertificateVersionGet(id, version); err != nil {
		return err
	} else if ok {
		return ErrAlreadyExists
	}
	entry := &Version{TokenID: id, Version: version, Payload: payload, Height: e.height()}
	if err := e.state.CertificateVersionPut(entry); err != nil {
		return err
	}
	e.emit(events.CertificateVersioned{TokenID: id, Version: version, Height: entry.Height})
	return nil
}

// AddCategory records the certificate's category, overwriting any prior
// record.
func (e *Engine) AddCategory(caller [20]byte, id uint64, category string, tags []string) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if err := e.requireOwner(caller, id); err != nil {
		return err
	}
	if len(tags) > MaxCategoryTags {
		return ErrMetadataTooLong
	}
	record := &Category{
		Label:  category,
		Tags:   append([]string(nil), tags...),
		Height: e.height(),
	}
	if err := e.state.CertificateCategoryPut(id, record); err != nil {
		return err
	}
	e.emit(events.CertificateCategorised{
		TokenID:  id,
		Category: record.Label,
		Tags:     record.Tags,
		Height:   record.Height,
	})
	return nil
}

// AddCollaborator grants a role and permission list to the collaborator,
// overwriting any prior grant for the pair. The owner cannot be their own
// collaborator.
func (e *Engine) AddCollaborator(caller [20]byte, id uint64, collaborator [20]byte, role string, permissions []string) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if err := e.requireOwner(caller, id); err != nil {
		return err
	}
	if collaborator == caller {
		return ErrInvalidCollaborator
	}
	grant := &CollaboratorGrant{
		TokenID:      id,
		Collaborator: collaborator,
		Role:         role,
		Permissions:  append([]string(nil), permissions...),
		Height:       e.height(),
	}
	if err := e.state.CertificateCollaboratorPut(grant); err != nil {
		return err
	}
	e.emit(events.CertificateCollaboratorUpdated{
		TokenID:      id,
		Collaborator: collaborator,
		Role:         role,
		Height:       grant.Height,
	})
	return nil
}

// UpdateStatus overwrites the certificate's status record.
func (e *Engine) UpdateStatus(caller [20]byte, id uint64, status string, visible bool) error {
	if e == nil || e.state == nil {
		return ErrNilState
	}
	if err := e.requireOwner(caller, id); err != nil {
		return err
	}
	record := &Status{Label: status, Visible: visible, Height: e.height()}
	if err := e.state.CertificateStatusPut(id, record); err != nil {
		return err
	}
	e.emit(events.CertificateStatusUpdated{
		TokenID: id,
		Status:  status,
		Visible: visible,
		Height:  record.Height,
	})
	return nil
}

// GetOwner returns the current owner, or false for unknown or burned ids.
func (e *Engine) GetOwner(id uint64) ([20]byte, bool) {
	owner, ok, err := e.state.CertificateOwnerGet(id)
	if err != nil || !ok {
		return [20]byte{}, false
	}
	return owner, true
}

// GetMetadata returns the mint metadata, or false for unknown or burned
// ids.
func (e *Engine) GetMetadata(id uint64) (*Metadata, bool) {
	meta, ok, err := e.state.CertificateMetadataGet(id)
	if err != nil || !ok {
		return nil, false
	}
	return meta, true
}

// GetVersion returns the (id, version) history entry if present. Entries
// survive burns.
func (e *Engine) GetVersion(id uint64, version uint64) (*Version, bool) {
	entry, ok, err := e.state.CertificateVersionGet(id, version)
	if err != nil || !ok {
		return nil, false
	}
	return entry, true
}

// GetCategory returns the latest category record if present.
func (e *Engine) GetCategory(id uint64) (*Category, bool) {
	record, ok, err := e.state.CertificateCategoryGet(id)
	if err != nil || !ok {
		return nil, false
	}
	return record, true
}

// GetCollaborator returns the grant for (id, collaborator) if present.
func (e *Engine) GetCollaborator(id uint64, collaborator [20]byte) (*CollaboratorGrant, bool) {
	grant, ok, err := e.state.CertificateCollaboratorGet(id, collaborator)
	if err != nil || !ok {
		return nil, false
	}
	return grant, true
}

// GetStatus returns the latest status record if present.
func (e *Engine) GetStatus(id uint64) (*Status, bool) {
	record, ok, err := e.state.CertificateStatusGet(id)
	if err != nil || !ok {
		return nil, false
	}
	return record, true
}
