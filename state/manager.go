// Package state provides the concrete persistence backend shared by the
// access controller and both accounting engines. Records map to
// keccak-hashed keys with rlp-encoded values over a storage.Database.
package state

import (
	"encoding/binary"
	"errors"
	"math/big"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"eduledger/native/certificate"
	"eduledger/native/token"
	"eduledger/storage"
)

var (
	accessAdminKey   = []byte("access/admin")
	accessPausedKey  = []byte("access/paused")
	minterPrefix     = []byte("access/minter:")
	blacklistPrefix  = []byte("access/blacklist:")
	supplyKey        = []byte("token/supply")
	mintCounterKey   = []byte("token/mint-seq")
	balancePrefix    = []byte("token/balance:")
	allowancePrefix  = []byte("token/allowance:")
	mintRecordPrefix = []byte("token/mint:")
	certCounterKey   = []byte("cert/seq")
	certOwnerPrefix  = []byte("cert/owner:")
	certMetaPrefix   = []byte("cert/meta:")
	certVersionPfx   = []byte("cert/version:")
	certCategoryPfx  = []byte("cert/category:")
	certCollabPrefix = []byte("cert/collab:")
	certStatusPrefix = []byte("cert/status:")
)

// Manager reads and writes engine state. It implements access.State,
// token.State, and certificate.State.
type Manager struct {
	db storage.Database
}

// NewManager creates a state manager over the provided database.
func NewManager(db storage.Database) *Manager {
	return &Manager{db: db}
}

func hashKey(prefix []byte, parts ...[]byte) []byte {
	buf := append([]byte{}, prefix...)
	for _, part := range parts {
		buf = append(buf, part...)
	}
	return ethcrypto.Keccak256(buf)
}

func idBytes(id uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, id)
	return buf
}

func (m *Manager) read(key []byte, out interface{}) (bool, error) {
	data, err := m.db.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := rlp.DecodeBytes(data, out); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Manager) write(key []byte, value interface{}) error {
	encoded, err := rlp.EncodeToBytes(value)
	if err != nil {
		return err
	}
	return m.db.Put(key, encoded)
}

func (m *Manager) readAmount(key []byte) (*big.Int, error) {
	amount := new(big.Int)
	ok, err := m.read(key, amount)
	if err != nil {
		return nil, err
	}
	if !ok {
		return big.NewInt(0), nil
	}
	return amount, nil
}

func (m *Manager) readFlag(key []byte) (bool, error) {
	var flag bool
	ok, err := m.read(key, &flag)
	if err != nil || !ok {
		return false, err
	}
	return flag, nil
}

func (m *Manager) readCounter(key []byte) (uint64, error) {
	var counter uint64
	ok, err := m.read(key, &counter)
	if err != nil || !ok {
		return 0, err
	}
	return counter, nil
}

// --- access.State ---

func (m *Manager) AccessAdminGet() ([20]byte, bool, error) {
	var admin [20]byte
	ok, err := m.read(hashKey(accessAdminKey), &admin)
	return admin, ok, err
}

func (m *Manager) AccessAdminPut(addr [20]byte) error {
	return m.write(hashKey(accessAdminKey), addr)
}

func (m *Manager) AccessPausedGet() (bool, error) {
	return m.readFlag(hashKey(accessPausedKey))
}

func (m *Manager) AccessPausedPut(paused bool) error {
	return m.write(hashKey(accessPausedKey), paused)
}

func (m *Manager) AccessMinterGet(addr [20]byte) (bool, error) {
	return m.readFlag(hashKey(minterPrefix, addr[:]))
}

func (m *Manager) AccessMinterPut(addr [20]byte, flag bool) error {
	return m.write(hashKey(minterPrefix, addr[:]), flag)
}

func (m *Manager) AccessBlacklistGet(addr [20]byte) (bool, error) {
	return m.readFlag(hashKey(blacklistPrefix, addr[:]))
}

func (m *Manager) AccessBlacklistPut(addr [20]byte, flag bool) error {
	return m.write(hashKey(blacklistPrefix, addr[:]), flag)
}

// --- token.State ---

func (m *Manager) TokenBalanceGet(addr [20]byte) (*big.Int, error) {
	return m.readAmount(hashKey(balancePrefix, addr[:]))
}

func (m *Manager) TokenBalancePut(addr [20]byte, amount *big.Int) error {
	if amount == nil {
		amount = big.NewInt(0)
	}
	return m.write(hashKey(balancePrefix, addr[:]), amount)
}

func (m *Manager) TokenSupplyGet() (*big.Int, error) {
	return m.readAmount(hashKey(supplyKey))
}

func (m *Manager) TokenSupplyPut(amount *big.Int) error {
	if amount == nil {
		amount = big.NewInt(0)
	}
	return m.write(hashKey(supplyKey), amount)
}

func (m *Manager) TokenAllowanceGet(owner [20]byte, spender [20]byte) (*big.Int, error) {
	return m.readAmount(hashKey(allowancePrefix, owner[:], spender[:]))
}

func (m *Manager) TokenAllowancePut(owner [20]byte, spender [20]byte, amount *big.Int) error {
	if amount == nil {
		amount = big.NewInt(0)
	}
	return m.write(hashKey(allowancePrefix, owner[:], spender[:]), amount)
}

func (m *Manager) TokenMintCounterGet() (uint64, error) {
	return m.readCounter(hashKey(mintCounterKey))
}

func (m *Manager) TokenMintCounterPut(id uint64) error {
	return m.write(hashKey(mintCounterKey), id)
}

func (m *Manager) TokenMintRecordGet(id uint64) (*token.MintRecord, bool, error) {
	record := new(token.MintRecord)
	ok, err := m.read(hashKey(mintRecordPrefix, idBytes(id)), record)
	if err != nil || !ok {
		return nil, false, err
	}
	return record, true, nil
}

func (m *Manager) TokenMintRecordPut(record *token.MintRecord) error {
	if record == nil {
		return nil
	}
	return m.write(hashKey(mintRecordPrefix, idBytes(record.ID)), record)
}

// --- certificate.State ---

func (m *Manager) CertificateCounterGet() (uint64, error) {
	return m.readCounter(hashKey(certCounterKey))
}

func (m *Manager) CertificateCounterPut(id uint64) error {
	return m.write(hashKey(certCounterKey), id)
}

func (m *Manager) CertificateOwnerGet(id uint64) ([20]byte, bool, error) {
	var owner [20]byte
	ok, err := m.read(hashKey(certOwnerPrefix, idBytes(id)), &owner)
	return owner, ok, err
}

func (m *Manager) CertificateOwnerPut(id uint64, owner [20]byte) error {
	return m.write(hashKey(certOwnerPrefix, idBytes(id)), owner)
}

func (m *Manager) CertificateOwnerDelete(id uint64) error {
	return m.db.Delete(hashKey(certOwnerPrefix, idBytes(id)))
}

func (m *Manager) CertificateMetadataGet(id uint64) (*certificate.Metadata, bool, error) {
	meta := new(certificate.Metadata)
	ok, err := m.read(hashKey(certMetaPrefix, idBytes(id)), meta)
	if err != nil || !ok {
		return nil, false, err
	}
	return meta, true, nil
}

func (m *Manager) CertificateMetadataPut(id uint64, meta *certificate.Metadata) error {
	if meta == nil {
		return nil
	}
	return m.write(hashKey(certMetaPrefix, idBytes(id)), meta)
}

func (m *Manager) CertificateMetadataDelete(id uint64) error {
	return m.db.Delete(hashKey(certMetaPrefix, idBytes(id)))
}

func (m *Manager) CertificateVersionGet(id uint64, version uint64) (*certificate.Version, bool, error) {
	entry := new(certificate.Version)
	ok, err := m.read(hashKey(certVersionPfx, idBytes(id), idBytes(version)), entry)
	if err != nil || !ok {
		return nil, false, err
	}
	return entry, true, nil
}

func (m *Manager) CertificateVersionPut(entry *certificate.Version) error {
	if entry == nil {
		return nil
	}
	return m.write(hashKey(certVersionPfx, idBytes(entry.TokenID), idBytes(entry.Version)), entry)
}

func (m *Manager) CertificateCategoryGet(id uint64) (*certificate.Category, bool, error) {
	record := new(certificate.Category)
	ok, err := m.read(hashKey(certCategoryPfx, idBytes(id)), record)
	if err != nil || !ok {
		return nil, false, err
	}
	return record, true, nil
}

func (m *Manager) CertificateCategoryPut(id uint64, category *certificate.Category) error {
	if category == nil {
		return nil
	}
	return m.write(hashKey(certCategoryPfx, idBytes(id)), category)
}

func (m *Manager) CertificateCollaboratorGet(id uint64, collaborator [20]byte) (*certificate.CollaboratorGrant, bool, error) {
	grant := new(certificate.CollaboratorGrant)
	ok, err := m.read(hashKey(certCollabPrefix, idBytes(id), collaborator[:]), grant)
	if err != nil || !ok {
		return nil, false, err
	}
	return grant, true, nil
}

func (m *Manager) CertificateCollaboratorPut(grant *certificate.CollaboratorGrant) error {
	if grant == nil {
		return nil
	}
	return m.write(hashKey(certCollabPrefix, idBytes(grant.TokenID), grant.Collaborator[:]), grant)
}

func (m *Manager) CertificateStatusGet(id uint64) (*certificate.Status, bool, error) {
	record := new(certificate.Status)
	ok, err := m.read(hashKey(certStatusPrefix, idBytes(id)), record)
	if err != nil || !ok {
		return nil, false, err
	}
	return record, true, nil
}

func (m *Manager) CertificateStatusPut(id uint64, status *certificate.Status) error {
	if status == nil {
		return nil
	}
	return m.write(hashKey(certStatusPrefix, idBytes(id)), status)
}
