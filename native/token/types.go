package token

import "math/big"

// MetadataMaxLen bounds mint-record metadata, measured in UTF-16 code
// units to match the deployed contract.
const MetadataMaxLen = 500

// DefaultMaxSupply is the width of the underlying ledger primitive
// (2^128 - 1). Deployments may configure a lower cap.
func DefaultMaxSupply() *big.Int {
	max := new(big.Int).Lsh(big.NewInt(1), 128)
	return max.Sub(max, big.NewInt(1))
}

// MintRecord is an immutable audit entry describing one successful mint.
// Record ids are monotonic and never reused.
type MintRecord struct {
	ID        uint64   `json:"id"`
	Minter    [20]byte `json:"minter"`
	Recipient [20]byte `json:"recipient"`
	Amount    *big.Int `json:"amount"`
	Metadata  string   `json:"metadata"`
	Height    uint64   `json:"height"`
}

// Clone returns a deep copy of the record.
func (r *MintRecord) Clone() *MintRecord {
	if r == nil {
		return nil
	}
	clone := *r
	if r.Amount != nil {
		clone.Amount = new(big.Int).Set(r.Amount)
	}
	return &clone
}
