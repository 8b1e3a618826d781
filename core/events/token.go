package events

import (
	"math/big"

	"eduledger/core/types"
)

const (
	TypeTokenMinted      = "token.minted"
	TypeTokenTransferred = "token.transferred"
	TypeTokenApproved    = "token.approved"
	TypeTokenBurned      = "token.burned"
)

type TokenMinted struct {
	RecordID  uint64
	Minter    [20]byte
	Recipient [20]byte
	Amount    *big.Int
	Supply    *big.Int
	Height    uint64
}

func (TokenMinted) EventType() string { return TypeTokenMinted }

func (e TokenMinted) Event() *types.Event {
	return &types.Event{
		Type: TypeTokenMinted,
		Attributes: map[string]string{
			"recordId":  uintToString(e.RecordID),
			"minter":    hexAddr(e.Minter),
			"recipient": hexAddr(e.Recipient),
			"amount":    formatAmount(e.Amount),
			"supply":    formatAmount(e.Supply),
			"height":    uintToString(e.Height),
		},
	}
}

type TokenTransferred struct {
	Caller    [20]byte
	Sender    [20]byte
	Recipient [20]byte
	Amount    *big.Int
	Height    uint64
}

func (TokenTransferred) EventType() string { return TypeTokenTransferred }

func (e TokenTransferred) Event() *types.Event {
	return &types.Event{
		Type: TypeTokenTransferred,
		Attributes: map[string]string{
			"caller":    hexAddr(e.Caller),
			"sender":    hexAddr(e.Sender),
			"recipient": hexAddr(e.Recipient),
			"amount":    formatAmount(e.Amount),
			"height":    uintToString(e.Height),
		},
	}
}

type TokenApproved struct {
	Owner   [20]byte
	Spender [20]byte
	Amount  *big.Int
	Height  uint64
}

func (TokenApproved) EventType() string { return TypeTokenApproved }

func (e TokenApproved) Event() *types.Event {
	return &types.Event{
		Type: TypeTokenApproved,
		Attributes: map[string]string{
			"owner":   hexAddr(e.Owner),
			"spender": hexAddr(e.Spender),
			"amount":  formatAmount(e.Amount),
			"height":  uintToString(e.Height),
		},
	}
}

type TokenBurned struct {
	Owner  [20]byte
	Amount *big.Int
	Supply *big.Int
	Height uint64
}

func (TokenBurned) EventType() string { return TypeTokenBurned }

func (e TokenBurned) Event() *types.Event {
	return &types.Event{
		Type: TypeTokenBurned,
		Attributes: map[string]string{
			"owner":  hexAddr(e.Owner),
			"amount": formatAmount(e.Amount),
			"supply": formatAmount(e.Supply),
			"height": uintToString(e.Height),
		},
	}
}
