package events

import (
	"strconv"

	"eduledger/core/types"
)

const (
	TypeAdminChanged     = "access.admin.changed"
	TypePauseToggled     = "access.pause.toggled"
	TypeMinterUpdated    = "access.minter.updated"
	TypeBlacklistUpdated = "access.blacklist.updated"
)

type AdminChanged struct {
	Previous [20]byte
	Admin    [20]byte
	Height   uint64
}

func (AdminChanged) EventType() string { return TypeAdminChanged }

func (e AdminChanged) Event() *types.Event {
	return &types.Event{
		Type: TypeAdminChanged,
		Attributes: map[string]string{
			"previous": hexAddr(e.Previous),
			"admin":    hexAddr(e.Admin),
			"height":   uintToString(e.Height),
		},
	}
}

type PauseToggled struct {
	Admin  [20]byte
	Paused bool
	Height uint64
}

func (PauseToggled) EventType() string { return TypePauseToggled }

func (e PauseToggled) Event() *types.Event {
	return &types.Event{
		Type: TypePauseToggled,
		Attributes: map[string]string{
			"admin":  hexAddr(e.Admin),
			"paused": strconv.FormatBool(e.Paused),
			"height": uintToString(e.Height),
		},
	}
}

type MinterUpdated struct {
	Admin   [20]byte
	Account [20]byte
	Granted bool
	Height  uint64
}

func (MinterUpdated) EventType() string { return TypeMinterUpdated }

func (e MinterUpdated) Event() *types.Event {
	return &types.Event{
		Type: TypeMinterUpdated,
		Attributes: map[string]string{
			"admin":   hexAddr(e.Admin),
			"account": hexAddr(e.Account),
			"granted": strconv.FormatBool(e.Granted),
			"height":  uintToString(e.Height),
		},
	}
}

type BlacklistUpdated struct {
	Admin   [20]byte
	Account [20]byte
	Listed  bool
	Height  uint64
}

func (BlacklistUpdated) EventType() string { return TypeBlacklistUpdated }

func (e BlacklistUpdated) Event() *types.Event {
	return &types.Event{
		Type: TypeBlacklistUpdated,
		Attributes: map[string]string{
			"admin":   hexAddr(e.Admin),
			"account": hexAddr(e.Account),
			"listed":  strconv.FormatBool(e.Listed),
			"height":  uintToString(e.Height),
		},
	}
}
