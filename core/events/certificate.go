package events

import (
	"strconv"
	"strings"

	"eduledger/core/types"
)

const (
	TypeCertificateMinted       = "certificate.minted"
	TypeCertificateTransferred  = "certificate.transferred"
	TypeCertificateBurned       = "certificate.burned"
	TypeCertificateVersioned    = "certificate.version.registered"
	TypeCertificateCategorised  = "certificate.category.updated"
	TypeCertificateCollaborator = "certificate.collaborator.updated"
	TypeCertificateStatus       = "certificate.status.updated"
)

type CertificateMinted struct {
	TokenID   uint64
	ModuleRef string
	Recipient [20]byte
	Title     string
	Height    uint64
}

func (CertificateMinted) EventType() string { return TypeCertificateMinted }

func (e CertificateMinted) Event() *types.Event {
	return &types.Event{
		Type: TypeCertificateMinted,
		Attributes: map[string]string{
			"tokenId":   uintToString(e.TokenID),
			"moduleRef": e.ModuleRef,
			"recipient": hexAddr(e.Recipient),
			"title":     e.Title,
			"height":    uintToString(e.Height),
		},
	}
}

type CertificateTransferred struct {
	TokenID  uint64
	Previous [20]byte
	Owner    [20]byte
	Height   uint64
}

func (CertificateTransferred) EventType() string { return TypeCertificateTransferred }

func (e CertificateTransferred) Event() *types.Event {
	return &types.Event{
		Type: TypeCertificateTransferred,
		Attributes: map[string]string{
			"tokenId":  uintToString(e.TokenID),
			"previous": hexAddr(e.Previous),
			"owner":    hexAddr(e.Owner),
			"height":   uintToString(e.Height),
		},
	}
}

type CertificateBurned struct {
	TokenID uint64
	Owner   [20]byte
	Height  uint64
}

func (CertificateBurned) EventType() string { return TypeCertificateBurned }

func (e CertificateBurned) Event() *types.Event {
	return &types.Event{
		Type: TypeCertificateBurned,
		Attributes: map[string]string{
			"tokenId": uintToString(e.TokenID),
			"owner":   hexAddr(e.Owner),
			"height":  uintToString(e.Height),
		},
	}
}

type CertificateVersioned struct {
	TokenID uint64
	Version uint64
	Height  uint64
}

func (CertificateVersioned) EventType() string { return TypeCertificateVersioned }

func (e CertificateVersioned) Event() *types.Event {
	return &types.Event{
		Type: TypeCertificateVersioned,
		Attributes: map[string]string{
			"tokenId": uintToString(e.TokenID),
			"version": uintToString(e.Version),
			"height":  uintToString(e.Height),
		},
	}
}

type CertificateCategorised struct {
	TokenID  uint64
	Category string
	Tags     []string
	Height   uint64
}

func (CertificateCategorised) EventType() string { return TypeCertificateCategorised }

func (e CertificateCategorised) Event() *types.Event {
	return &types.Event{
		Type: TypeCertificateCategorised,
		Attributes: map[string]string{
			"tokenId":  uintToString(e.TokenID),
			"category": e.Category,
			"tags":     strings.Join(e.Tags, ","),
			"height":   uintToString(e.Height),
		},
	}
}

type CertificateCollaboratorUpdated struct {
	TokenID      uint64
	Collaborator [20]byte
	Role         string
	Height       uint64
}

func (CertificateCollaboratorUpdated) EventType() string { return TypeCertificateCollaborator }

func (e CertificateCollaboratorUpdated) Event() *types.Event {
	return &types.Event{
		Type: TypeCertificateCollaborator,
		Attributes: map[string]string{
			"tokenId":      uintToString(e.TokenID),
			"collaborator": hexAddr(e.Collaborator),
			"role":         e.Role,
			"height":       uintToString(e.Height),
		},
	}
}

type CertificateStatusUpdated struct {
	TokenID uint64
	Status  string
	Visible bool
	Height  uint64
}

func (CertificateStatusUpdated) EventType() string { return TypeCertificateStatus }

func (e CertificateStatusUpdated) Event() *types.Event {
	return &types.Event{
		Type: TypeCertificateStatus,
		Attributes: map[string]string{
			"tokenId": uintToString(e.TokenID),
			"status":  e.Status,
			"visible": strconv.FormatBool(e.Visible),
			"height":  uintToString(e.Height),
		},
	}
}
