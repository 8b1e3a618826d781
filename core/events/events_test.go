package events

import (
	"math/big"
	"testing"
)

func addr(b byte) [20]byte {
	var a [20]byte
	a[19] = b
	return a
}

func TestTokenMintedAttributes(t *testing.T) {
	evt := TokenMinted{
		RecordID:  7,
		Minter:    addr(1),
		Recipient: addr(2),
		Amount:    big.NewInt(1000),
		Supply:    big.NewInt(5000),
		Height:    42,
	}
	payload := evt.Event()
	if payload.Type != TypeTokenMinted {
		t.Fatalf("unexpected type: %s", payload.Type)
	}
	want := map[string]string{
		"recordId":  "7",
		"minter":    "0x0000000000000000000000000000000000000001",
		"recipient": "0x0000000000000000000000000000000000000002",
		"amount":    "1000",
		"supply":    "5000",
		"height":    "42",
	}
	for key, value := range want {
		if payload.Attributes[key] != value {
			t.Fatalf("attribute %s = %q, want %q", key, payload.Attributes[key], value)
		}
	}
}

func TestNilAmountFormatsAsZero(t *testing.T) {
	payload := TokenBurned{Owner: addr(1)}.Event()
	if payload.Attributes["amount"] != "0" {
		t.Fatalf("nil amount must render as 0, got %q", payload.Attributes["amount"])
	}
}

func TestCertificateCategorisedJoinsTags(t *testing.T) {
	payload := CertificateCategorised{
		TokenID:  3,
		Category: "course",
		Tags:     []string{"go", "backend"},
		Height:   9,
	}.Event()
	if payload.Attributes["tags"] != "go,backend" {
		t.Fatalf("unexpected tags attribute: %q", payload.Attributes["tags"])
	}
}

func TestBlacklistUpdatedAttributes(t *testing.T) {
	payload := BlacklistUpdated{Admin: addr(1), Account: addr(2), Listed: true, Height: 5}.Event()
	if payload.Type != TypeBlacklistUpdated {
		t.Fatalf("unexpected type: %s", payload.Type)
	}
	if payload.Type != "access.blacklist.updated" {
		t.Fatalf("unexpected type: %s", payload.Type)
	}
	if payload.Attributes["listed"] != "true" {
		t.Fatalf("unexpected listed attribute: %q", payload.Attributes["listed"])
	}
}

func TestRecorderSnapshotsAreIndependent(t *testing.T) {
	recorder := NewRecorder()
	recorder.Emit(PauseToggled{Admin: addr(1), Paused: true, Height: 1})
	recorder.Emit(PauseToggled{Admin: addr(1), Paused: false, Height: 2})

	first := recorder.Events()
	if len(first) != 2 {
		t.Fatalf("expected 2 events, got %d", len(first))
	}
	first[0].Attributes["paused"] = "tampered"

	second := recorder.Events()
	if second[0].Attributes["paused"] == "tampered" {
		t.Fatalf("snapshot mutation leaked into the recorder")
	}
	if second[0].Type != TypePauseToggled || second[1].Type != TypePauseToggled {
		t.Fatalf("unexpected event types: %s, %s", second[0].Type, second[1].Type)
	}
}
