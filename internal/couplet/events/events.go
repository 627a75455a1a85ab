// Package events fans pairing notifications out to connected clients over
// Server-Sent Events.
package events

import "time"

type Type string

const (
	// TypeCoupleLinked is sent to both partners once a couple becomes active.
	TypeCoupleLinked Type = "couple.linked"
	// TypePartnerInviteReceived is sent to the invitee of an email invite.
	TypePartnerInviteReceived Type = "partner_invite.received"
	// TypeConnected is the first frame on every stream.
	TypeConnected Type = "connected"
	// TypeHeartbeat keeps idle connections open through proxies.
	TypeHeartbeat Type = "heartbeat"
)

type Event struct {
	Type Type      `json:"type"`
	Data any       `json:"data,omitempty"`
	At   time.Time `json:"at"`
}

// CoupleLinked is the payload of TypeCoupleLinked.
type CoupleLinked struct {
	CoupleID  string `json:"couple_id"`
	PartnerID string `json:"partner_id"`
}

// PartnerInviteReceived is the payload of TypePartnerInviteReceived.
type PartnerInviteReceived struct {
	InviteID  string `json:"invite_id"`
	InviterID string `json:"inviter_id"`
}
