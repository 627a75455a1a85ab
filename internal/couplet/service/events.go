package service

import (
	"time"

	"github.com/aussiebroadwan/couplet/internal/couplet/domain"
	"github.com/aussiebroadwan/couplet/internal/couplet/events"
)

// Publisher delivers an event to every open stream of a user.
// *events.Hub satisfies it.
type Publisher interface {
	Publish(userID string, e events.Event)
}

func publishLinked(p Publisher, c domain.Couple, now time.Time) {
	if p == nil {
		return
	}
	for _, uid := range []string{c.Partner1ID, c.Partner2ID} {
		p.Publish(uid, events.Event{
			Type: events.TypeCoupleLinked,
			Data: events.CoupleLinked{CoupleID: c.ID, PartnerID: c.PartnerOf(uid)},
			At:   now,
		})
	}
}

func nowOr(f func() time.Time) time.Time {
	if f != nil {
		return f().UTC()
	}
	return time.Now().UTC()
}
