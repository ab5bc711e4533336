package insight

import (
	"sort"

	"github.com/okian/libero/internal/domain/model"
	"github.com/okian/libero/internal/domain/rng"
)

const (
	pulseContacts        = 4
	pulseContactsFizzled = 2

	intelRecommendation = "recommendation"
	intelTip            = "tip"
	intelWarning        = "warning"

	recommendationFloor = 0.75
	tipFloor            = 0.4
)

var intelMessages = map[string][]string{
	intelRecommendation: {
		"Sign him before the summer window. I would stake my name on it.",
		"The best I have seen at that level in years. Move now.",
		"Every club in the region will know about him by spring.",
	},
	intelTip: {
		"Worth a trip. The numbers do not tell the whole story.",
		"His coach rates him higher than the stats suggest.",
		"Keep a file open on this one. Something is there.",
	},
	intelWarning: {
		"Heard a name in passing, but I would not trust the source.",
		"Careful with that one. The stories do not add up.",
		"There is talk in the lower leagues. Unverified, treat it as such.",
	},
}

func intelKind(reliability float64) string {
	switch {
	case reliability >= recommendationFloor:
		return intelRecommendation
	case reliability >= tipFloor:
		return intelTip
	default:
		return intelWarning
	}
}

// networkPulse polls the most reliable contacts for player intel. A
// scout with no contacts wastes the spend. Draws per contact: one Pick
// over known players (skipped when the contact knows none), one Pick
// over the message bank.
func (e *Economy) networkPulse(res *Result, ctx ActionContext, fizzled bool, src rng.Source) {
	if len(ctx.Contacts) == 0 {
		return
	}
	contacts := make([]model.Contact, len(ctx.Contacts))
	copy(contacts, ctx.Contacts)
	sort.SliceStable(contacts, func(i, j int) bool {
		if contacts[i].Reliability != contacts[j].Reliability {
			return contacts[i].Reliability > contacts[j].Reliability
		}
		return contacts[i].ID < contacts[j].ID
	})
	keep := pulseContacts
	if fizzled {
		keep = pulseContactsFizzled
	}
	if len(contacts) > keep {
		contacts = contacts[:keep]
	}

	intel := make([]ContactIntel, 0, len(contacts))
	for _, c := range contacts {
		item := ContactIntel{ContactID: c.ID, Kind: intelKind(c.Reliability)}
		if len(c.KnownPlayers) > 0 {
			item.PlayerID = rng.Pick(src, c.KnownPlayers)
		} else {
			// A contact with no names only ever trades warnings.
			item.Kind = intelWarning
		}
		item.Message = rng.Pick(src, intelMessages[item.Kind])
		intel = append(intel, item)
	}
	res.Success = true
	res.Network = &NetworkPayload{Intel: intel}
}
