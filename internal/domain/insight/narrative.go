package insight

import (
	"github.com/okian/libero/internal/domain/model"
	"github.com/okian/libero/internal/domain/rng"
)

// Narrative templating: a fixed prefix per specialization concatenated
// with a variant line per action. Success draws one Pick over the
// variants; soft failures return the fixed failure line with no draw,
// keeping replay draw counts stable relative to the outcome.

var specializationPrefixes = map[model.Specialization]string{
	model.SpecNone:      "The scout pauses,",
	model.SpecTechnical: "With a craftsman's eye,",
	model.SpecCharacter: "Reading the person behind the player,",
	model.SpecTactical:  "Mapping the shape of the game,",
	model.SpecNetwork:   "Working the phones and old favors,",
}

var successVariants = map[string][]string{
	ActionClarityOfVision: {
		"everything sharpens. For a moment the noise falls away.",
		"the picture resolves. Numbers, not impressions.",
		"doubt gives way to certainty about what was just seen.",
	},
	ActionSecondLook: {
		"a half-remembered run at the far post comes back in full.",
		"something at the edge of the eye earns a second viewing.",
		"the notebook flips back a page and the detail is there.",
	},
	ActionDiamondInTheRough: {
		"one name keeps rising above the rest of the group.",
		"among all of them, a single ceiling stands apart.",
		"the crowd blurs and one player refuses to.",
	},
	ActionFlawlessRecall: {
		"every touch of the afternoon files itself away, exact.",
		"the session replays in order, nothing lost.",
		"the report half-writes itself on the drive home.",
	},
	ActionTouchTest: {
		"the first touch tells the whole technical story.",
		"ten minutes of ball work say more than a season of stats.",
		"each trap and turn is measured against the best.",
	},
	ActionGenerationalWhisper: {
		"a quiet voice insists this boy is different.",
		"it is the kind of talent that arrives once a decade.",
		"the age on the team sheet makes the ceiling frightening.",
	},
	ActionHiddenNature: {
		"what the player hides from coaches shows itself plainly.",
		"the mask slips and the real character is legible.",
		"the parts no match ever shows come into view.",
	},
	ActionPressureTest: {
		"the big moment arrives and the measure is taken.",
		"with the game in the balance, the truth surfaces.",
		"stakes strip away the rehearsed and leave the real.",
	},
	ActionPatternRecognition: {
		"the player's movement traces a system the scout knows by heart.",
		"runs and rotations resolve into a recognizable scheme.",
		"the tactical picture assembles itself pass by pass.",
	},
	ActionPerfectFit: {
		"the player slots into an imagined shape, role by role.",
		"each position is tried on like a suit; some hang better.",
		"the right role announces itself against the wrong ones.",
	},
	ActionNetworkPulse: {
		"the network hums back with names and warnings.",
		"old contacts pay their debts in information.",
		"three calls in, the picture of the region fills out.",
	},
	ActionMarketBlindSpot: {
		"the spreadsheet betrays the market's lazy pricing.",
		"where others see a fee, the scout sees a discount.",
		"a gap opens between what players cost and what they are.",
	},
}

var failureLines = map[string]string{
	ActionClarityOfVision:     "but the moment passes before anything settles.",
	ActionSecondLook:          "but nothing at the edges was worth a second viewing.",
	ActionDiamondInTheRough:   "but the pitch is empty of anyone to weigh.",
	ActionFlawlessRecall:      "but the day refuses to be pinned down.",
	ActionTouchTest:           "but the drills end before a verdict forms.",
	ActionGenerationalWhisper: "but no young voice answers the question.",
	ActionHiddenNature:        "but the mask stays firmly in place.",
	ActionPressureTest:        "but the game never produces a real moment of pressure.",
	ActionPatternRecognition:  "but the play stays formless to the last.",
	ActionPerfectFit:          "but no shape suggests itself.",
	ActionNetworkPulse:        "but the phone rings out. There is no network to pulse.",
	ActionMarketBlindSpot:     "but the market, for once, has priced everyone fairly.",
}

func narrativeFor(actionID string, spec model.Specialization, success bool, src rng.Source) string {
	prefix, ok := specializationPrefixes[spec]
	if !ok {
		prefix = specializationPrefixes[model.SpecNone]
	}
	if !success {
		return prefix + " " + failureLines[actionID]
	}
	variants := successVariants[actionID]
	if len(variants) == 0 {
		return prefix + " the work is done."
	}
	return prefix + " " + rng.Pick(src, variants)
}
