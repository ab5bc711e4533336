// Package model contains domain models passed between layers.
package model

// Attribute identifies one rated aspect of a player, on the 1-20 scale.
type Attribute string

// Technical attributes.
const (
	AttrPassing    Attribute = "passing"
	AttrDribbling  Attribute = "dribbling"
	AttrFinishing  Attribute = "finishing"
	AttrFirstTouch Attribute = "first_touch"
	AttrCrossing   Attribute = "crossing"
	AttrTackling   Attribute = "tackling"
)

// Physical attributes.
const (
	AttrPace     Attribute = "pace"
	AttrStamina  Attribute = "stamina"
	AttrStrength Attribute = "strength"
	AttrAgility  Attribute = "agility"
	AttrJumping  Attribute = "jumping"
)

// Mental attributes.
const (
	AttrComposure     Attribute = "composure"
	AttrDecisions     Attribute = "decisions"
	AttrConcentration Attribute = "concentration"
	AttrVision        Attribute = "vision"
	AttrDetermination Attribute = "determination"
)

// Tactical attributes.
const (
	AttrPositioning Attribute = "positioning"
	AttrMarking     Attribute = "marking"
	AttrOffTheBall  Attribute = "off_the_ball"
	AttrTeamwork    Attribute = "teamwork"
	AttrWorkRate    Attribute = "work_rate"
)

// Hidden attributes. Never surfaced by the observation generators; only
// truth-revealing insight actions may read them.
const (
	AttrInjuryProneness    Attribute = "injury_proneness"
	AttrConsistency        Attribute = "consistency"
	AttrBigGameTemperament Attribute = "big_game_temperament"
	AttrProfessionalism    Attribute = "professionalism"
)

// AttributeGroup names one of the observable groups plus the hidden one.
type AttributeGroup string

const (
	GroupTechnical AttributeGroup = "technical"
	GroupPhysical  AttributeGroup = "physical"
	GroupMental    AttributeGroup = "mental"
	GroupTactical  AttributeGroup = "tactical"
	GroupHidden    AttributeGroup = "hidden"
)

// attributeGroups maps each group to its member attributes. Order matters:
// generators iterate these slices, so reordering changes random draws.
var attributeGroups = map[AttributeGroup][]Attribute{
	GroupTechnical: {AttrPassing, AttrDribbling, AttrFinishing, AttrFirstTouch, AttrCrossing, AttrTackling},
	GroupPhysical:  {AttrPace, AttrStamina, AttrStrength, AttrAgility, AttrJumping},
	GroupMental:    {AttrComposure, AttrDecisions, AttrConcentration, AttrVision, AttrDetermination},
	GroupTactical:  {AttrPositioning, AttrMarking, AttrOffTheBall, AttrTeamwork, AttrWorkRate},
	GroupHidden:    {AttrInjuryProneness, AttrConsistency, AttrBigGameTemperament, AttrProfessionalism},
}

// GroupAttributes returns the attributes belonging to a group. The returned
// slice must not be modified by callers.
func GroupAttributes(g AttributeGroup) []Attribute {
	return attributeGroups[g]
}

// Position is a rough positional role used for event eligibility and
// positional-fit scoring.
type Position string

const (
	PosGoalkeeper   Position = "GK"
	PosCentreBack   Position = "DC"
	PosFullBack     Position = "DW"
	PosDefensiveMid Position = "DM"
	PosCentreMid    Position = "MC"
	PosWideMid      Position = "MW"
	PosAttackingMid Position = "AM"
	PosWinger       Position = "WF"
	PosStriker      Position = "ST"
)

// IsGoalkeeper reports whether the position may be credited with saves.
func (p Position) IsGoalkeeper() bool { return p == PosGoalkeeper }

// IsWide reports whether the position plays in wide channels, making it
// eligible for crossing events.
func (p Position) IsWide() bool {
	switch p {
	case PosFullBack, PosWideMid, PosWinger:
		return true
	default:
		return false
	}
}

// IsAttacking reports whether the position is a forward-line role.
func (p Position) IsAttacking() bool {
	switch p {
	case PosAttackingMid, PosWinger, PosStriker:
		return true
	default:
		return false
	}
}

// PlayerRecord is the ground truth for one player. It is owned by the
// world registry; this core reads it and never writes it.
type PlayerRecord struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Age              int               `json:"age"`
	Position         Position          `json:"position"`
	CurrentAbility   int               `json:"current_ability"`   // 0-200
	PotentialAbility int               `json:"potential_ability"` // 0-200
	MarketValue      float64           `json:"market_value"`
	Attributes       map[Attribute]int `json:"attributes"` // 1-20 per attribute
}

// Attr returns the player's value for one attribute, defaulting to a flat
// 10 when the record is missing it so generators stay total.
func (p PlayerRecord) Attr(a Attribute) int {
	if v, ok := p.Attributes[a]; ok {
		return v
	}
	return 10
}

// AverageAttr returns the mean value across the given attributes.
func (p PlayerRecord) AverageAttr(attrs []Attribute) float64 {
	if len(attrs) == 0 {
		return 10
	}
	sum := 0
	for _, a := range attrs {
		sum += p.Attr(a)
	}
	return float64(sum) / float64(len(attrs))
}
