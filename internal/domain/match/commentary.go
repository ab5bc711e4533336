package match

import "github.com/okian/libero/internal/domain/rng"

// Commentary banks: presentation text only, selected through the shared
// random source so replays render identically.

var phaseDescriptions = map[string][]string{
	PhaseBuildup: {
		"Patient circulation at the back; the press is probed, not broken.",
		"The ball moves side to side while runners look for a seam.",
		"A long spell of possession with little penetration, but plenty to read.",
	},
	PhasePressing: {
		"The press snaps on; every touch under siege.",
		"A coordinated hunt for the ball high up the pitch.",
		"Triggers fire and three shirts collapse on the receiver.",
	},
	PhaseTransition: {
		"Turnover, and suddenly the pitch is fifty yards of open grass.",
		"End-to-end chaos; whoever runs hardest wins this spell.",
		"The game breaks; both shapes dissolve into sprints.",
	},
	PhaseSetPiece: {
		"A dead ball and a crowded box; choreography against chaos.",
		"The set-piece unit trots forward; routines everyone has rehearsed.",
		"Play stops, the box fills, and the delivery decides everything.",
	},
	PhaseDefensiveStand: {
		"One side pinned in, bodies on every line.",
		"Wave after wave repelled; the block bends without breaking.",
		"A siege forms around the penalty area.",
	},
	PhaseAttackingMove: {
		"A sweeping move with real intent carves up the channel.",
		"Quick combinations around the box; the final ball is coming.",
		"The attack finds its rhythm and the full-backs arrive in numbers.",
	},
	PhaseMidfieldBattle: {
		"The game lives in the middle third; second balls are currency.",
		"A scrap for territory with neither side keeping the ball long.",
		"Midfield congestion; touches are short and contested.",
	},
}

var commentaryBanks = map[string][]string{
	EventGoal: {
		"Finds the corner; the net ripples and the ground erupts.",
		"Tucked away with the minimum of fuss.",
		"A finish that was decided before the ball even arrived.",
	},
	EventSave: {
		"Strong hands behind it; the rebound dies safely.",
		"Full stretch to turn it around the post.",
		"Reads the flight early and claims it clean.",
	},
	EventPass: {
		"A crisp exchange through midfield opens the angle.",
		"The pass splits two lines and turns defense into attack.",
		"Moved first time; the tempo never drops.",
	},
	EventCross: {
		"Whipped in hard across the six-yard line.",
		"Stands a cross up to the back post.",
		"Low delivery fizzed through the corridor.",
	},
	EventTackle: {
		"Times the challenge perfectly and comes out with the ball.",
		"A full-blooded tackle that lifts the whole side.",
		"Slides in cleanly and recycles possession.",
	},
	EventSprint: {
		"Burns past his man on the outside.",
		"A forty-yard recovery run at full tilt.",
		"Opens his stride and the gap simply vanishes.",
	},
	EventAerialDuel: {
		"Climbs highest and wins the first contact.",
		"A bruising aerial contest in the middle of the park.",
		"Attacks the dropping ball with real conviction.",
	},
	EventDribble: {
		"Wriggles through two challenges on the touchline.",
		"A drop of the shoulder and he's away.",
		"Carries the ball thirty yards with his head up.",
	},
	EventInterception: {
		"Steps in front of the pass everyone else assumed was safe.",
		"Sniffs out the danger before it becomes any.",
		"Cuts the supply line with a single step.",
	},
	EventShot: {
		"Lets fly from distance; not far over.",
		"Worked onto the stronger foot and driven at goal.",
		"A snapshot in a crowded box.",
	},
	EventFoul: {
		"Late into the challenge and the whistle goes.",
		"A cynical tug stops the counter at source.",
		"Catches the man, not the ball.",
	},
	EventClearance: {
		"Heads it away under pressure from two attackers.",
		"Hooks it clear off the line of the six-yard box.",
		"No ceremony; into the stands and reset.",
	},
}

var defaultCommentary = []string{
	"The moment passes almost unnoticed in the flow of the game.",
}

func commentaryFor(eventType string, src rng.Source) string {
	bank, ok := commentaryBanks[eventType]
	if !ok {
		bank = defaultCommentary
	}
	return rng.Pick(src, bank)
}
