package moment

// Description banks. These are data, not logic: the banding algorithm
// (low 1-3, medium 4-6, high 7-10) stays in code, the phrasing lives in
// these tables.

// band indexes the detailed banks by quality.
type band int

const (
	bandLow band = iota
	bandMedium
	bandHigh
)

func qualityBand(q int) band {
	switch {
	case q <= 3:
		return bandLow
	case q <= 6:
		return bandMedium
	default:
		return bandHigh
	}
}

func detailedBank(t Type, quality int) []string {
	return detailedBanks[t][qualityBand(quality)]
}

var detailedBanks = map[Type]map[band][]string{
	TypeTechnical: {
		bandLow: {
			"Takes a heavy touch under no pressure and concedes possession cheaply.",
			"Shapes to cross twice and drags both attempts into the first defender.",
			"Miscontrols a routine pass and has to foul to stop the break he started.",
		},
		bandMedium: {
			"Keeps the ball moving tidily; nothing ambitious, nothing given away.",
			"Brings a dropping ball down on the half-turn and recycles it simply.",
			"Finds a teammate through a closing gap; the weight of the pass is just about right.",
			"Works a one-two to escape the press, though the final pass goes sideways.",
		},
		bandHigh: {
			"Kills a fifty-yard diagonal dead with one touch and plays on without looking down.",
			"Drops a shoulder, beats two markers, and slips the pass the run deserved.",
			"Opens the pitch with a disguised pass nobody else on the pitch saw.",
			"Finishes first time on the swivel; the keeper never moved.",
			"Threads a ball between the lines with the outside of the boot, on the run.",
		},
	},
	TypePhysical: {
		bandLow: {
			"Loses a straight footrace he had a three-yard head start in.",
			"Bounces off the first honest shoulder-to-shoulder challenge.",
			"Visibly blowing after a single hard sprint; jogs through the next two.",
		},
		bandMedium: {
			"Holds his ground in a wrestling match down the channel; referee plays on.",
			"Covers the recovery run, arriving just in time to force the cross early.",
			"Competes for the second ball all half; wins about as many as he loses.",
			"Matches his man stride for stride and forces him inside onto cover.",
		},
		bandHigh: {
			"Eats up thirty yards to win a ball everyone else had given up on.",
			"Outjumps two markers from a standing start; wins it clean, both times.",
			"Repeats the same lung-busting run in the 2nd minute and the 80th; same speed.",
			"Shields the ball against two opponents and walks out of the tangle with it.",
		},
	},
	TypeMental: {
		bandLow: {
			"Panics at the first sign of pressure and hoofs the ball into touch.",
			"Switches off at a short corner and his man scores the simplest of chances.",
			"Argues with the referee long after the decision; his man runs off him meanwhile.",
		},
		bandMedium: {
			"Takes an extra touch to steady himself before picking the safe option.",
			"Realizes the press is coming and moves the ball one beat earlier than usual.",
			"Talks a younger teammate through a spell of pressure; keeps his own game simple.",
			"Misses a chance, shakes it off, and is in the same position two minutes later.",
		},
		bandHigh: {
			"Plays a blind-side reverse pass he must have mapped two phases earlier.",
			"Surrounded by three opponents, waits, waits, and releases at the perfect moment.",
			"Organizes the line through the game's worst spell; nothing gets in behind.",
			"Demands the ball straight after his own mistake and plays through it flawlessly.",
		},
	},
	TypeTactical: {
		bandLow: {
			"Chases the ball out of his zone and leaves the gap the goal comes from.",
			"Marks space nobody is attacking while his runner arrives unmarked.",
			"Presses alone at the wrong trigger and the whole shape has to absorb it.",
		},
		bandMedium: {
			"Tucks in on cue when the full-back pushes on; the rotation looks drilled.",
			"Holds the line with the rest of the unit; steps up a half-second late but gets there.",
			"Reads the switch early enough to be set when the ball arrives.",
			"Screens the passing lane into the striker for most of the half.",
		},
		bandHigh: {
			"Moves twice before the ball does and intercepts a pass that was never obviously on.",
			"Drags his marker away to open the lane the goal is scored through.",
			"Re-organizes the press on the fly after the opposition change shape.",
			"Covers two positions at once through a substitution muddle, seamlessly.",
		},
	},
	TypeCharacter: {
		bandLow: {
			"Head drops the moment the team goes behind; walks back while others sprint.",
			"Snaps at a teammate for a pass that was actually fine.",
			"Disappears from the game entirely once tackles start flying in.",
		},
		bandMedium: {
			"Takes an honest knock, gets up, and gets on with it without theatre.",
			"Plays through a quiet spell without hiding from the ball.",
			"Applauds a teammate's effort after his own shot was the better option.",
			"Accepts the tactical switch to an unfamiliar role without fuss.",
		},
		bandHigh: {
			"Gees up the whole side after a soft concession; the response is immediate.",
			"Wants the penalty everyone else is avoiding, and buries it.",
			"Stays after the whistle to work on the exact weakness today exposed.",
			"Drags a losing team forward almost alone for the final stretch.",
		},
	},
}

// vagueBank holds the type-specific but quality-agnostic rendering shown
// when the scout did not allocate focus to the player.
var vagueBank = map[Type][]string{
	TypeTechnical: {
		"Something happens around the ball involving him; you catch only the shape of it.",
		"A flash of technique at the edge of your vision; hard to judge from here.",
		"He's involved in a passage of play you only half follow.",
	},
	TypePhysical: {
		"A burst of movement on the far side; you can't tell who came out on top.",
		"Bodies collide near the touchline; he's one of them.",
		"There's running, a lot of it, somewhere in his channel.",
	},
	TypeMental: {
		"He reacts to something in the game; the context escapes you.",
		"A decision gets made over there. Good one? Bad one? Unclear.",
		"Some hesitation, or maybe patience, in his part of the pitch.",
	},
	TypeTactical: {
		"The shape shifts around him; whether he caused it you couldn't say.",
		"He's moving into space, or out of position. From this angle, who knows.",
		"Positional churn in his zone; the details blur.",
	},
	TypeCharacter: {
		"A flicker of body language you'd want a closer look at.",
		"Words are exchanged; his part in them is hard to read.",
		"Something in his reaction catches your eye, then the game moves on.",
	},
}
