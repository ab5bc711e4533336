package match

import (
	"github.com/okian/libero/internal/domain/model"
	"github.com/okian/libero/internal/domain/rng"
)

// Scoreline sampling constants.
const (
	homeAdvantage  = 1.08
	goalRateBase   = 1.35
	goalRateTrials = 10 // Bernoulli trials approximating the Poisson draw
	matchMinutes   = 90
)

// sampleResult produces the final score independently of the observed
// phases: a Poisson-like goal count per side driven by average current
// ability with a fixed home advantage, then shooting-weighted attribution
// at unique minutes.
func sampleResult(home, away Team, src rng.Source) Result {
	homeRate := goalRateBase * (averageAbility(home) / 100) * homeAdvantage
	awayRate := goalRateBase * (averageAbility(away) / 100)

	res := Result{
		HomeGoals: sampleGoals(homeRate, src),
		AwayGoals: sampleGoals(awayRate, src),
	}

	usedMinutes := map[int]bool{}
	for i := 0; i < res.HomeGoals; i++ {
		res.Scorers = append(res.Scorers, attributeGoal(home, true, usedMinutes, src))
	}
	for i := 0; i < res.AwayGoals; i++ {
		res.Scorers = append(res.Scorers, attributeGoal(away, false, usedMinutes, src))
	}
	return res
}

// sampleGoals approximates Poisson(rate) with fixed-count Bernoulli
// trials, which keeps the draw count constant for replay stability.
func sampleGoals(rate float64, src rng.Source) int {
	p := rate / goalRateTrials
	goals := 0
	for i := 0; i < goalRateTrials; i++ {
		if src.Chance(p) {
			goals++
		}
	}
	return goals
}

// attributeGoal picks the scorer by a finishing/off-the-ball weighted
// draw over the side's outfield players and assigns a minute no other
// goal has used.
func attributeGoal(team Team, isHome bool, usedMinutes map[int]bool, src rng.Source) Scorer {
	pool := make([]rng.Weighted[string], 0, len(team.Players))
	for _, p := range team.Players {
		if p.Position.IsGoalkeeper() {
			continue
		}
		w := float64(p.Attr(model.AttrFinishing))*2 + float64(p.Attr(model.AttrOffTheBall))
		pool = append(pool, rng.Weighted[string]{Item: p.ID, Weight: w})
	}
	scorer, ok := rng.WeightedPick(src, pool)
	if !ok && len(team.Players) > 0 {
		scorer = team.Players[src.IntBetween(0, len(team.Players)-1)].ID
	}

	minute := src.IntBetween(1, matchMinutes)
	for tries := 0; usedMinutes[minute] && tries < matchMinutes; tries++ {
		minute = minute%matchMinutes + 1
	}
	usedMinutes[minute] = true

	return Scorer{PlayerID: scorer, Minute: minute, Home: isHome}
}

func averageAbility(t Team) float64 {
	if len(t.Players) == 0 {
		return 0
	}
	sum := 0
	for _, p := range t.Players {
		sum += p.CurrentAbility
	}
	return float64(sum) / float64(len(t.Players))
}
