package insight

import (
	"math"
	"sort"

	"github.com/okian/libero/internal/domain/model"
	"github.com/okian/libero/internal/domain/rng"
)

const (
	fitGrades        = 5
	fitGradesFizzled = 2
	fitNeutralScore  = 50
	attrScaleMax     = 20
)

// positionWeights holds the attribute weight vector per position. The
// fit score is the weighted attribute sum normalized against a perfect
// 20 in every weighted attribute.
var positionWeights = map[model.Position]map[model.Attribute]float64{
	model.PosGoalkeeper: {
		model.AttrAgility: 3, model.AttrJumping: 2, model.AttrConcentration: 2,
		model.AttrComposure: 2, model.AttrDecisions: 1,
	},
	model.PosCentreBack: {
		model.AttrTackling: 3, model.AttrMarking: 3, model.AttrJumping: 2,
		model.AttrStrength: 2, model.AttrPositioning: 2, model.AttrConcentration: 1,
	},
	model.PosFullBack: {
		model.AttrPace: 2, model.AttrStamina: 2, model.AttrTackling: 2,
		model.AttrCrossing: 2, model.AttrMarking: 2, model.AttrWorkRate: 2,
	},
	model.PosDefensiveMid: {
		model.AttrTackling: 3, model.AttrPositioning: 3, model.AttrPassing: 2,
		model.AttrDecisions: 2, model.AttrStamina: 1, model.AttrTeamwork: 1,
	},
	model.PosCentreMid: {
		model.AttrPassing: 3, model.AttrVision: 2, model.AttrDecisions: 2,
		model.AttrFirstTouch: 2, model.AttrStamina: 2, model.AttrTeamwork: 1,
	},
	model.PosWideMid: {
		model.AttrCrossing: 3, model.AttrPace: 2, model.AttrStamina: 2,
		model.AttrDribbling: 2, model.AttrWorkRate: 2,
	},
	model.PosAttackingMid: {
		model.AttrVision: 3, model.AttrPassing: 2, model.AttrFirstTouch: 2,
		model.AttrDribbling: 2, model.AttrComposure: 2, model.AttrOffTheBall: 1,
	},
	model.PosWinger: {
		model.AttrPace: 3, model.AttrDribbling: 3, model.AttrCrossing: 2,
		model.AttrAgility: 2, model.AttrOffTheBall: 1,
	},
	model.PosStriker: {
		model.AttrFinishing: 3, model.AttrOffTheBall: 2, model.AttrComposure: 2,
		model.AttrFirstTouch: 2, model.AttrPace: 1, model.AttrJumping: 1,
	},
}

// gradeOrder fixes iteration so grading is independent of map order.
var gradeOrder = []model.Position{
	model.PosGoalkeeper, model.PosCentreBack, model.PosFullBack,
	model.PosDefensiveMid, model.PosCentreMid, model.PosWideMid,
	model.PosAttackingMid, model.PosWinger, model.PosStriker,
}

// FitScore grades a player for one position on a 0-100 scale. Positions
// without a weight vector score a neutral 50.
func FitScore(p model.PlayerRecord, pos model.Position) int {
	weights, ok := positionWeights[pos]
	if !ok {
		return fitNeutralScore
	}
	var sum, total float64
	for attr, w := range weights {
		sum += w * float64(p.Attr(attr))
		total += w
	}
	if total == 0 {
		return fitNeutralScore
	}
	return int(math.Round(100 * sum / (attrScaleMax * total)))
}

// perfectFit grades the target for every position and keeps the best
// few. No draws.
func (e *Economy) perfectFit(res *Result, ctx ActionContext, fizzled bool, _ rng.Source) {
	target := ctx.Players[ctx.TargetPlayerID]
	grades := make([]PositionFit, 0, len(gradeOrder))
	for _, pos := range gradeOrder {
		grades = append(grades, PositionFit{Position: pos, Score: FitScore(target, pos)})
	}
	sort.SliceStable(grades, func(i, j int) bool { return grades[i].Score > grades[j].Score })
	keep := fitGrades
	if fizzled {
		keep = fitGradesFizzled
	}
	if len(grades) > keep {
		grades = grades[:keep]
	}
	res.Success = true
	res.Fit = &FitPayload{PlayerID: target.ID, Grades: grades}
}
