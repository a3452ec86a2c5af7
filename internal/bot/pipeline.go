package bot

import (
	"cardhunter/internal/bot/brain"
	botinternal "cardhunter/internal/bot/internal"
)

// SlotContext holds the state for the target slot decision pipeline.
type SlotContext struct {
	Phase    botinternal.GamePhase
	Profile  brain.OpponentProfile
	Selected brain.SlotView
}

// SlotRule represents a logic unit that can influence which hidden slot is attacked.
type SlotRule interface {
	Name() string
	Apply(ctx *SlotContext)
}

// PreferEdgeRule attacks whichever end of the hidden run has the sharper best
// candidate. Edge slots have the narrowest spread of likely ranks.
type PreferEdgeRule struct{}

func (r *PreferEdgeRule) Name() string { return "PreferEdge" }

func (r *PreferEdgeRule) Apply(ctx *SlotContext) {
	slots := ctx.Profile.Slots
	if len(slots) == 0 {
		return
	}
	first, last := slots[0], slots[len(slots)-1]
	if last.BestScore > first.BestScore {
		ctx.Selected = last
		return
	}
	ctx.Selected = first
}

// PreferConstrainedRule attacks the slot with the fewest surviving candidates
// once reveals have started narrowing ranges.
type PreferConstrainedRule struct{}

func (r *PreferConstrainedRule) Name() string { return "PreferConstrained" }

func (r *PreferConstrainedRule) Apply(ctx *SlotContext) {
	if ctx.Phase == botinternal.PhaseOpening {
		return
	}
	if best, ok := ctx.Profile.MostConstrained(); ok {
		ctx.Selected = best
	}
}

func runSlotPipeline(ctx *SlotContext, rules []SlotRule) {
	for _, rule := range rules {
		rule.Apply(ctx)
	}
}
