package analytics

import (
	"aimrange/internal/ledger"
	"aimrange/internal/stats"
)

type BadgeID string

const (
	BadgeSharpshooter  BadgeID = "sharpshooter"
	BadgeSpeedDemon    BadgeID = "speed_demon"
	BadgeUnstoppable   BadgeID = "unstoppable"
	BadgeCenturion     BadgeID = "centurion"
	BadgeTriggerHappy  BadgeID = "trigger_happy"
	BadgeVeteran       BadgeID = "veteran"
	BadgePerfectionist BadgeID = "perfectionist"
)

type Badge struct {
	ID          BadgeID `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

var AllBadges = map[BadgeID]Badge{
	BadgeSharpshooter:  {ID: BadgeSharpshooter, Name: "Sharpshooter", Description: "10+ center hits in a single round", Icon: "🎯"},
	BadgeSpeedDemon:    {ID: BadgeSpeedDemon, Name: "Speed Demon", Description: "Average reaction time under 300ms", Icon: "⚡"},
	BadgeUnstoppable:   {ID: BadgeUnstoppable, Name: "Unstoppable", Description: "15-hit streak in a round", Icon: "🔥"},
	BadgeCenturion:     {ID: BadgeCenturion, Name: "Centurion", Description: "500+ points in a single round", Icon: "💯"},
	BadgeTriggerHappy:  {ID: BadgeTriggerHappy, Name: "Trigger Happy", Description: "3+ shots per second average", Icon: "🔫"},
	BadgeVeteran:       {ID: BadgeVeteran, Name: "Veteran", Description: "Played 10+ rounds", Icon: "🏅"},
	BadgePerfectionist: {ID: BadgePerfectionist, Name: "Perfectionist", Description: "50%+ of shots on the center ring", Icon: "✨"},
}

// EvaluateRoundBadges checks which badges a single round earned.
func EvaluateRoundBadges(sum stats.Summary) []Badge {
	var earned []Badge

	if sum.CenterHits >= 10 {
		earned = append(earned, AllBadges[BadgeSharpshooter])
	}

	if sum.AvgReactionMs > 0 && sum.AvgReactionMs < 300 {
		earned = append(earned, AllBadges[BadgeSpeedDemon])
	}

	if sum.BestStreak >= 15 {
		earned = append(earned, AllBadges[BadgeUnstoppable])
	}

	if sum.Score >= 500 {
		earned = append(earned, AllBadges[BadgeCenturion])
	}

	if sum.DurationS > 0 && float64(sum.Shots)/sum.DurationS >= 3.0 {
		earned = append(earned, AllBadges[BadgeTriggerHappy])
	}

	if sum.Shots > 0 && float64(sum.CenterHits)/float64(sum.Shots)*100 >= 50.0 {
		earned = append(earned, AllBadges[BadgePerfectionist])
	}

	return earned
}

// EvaluateLifetimeBadges checks which badges a player earned across every
// recorded round.
func EvaluateLifetimeBadges(lt ledger.Lifetime) []Badge {
	var earned []Badge

	if lt.Rounds >= 10 {
		earned = append(earned, AllBadges[BadgeVeteran])
	}

	return earned
}
