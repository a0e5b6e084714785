package focus

import (
	"fmt"

	"github.com/afterclass/commitgoblin/goblin/economy/rewards"
)

func mention(sess *session) string {
	return "<@" + sess.UserID.String() + ">"
}

func round(phase int) int {
	return phase/2 + 1
}

func phaseStartMessage(sess *session, phase int) string {
	if isWorkPhase(phase) {
		return fmt.Sprintf("🧠 Focus round %d/%d for %s started (%d minutes).",
			round(phase), sess.rounds, mention(sess), sess.workMinutes)
	}
	return fmt.Sprintf("☕ Break for %s started (%d minutes).", mention(sess), sess.breakMinutes)
}

func focusEndMessage(sess *session, grant rewards.Grant, err error) string {
	msg := fmt.Sprintf("⏰ Focus session for %s has ended. Take a short breath, then keep going!", mention(sess))
	return msg + rewardLine(grant, err,
		"You've already reached today's maximum focus coins. Strong work! 💪",
		"Focus sessions under about 15 minutes do not give a coin bonus.")
}

func workEndMessage(sess *session, phase int, grant rewards.Grant, err error) string {
	msg := fmt.Sprintf("⏰ Focus round %d/%d for %s completed.", round(phase), sess.rounds, mention(sess))
	return msg + rewardLine(grant, err,
		"Daily focus coin limit reached. You crushed it today! 💪",
		"Focus rounds under about 15 minutes do not give a coin bonus.")
}

func breakEndMessage(sess *session) string {
	return fmt.Sprintf("⏰ Break for %s ended.", mention(sess))
}

func pomodoroCompleteMessage(sess *session) string {
	return fmt.Sprintf("✅ Pomodoro session for %s is fully complete! Great job. 💪", mention(sess))
}

func rewardLine(grant rewards.Grant, err error, capped, tooShort string) string {
	if err != nil {
		return "\n⚠️ Your focus bonus could not be recorded this time."
	}
	switch grant.Reason {
	case rewards.ReasonOK:
		return fmt.Sprintf("\n💰 Focus bonus: **%d** coins (today's focus bonus total **%d** coins, counting ~%d/%d minutes).",
			grant.CoinsAwarded, grant.TotalCoinsToday, grant.TotalMinutesToday, grant.CapMinutes)
	case rewards.ReasonCapped:
		return "\n💰 Focus bonus: " + capped
	case rewards.ReasonTooShort:
		return "\nℹ️ " + tooShort
	default:
		return ""
	}
}
