package services

import (
	"time"

	"taskflow-backend/models"
)

// DateOnly truncates a timestamp to its calendar date in local time.
func DateOnly(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ts.Location())
}

// ApplyDailyStreak transitions the user's streak state for one scoring
// event happening at now, and returns the streak bonus points earned by
// the transition (0 or PointsStreakBonus).
//
// Only the first event of a calendar day changes streak state; same-day
// repeats are no-ops. A one-day gap extends the streak (and pays the bonus
// once the streak is past its first day); anything older restarts at 1.
func ApplyDailyStreak(user *models.User, now time.Time) int {
	today := DateOnly(now)
	bonus := 0

	switch {
	case user.LastActivityDate == nil:
		user.CurrentStreak = 1
	case DateOnly(*user.LastActivityDate).Equal(today.AddDate(0, 0, -1)):
		user.CurrentStreak++
		if user.CurrentStreak > 1 {
			bonus = PointsStreakBonus
		}
	case DateOnly(*user.LastActivityDate).Equal(today):
		// Already counted today.
	default:
		user.CurrentStreak = 1
	}

	if user.CurrentStreak > user.LongestStreak {
		user.LongestStreak = user.CurrentStreak
	}
	user.LastActivityDate = &today

	return bonus
}
