package billing

import (
	"fmt"
	"time"
)

const dateKeyLayout = "2006-01-02"

// timeModifier classifies a timestamp for ghost-slot ranking. Higher weight
// is more valuable to bill.
func timeModifier(t time.Time) (string, int) {
	switch {
	case isMorningNight(t):
		return ModifierNightAM, 3
	case t.Hour() >= 22:
		return ModifierNightPM, 3
	case isWeekend(t):
		return ModifierWeekend, 2
	case isEvening(t):
		return ModifierEvening, 2
	default:
		return "", 1
	}
}

// afterHoursModifier uses the same boundaries as timeModifier but the
// vocabulary carried on induction, monitoring and delivery codes.
func afterHoursModifier(t time.Time) string {
	switch {
	case isMorningNight(t):
		return ModifierAHNightAM
	case t.Hour() >= 22:
		return ModifierAHNightPM
	case isWeekend(t):
		return ModifierAHWeekend
	case isEvening(t):
		return ModifierAHEvening
	default:
		return ""
	}
}

// afterHoursPremiumModifier selects the 03.01AA modifier. Holiday lookups are
// keyed by local date; the tables are injected and default to empty.
func afterHoursPremiumModifier(t time.Time, stat, designated map[string]bool) string {
	key := t.Format(dateKeyLayout)
	switch {
	case isMorningNight(t):
		return ModifierPremiumNightAM
	case t.Hour() >= 22:
		return ModifierPremiumNightPM
	case stat[key]:
		return ModifierPremiumStat
	case designated[key]:
		return ModifierPremiumDesignated
	case isWeekend(t):
		return ModifierPremiumWeekend
	case isEvening(t):
		return ModifierPremiumEvening
	default:
		return ""
	}
}

func callbackCodeForTriage(t time.Time) (string, float64) {
	switch {
	case isNight(t):
		return CodeCallbackTriageNight, callbackTriageNightValue
	case isWeekend(t) || isEvening(t):
		return CodeCallbackTriageEvening, callbackTriageEveningValue
	default:
		return CodeCallbackTriageDay, callbackTriageDayValue
	}
}

func callbackCodeForInpatient(t time.Time) (string, float64) {
	switch {
	case isNight(t):
		return CodeCallbackInpatientNight, callbackInpatientNightValue
	case isWeekend(t) || isEvening(t):
		return CodeCallbackInpatientEvening, callbackInpatientEveningValue
	default:
		return CodeCallbackInpatientDay, callbackInpatientDayValue
	}
}

func reassessmentBaseCode(t time.Time) string {
	switch {
	case isNight(t):
		return CodeReassessNight
	case isWeekend(t) || isEvening(t):
		return CodeReassessEvening
	default:
		return CodeReassessDay
	}
}

// triageVisitModifier maps total visit minutes to one of the eight CMGP
// duration tiers, 10-minute steps starting at 15 minutes.
func triageVisitModifier(totalMinutes int) string {
	tier := (totalMinutes - 15 + 9) / 10
	if tier < 1 {
		tier = 1
	}
	if tier > 8 {
		tier = 8
	}
	return fmt.Sprintf("CMGP%02d", tier)
}

// joinModifiers appends extra modifiers comma separated, skipping empties.
func joinModifiers(base string, extras ...string) string {
	out := base
	for _, e := range extras {
		if e == "" {
			continue
		}
		if out == "" {
			out = e
		} else {
			out += "," + e
		}
	}
	return out
}
