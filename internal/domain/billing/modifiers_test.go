package billing

import (
	"testing"
	"time"
)

func TestTimeModifier(t *testing.T) {
	cases := []struct {
		at         time.Time
		wantMod    string
		wantWeight int
	}{
		{time.Date(2024, 1, 8, 3, 0, 0, 0, time.UTC), ModifierNightAM, 3},
		{time.Date(2024, 1, 8, 23, 0, 0, 0, time.UTC), ModifierNightPM, 3},
		{time.Date(2024, 1, 6, 10, 0, 0, 0, time.UTC), ModifierWeekend, 2},
		{time.Date(2024, 1, 8, 18, 0, 0, 0, time.UTC), ModifierEvening, 2},
		{time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC), "", 1},
	}
	for _, c := range cases {
		mod, weight := timeModifier(c.at)
		if mod != c.wantMod || weight != c.wantWeight {
			t.Errorf("timeModifier(%v) = %q,%d want %q,%d", c.at, mod, weight, c.wantMod, c.wantWeight)
		}
	}
}

func TestAfterHoursModifier(t *testing.T) {
	cases := []struct {
		at   time.Time
		want string
	}{
		{time.Date(2024, 1, 8, 3, 0, 0, 0, time.UTC), ModifierAHNightAM},
		{time.Date(2024, 1, 8, 23, 0, 0, 0, time.UTC), ModifierAHNightPM},
		{time.Date(2024, 1, 6, 10, 0, 0, 0, time.UTC), ModifierAHWeekend},
		{time.Date(2024, 1, 8, 18, 0, 0, 0, time.UTC), ModifierAHEvening},
		{time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC), ""},
	}
	for _, c := range cases {
		if got := afterHoursModifier(c.at); got != c.want {
			t.Errorf("afterHoursModifier(%v) = %q want %q", c.at, got, c.want)
		}
	}
}

func TestAfterHoursPremiumModifierHolidays(t *testing.T) {
	stat := map[string]bool{"2024-07-01": true}
	designated := map[string]bool{"2024-08-05": true}

	statDay := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	if got := afterHoursPremiumModifier(statDay, stat, designated); got != ModifierPremiumStat {
		t.Errorf("stat holiday = %q want %q", got, ModifierPremiumStat)
	}
	designatedDay := time.Date(2024, 8, 5, 10, 0, 0, 0, time.UTC)
	if got := afterHoursPremiumModifier(designatedDay, stat, designated); got != ModifierPremiumDesignated {
		t.Errorf("designated holiday = %q want %q", got, ModifierPremiumDesignated)
	}
	// Night outranks the holiday on the same date.
	statNight := time.Date(2024, 7, 1, 3, 0, 0, 0, time.UTC)
	if got := afterHoursPremiumModifier(statNight, stat, designated); got != ModifierPremiumNightAM {
		t.Errorf("stat holiday night = %q want %q", got, ModifierPremiumNightAM)
	}
	plainDay := time.Date(2024, 7, 2, 10, 0, 0, 0, time.UTC)
	if got := afterHoursPremiumModifier(plainDay, stat, designated); got != "" {
		t.Errorf("plain weekday = %q want empty", got)
	}
}

func TestCallbackCodes(t *testing.T) {
	night := time.Date(2024, 1, 8, 2, 0, 0, 0, time.UTC)
	weekend := time.Date(2024, 1, 6, 10, 0, 0, 0, time.UTC)
	day := time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)

	if code, value := callbackCodeForTriage(night); code != CodeCallbackTriageNight || value != callbackTriageNightValue {
		t.Errorf("triage night = %q %v", code, value)
	}
	if code, value := callbackCodeForTriage(weekend); code != CodeCallbackTriageEvening || value != callbackTriageEveningValue {
		t.Errorf("triage weekend = %q %v", code, value)
	}
	if code, value := callbackCodeForTriage(day); code != CodeCallbackTriageDay || value != callbackTriageDayValue {
		t.Errorf("triage day = %q %v", code, value)
	}
	if code, value := callbackCodeForInpatient(night); code != CodeCallbackInpatientNight || value != callbackInpatientNightValue {
		t.Errorf("inpatient night = %q %v", code, value)
	}
	if code, value := callbackCodeForInpatient(day); code != CodeCallbackInpatientDay || value != callbackInpatientDayValue {
		t.Errorf("inpatient day = %q %v", code, value)
	}
}

func TestReassessmentBaseCode(t *testing.T) {
	if got := reassessmentBaseCode(time.Date(2024, 1, 8, 2, 0, 0, 0, time.UTC)); got != CodeReassessNight {
		t.Errorf("night = %q", got)
	}
	if got := reassessmentBaseCode(time.Date(2024, 1, 6, 10, 0, 0, 0, time.UTC)); got != CodeReassessEvening {
		t.Errorf("weekend day = %q", got)
	}
	if got := reassessmentBaseCode(time.Date(2024, 1, 8, 18, 0, 0, 0, time.UTC)); got != CodeReassessEvening {
		t.Errorf("weekday evening = %q", got)
	}
	if got := reassessmentBaseCode(time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)); got != CodeReassessDay {
		t.Errorf("weekday day = %q", got)
	}
}

func TestTriageVisitModifierTiers(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{15, "CMGP01"},
		{30, "CMGP02"},
		{45, "CMGP03"},
		{60, "CMGP05"},
		{120, "CMGP08"},
	}
	for _, c := range cases {
		if got := triageVisitModifier(c.minutes); got != c.want {
			t.Errorf("triageVisitModifier(%d) = %q want %q", c.minutes, got, c.want)
		}
	}
}

func TestJoinModifiers(t *testing.T) {
	if got := joinModifiers("", ModifierBMIProgram); got != ModifierBMIProgram {
		t.Errorf("empty base = %q", got)
	}
	if got := joinModifiers(ModifierAHWeekend, ModifierBMIProgram); got != "WK,BMIPRO" {
		t.Errorf("joined = %q", got)
	}
	if got := joinModifiers(ModifierAHWeekend, ""); got != ModifierAHWeekend {
		t.Errorf("empty extra = %q", got)
	}
}
