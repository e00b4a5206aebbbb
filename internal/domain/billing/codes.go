package billing

// Billing codes. Values exist only for the callback-vs-ghost comparison;
// nothing here is a claims amount.
const (
	CodeGhost      = "13.99JA"
	GhostSlotValue = 55.00

	CodeTriageVisit   = "03.03BZ"
	CodeNonStressTest = "87.54A"
	CodeSpeculumExam  = "13.99BE"

	CodeReassessDay     = "03.03LA"
	CodeReassessEvening = "03.03LB"
	CodeReassessNight   = "03.03LC"

	CodeInduction  = "85.5A"
	CodeMonitoring = "87.54B"

	CodeDeliveryDefault = "87.98A"
	CodeDeliveryOB      = "87.98B"
	CodeDeliveryVBAC    = "87.98C"

	CodeHemorrhage      = "85.62A"
	CodeVacuum          = "84.21"
	CodeLaceration      = "86.41A"
	CodeDystocia        = "85.69B"
	CodeManualPlacenta  = "85.49A"

	CodeAttendedCall = "03.03AR"
	CodeCallbackLead = "03.03DF"

	CodeAfterHoursPremium = "03.01AA"
	CodeSupportiveCare    = "03.05M"

	CodeTongueTieClip      = "98.01B"
	CodeBabyResuscitation  = "87.99A"
)

// Triage callback codes by time bucket.
const (
	CodeCallbackTriageDay     = "03.01ND"
	CodeCallbackTriageEvening = "03.01NE"
	CodeCallbackTriageNight   = "03.01NT"

	callbackTriageDayValue     = 52.48
	callbackTriageEveningValue = 78.72
	callbackTriageNightValue   = 104.96
)

// Inpatient callback codes by time bucket.
const (
	CodeCallbackInpatientDay     = "03.01PD"
	CodeCallbackInpatientEvening = "03.01PE"
	CodeCallbackInpatientNight   = "03.01PT"

	callbackInpatientDayValue     = 48.03
	callbackInpatientEveningValue = 72.04
	callbackInpatientNightValue   = 96.05
)

// Modifiers.
const (
	ModifierNightAM = "AMNT"
	ModifierNightPM = "PMNT"
	ModifierWeekend = "WKND"
	ModifierEvening = "EVEN"

	ModifierAHNightAM = "NTAM"
	ModifierAHNightPM = "NTPM"
	ModifierAHWeekend = "WK"
	ModifierAHEvening = "EV"

	ModifierPremiumNightAM    = "TNTA"
	ModifierPremiumNightPM    = "TNTP"
	ModifierPremiumWeekend    = "TWK"
	ModifierPremiumEvening    = "TEV"
	ModifierPremiumStat       = "TST"
	ModifierPremiumDesignated = "TDES"

	ModifierBMIProgram   = "BMIPRO"
	ModifierCoincident   = "COINPT"
	ModifierReassess20   = "CMXV20"
	ModifierReassess35   = "CMXV35"
)
