package billing

import "time"

// buildRoundsBillings derives after-hours premium and supportive-care lines
// from rounds slots between admission and the triage cutoff.
func buildRoundsBillings(s *Snapshot, cutoff time.Time) []Entry {
	admitted := *s.Patient.AdmittedAt
	var entries []Entry
	for _, slot := range s.Slots {
		if slot.Action != actionRounds {
			continue
		}
		if slot.StartTime.Before(admitted) || slot.StartTime.After(cutoff) {
			continue
		}
		if premium := afterHoursPremiumModifier(slot.StartTime, s.StatHolidays, s.DesignatedHolidays); premium != "" {
			entries = append(entries, Entry{
				Time:     slot.StartTime,
				Code:     CodeAfterHoursPremium,
				Modifier: premium,
				Doctor:   s.doctorRef(slot.DoctorID),
				Kind:     KindRounds,
			})
		}
		if slot.SupportiveCare {
			entries = append(entries, Entry{
				Time:   slot.StartTime,
				Code:   CodeSupportiveCare,
				Doctor: s.doctorRef(slot.DoctorID),
				Kind:   KindRounds,
			})
		}
	}
	return entries
}

// buildBabyBillings is the entire billing path for baby patients: tongue-tie
// clips bill per slot and a resuscitation flag bills once at the start time.
func buildBabyBillings(s *Snapshot) []Entry {
	var entries []Entry
	for _, slot := range s.Slots {
		if slot.Action != actionTongueTieClip {
			continue
		}
		entries = append(entries, Entry{
			Time:     slot.StartTime,
			Code:     CodeTongueTieClip,
			Modifier: afterHoursModifier(slot.StartTime),
			Doctor:   s.doctorRef(slot.DoctorID),
			Kind:     KindBaby,
		})
	}
	if s.Patient.BabyResuscitation && s.Patient.StartDatetime != nil {
		entries = append(entries, Entry{
			Time:     *s.Patient.StartDatetime,
			Code:     CodeBabyResuscitation,
			Modifier: afterHoursModifier(*s.Patient.StartDatetime),
			Kind:     KindBaby,
		})
	}
	sortEntries(entries)
	return entries
}
