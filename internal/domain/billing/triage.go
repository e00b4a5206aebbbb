package billing

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// buildTriageBillings turns the patient's triage slots at or before cutoff
// into billing lines. Visits collapse to a single 03.03BZ with a duration
// modifier; reassessments bill per encounter; NST and speculum flags bill
// independently of grouping.
func buildTriageBillings(s *Snapshot, cutoff time.Time, allowVisit bool) []Entry {
	var visits, reassessments []SlotRecord
	for _, slot := range s.Slots {
		if slot.StartTime.After(cutoff) {
			continue
		}
		switch slot.Action {
		case actionTriageVisit:
			visits = append(visits, slot)
		case actionTriageReassessment:
			reassessments = append(reassessments, slot)
		}
	}
	sort.Slice(visits, func(i, j int) bool { return visits[i].StartTime.Before(visits[j].StartTime) })
	sort.Slice(reassessments, func(i, j int) bool {
		return reassessments[i].StartTime.Before(reassessments[j].StartTime)
	})

	var entries []Entry

	if allowVisit && len(visits) > 0 {
		first := visits[0]
		entries = append(entries, Entry{
			Time:     first.StartTime,
			Code:     CodeTriageVisit,
			Modifier: triageVisitModifier(len(visits) * 15),
			Doctor:   s.doctorRef(first.DoctorID),
			Kind:     KindTriage,
		})
	}

	byDoctor := make(map[uuid.UUID][]time.Time)
	var doctorOrder []uuid.UUID
	for _, slot := range reassessments {
		if _, seen := byDoctor[slot.DoctorID]; !seen {
			doctorOrder = append(doctorOrder, slot.DoctorID)
		}
		byDoctor[slot.DoctorID] = append(byDoctor[slot.DoctorID], slot.StartTime)
	}
	for _, doctorID := range doctorOrder {
		for _, encounter := range groupEncounters(byDoctor[doctorID]) {
			start := encounter[0]
			minutes := len(encounter) * 15
			modifier := ""
			switch {
			case minutes > 35:
				modifier = ModifierReassess35
			case minutes > 20:
				modifier = ModifierReassess20
			}
			entries = append(entries, Entry{
				Time:     start,
				Code:     reassessmentBaseCode(start),
				Modifier: modifier,
				Doctor:   s.doctorRef(doctorID),
				Kind:     KindTriage,
			})
		}
	}

	for _, slot := range append(append([]SlotRecord{}, visits...), reassessments...) {
		if slot.NonStressTest {
			entries = append(entries, Entry{
				Time:   slot.StartTime,
				Code:   CodeNonStressTest,
				Doctor: s.doctorRef(slot.DoctorID),
				Kind:   KindTriage,
			})
		}
		if slot.SpeculumExam {
			entries = append(entries, Entry{
				Time:   slot.StartTime,
				Code:   CodeSpeculumExam,
				Doctor: s.doctorRef(slot.DoctorID),
				Kind:   KindTriage,
			})
		}
	}

	sortEntries(entries)
	return entries
}

// triageCutoff is the later of the delivery time and the latest recorded
// Triage status event, so late triage work billed after delivery still
// counts.
func triageCutoff(s *Snapshot) time.Time {
	cutoff := *s.Patient.DeliveredAt
	for _, e := range s.Events {
		if e.Status == statusTriage && e.OccurredAt.After(cutoff) {
			cutoff = e.OccurredAt
		}
	}
	return cutoff
}

// allowTriageVisit blocks the 03.03BZ line when an induction happened before
// admission on the same day as the first triage visit and is attributed to a
// doctor who staffed triage, or is unattributed when no triage doctor is
// known.
func allowTriageVisit(s *Snapshot) bool {
	var firstVisit *SlotRecord
	triageDoctors := make(map[uuid.UUID]bool)
	for i := range s.Slots {
		slot := &s.Slots[i]
		if slot.Action != actionTriageVisit {
			continue
		}
		triageDoctors[slot.DoctorID] = true
		if firstVisit == nil || slot.StartTime.Before(firstVisit.StartTime) {
			firstVisit = slot
		}
	}
	if firstVisit == nil {
		return true
	}
	admitted := *s.Patient.AdmittedAt
	for _, e := range s.Events {
		if e.Status != statusInduction || !e.OccurredAt.Before(admitted) {
			continue
		}
		if !sameDay(e.OccurredAt, firstVisit.StartTime) {
			continue
		}
		if e.DoctorID != nil && triageDoctors[*e.DoctorID] {
			return false
		}
		if e.DoctorID == nil && len(triageDoctors) == 0 {
			return false
		}
	}
	return true
}
