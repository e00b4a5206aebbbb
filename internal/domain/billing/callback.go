package billing

import "time"

// callbackInfo is one qualifying window's callback billing, with the fixed
// fee value the orchestrator weighs against ghost entries.
type callbackInfo struct {
	billings []Entry
	slotTime time.Time
	total    float64
}

// buildCallbackBillings emits a callback for every window whose doctor's
// chronologically first worked slot belongs to this patient. Triage actions
// bill a triage callback; attended work at or after admission bills the
// 03.03DF plus inpatient-code pair.
func buildCallbackBillings(s *Snapshot) []callbackInfo {
	admitted := *s.Patient.AdmittedAt
	var infos []callbackInfo
	for _, w := range s.Windows {
		first := firstWorkedSlot(s.AllSlots, w)
		if first == nil || !first.belongsTo(s.Patient.ID) {
			continue
		}
		doctor := s.doctorRef(first.DoctorID)
		switch {
		case first.isTriageAction():
			code, value := callbackCodeForTriage(first.StartTime)
			infos = append(infos, callbackInfo{
				billings: []Entry{{
					Time:   first.StartTime,
					Code:   code,
					Doctor: doctor,
					Kind:   KindCallback,
				}},
				slotTime: first.StartTime,
				total:    value,
			})
		case !first.StartTime.Before(admitted):
			code, value := callbackCodeForInpatient(first.StartTime)
			infos = append(infos, callbackInfo{
				billings: []Entry{
					{Time: first.StartTime, Code: CodeCallbackLead, Doctor: doctor, Kind: KindCallback},
					{Time: first.StartTime, Code: code, Doctor: doctor, Kind: KindCallback},
				},
				slotTime: first.StartTime,
				total:    value,
			})
		}
	}
	return infos
}

// firstWorkedSlot is the doctor's earliest slot with any action inside the
// window, regardless of patient. Single linear scan.
func firstWorkedSlot(slots []SlotRecord, w WindowRecord) *SlotRecord {
	var first *SlotRecord
	for i := range slots {
		slot := &slots[i]
		if slot.DoctorID != w.DoctorID || slot.Action == "" {
			continue
		}
		if slot.StartTime.Before(w.StartDatetime) || !slot.StartTime.Before(w.EndDatetime) {
			continue
		}
		if first == nil || slot.StartTime.Before(first.StartTime) {
			first = slot
		}
	}
	return first
}
