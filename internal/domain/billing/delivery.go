package billing

import "time"

// resolvedDelivery determines the effective delivery code, time and doctor.
// An explicit delivery_code on the slot wins; otherwise an
// obstetrician-attributed delivery maps to the OB code and anything else to
// the default. With no delivery slot at all the episode still delivered
// (admitted < delivered is already checked), so fall back to the recorded
// delivery timestamp and the first window's doctor.
func resolvedDelivery(s *Snapshot) (code string, at time.Time, slot *SlotRecord, doctor *DoctorRef) {
	for i := range s.Slots {
		if s.Slots[i].Action == actionDelivery {
			slot = &s.Slots[i]
			break
		}
	}
	if slot == nil {
		code = CodeDeliveryDefault
		at = *s.Patient.DeliveredAt
		if len(s.Windows) > 0 {
			w := s.Windows[0]
			if s.doctorIsObstetrician(w.DoctorID) {
				code = CodeDeliveryOB
			}
			doctor = s.doctorRef(w.DoctorID)
		}
		return code, at, nil, doctor
	}
	switch {
	case slot.DeliveryCode != "":
		code = slot.DeliveryCode
	case s.doctorIsObstetrician(slot.DoctorID):
		code = CodeDeliveryOB
	default:
		code = CodeDeliveryDefault
	}
	at = slot.StartTime
	if slot.DeliveryTime != nil {
		at = *slot.DeliveryTime
	}
	return code, at, slot, s.doctorRef(slot.DoctorID)
}

// buildDeliveryBillings emits the delivery line plus one line per
// complication flag, all at the delivery time with the same modifier.
func buildDeliveryBillings(s *Snapshot) []Entry {
	code, at, slot, doctor := resolvedDelivery(s)
	modifier := afterHoursModifier(at)
	if slot != nil && slot.BMIProgram {
		modifier = joinModifiers(modifier, ModifierBMIProgram)
	}

	entries := []Entry{{
		Time:     at,
		Code:     code,
		Modifier: modifier,
		Doctor:   doctor,
		Kind:     KindDelivery,
	}}
	if slot == nil {
		return entries
	}
	complications := []struct {
		set  bool
		code string
	}{
		{slot.Hemorrhage, CodeHemorrhage},
		{slot.Vacuum, CodeVacuum},
		{slot.Laceration, CodeLaceration},
		{slot.ShoulderDystocia, CodeDystocia},
		{slot.ManualPlacenta, CodeManualPlacenta},
	}
	for _, c := range complications {
		if !c.set {
			continue
		}
		entries = append(entries, Entry{
			Time:     at,
			Code:     c.code,
			Modifier: modifier,
			Doctor:   doctor,
			Kind:     KindDelivery,
		})
	}
	return entries
}
