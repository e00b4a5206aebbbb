package billing

// BuildOptimizedBillings is the engine entry point: one immutable snapshot
// in, one time-sorted recommendation list out. It never errors on malformed
// clinical data; failed preconditions yield an empty list for the caller to
// surface.
func BuildOptimizedBillings(s *Snapshot) []Entry {
	if s.Patient.PatientType == patientTypeBaby {
		return buildBabyBillings(s)
	}
	if s.Patient.AdmittedAt == nil || s.Patient.DeliveredAt == nil ||
		!s.Patient.AdmittedAt.Before(*s.Patient.DeliveredAt) {
		return []Entry{}
	}

	cutoff := triageCutoff(s)
	entries := buildTriageBillings(s, cutoff, allowTriageVisit(s))

	deliveryCode, _, _, _ := resolvedDelivery(s)
	obPath := deliveryCode == CodeDeliveryOB || deliveryCode == CodeDeliveryVBAC

	switch {
	case obPath:
		entries = append(entries, buildAttendedCallBillings(s)...)
		entries = append(entries, buildDeliveryBillings(s)...)
	case len(s.Windows) == 0:
		// No on-duty doctor overlapped the episode: triage, status and
		// rounds lines only.
	default:
		entries = append(entries, buildGhostBillings(s)...)
		entries = append(entries, buildDeliveryBillings(s)...)
	}

	entries = mergeCallbacks(entries, buildCallbackBillings(s))

	// Ghost billing and continuous monitoring are mutually exclusive;
	// only ghosts that survived callback filtering count.
	allowMonitoring := !hasGhostEntries(entries)
	entries = append(entries, buildStatusEventBillings(s, allowMonitoring)...)
	entries = append(entries, buildRoundsBillings(s, cutoff)...)

	sortEntries(entries)
	return entries
}

// mergeCallbacks adds each callback's lines and, when the callback's fixed
// value loses to the unmodified ghost entries that precede it, drops those
// ghosts instead. The callback itself is always kept.
func mergeCallbacks(entries []Entry, callbacks []callbackInfo) []Entry {
	for _, cb := range callbacks {
		ghostCount := 0
		for _, e := range entries {
			if isUnmodifiedGhost(e) && e.Time.Before(cb.slotTime) {
				ghostCount++
			}
		}
		if GhostSlotValue*float64(ghostCount) > cb.total {
			kept := entries[:0]
			for _, e := range entries {
				if isUnmodifiedGhost(e) && e.Time.Before(cb.slotTime) {
					continue
				}
				kept = append(kept, e)
			}
			entries = kept
		}
		entries = append(entries, cb.billings...)
	}
	return entries
}

func isUnmodifiedGhost(e Entry) bool {
	return e.Code == CodeGhost && e.Modifier == ""
}

func hasGhostEntries(entries []Entry) bool {
	for _, e := range entries {
		if e.Code == CodeGhost {
			return true
		}
	}
	return false
}
