package billing

import "time"

const slotInterval = 15 * time.Minute

// floorQuarter rounds t down to the nearest quarter hour in its own location.
// Truncate is not used because it operates on absolute time and misaligns in
// zones with non-hour UTC offsets.
func floorQuarter(t time.Time) time.Time {
	return t.Add(-time.Duration(t.Minute()%15)*time.Minute -
		time.Duration(t.Second())*time.Second -
		time.Duration(t.Nanosecond()))
}

// quarterSlots generates every quarter-hour timestamp from floorQuarter(from)
// up to but excluding until.
func quarterSlots(from, until time.Time) []time.Time {
	var slots []time.Time
	for t := floorQuarter(from); t.Before(until); t = t.Add(slotInterval) {
		slots = append(slots, t)
	}
	return slots
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// isNight covers before 07:00 and 22:00 onward.
func isNight(t time.Time) bool {
	return t.Hour() < 7 || t.Hour() >= 22
}

func isMorningNight(t time.Time) bool {
	return t.Hour() < 7
}

// isEvening covers weekday 17:00 to 22:00.
func isEvening(t time.Time) bool {
	return !isWeekend(t) && t.Hour() >= 17 && t.Hour() < 22
}

// groupEncounters splits sorted timestamps into maximal runs spaced exactly
// 15 minutes apart. Each run is one encounter.
func groupEncounters(times []time.Time) [][]time.Time {
	var groups [][]time.Time
	for _, t := range times {
		n := len(groups)
		if n > 0 {
			last := groups[n-1][len(groups[n-1])-1]
			if t.Sub(last) == slotInterval {
				groups[n-1] = append(groups[n-1], t)
				continue
			}
		}
		groups = append(groups, []time.Time{t})
	}
	return groups
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
