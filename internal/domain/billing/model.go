package billing

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Kind tags the origin of an entry. It drives the ghost scheduler's
// priority sort and the orchestrator's mutual-exclusion rules and is never
// serialized.
type Kind int

const (
	KindGhost Kind = iota
	KindAttended
	KindTriage
	KindStatus
	KindCallback
	KindDelivery
	KindRounds
	KindBaby
)

// Entry is the atomic billing recommendation.
type Entry struct {
	Time     time.Time  `json:"time"`
	Code     string     `json:"code"`
	Modifier string     `json:"modifier"`
	Doctor   *DoctorRef `json:"doctor"`

	Kind     Kind `json:"-"`
	Priority int  `json:"-"`
	Weight   int  `json:"-"`
}

type DoctorRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// sortEntries orders by time ascending, stable so equal timestamps keep
// emission order.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time.Before(entries[j].Time)
	})
}
