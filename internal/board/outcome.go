package board

// Reason names why an operation was rejected.
type Reason string

// Rejection reasons.
const (
	ReasonProjectConflict  Reason = "project-conflict"
	ReasonTeacherConflict  Reason = "teacher-conflict"
	ReasonNoAnchor         Reason = "no-anchor"
	ReasonNothingToAdjust  Reason = "nothing-to-adjust"
	ReasonInvalidSelection Reason = "invalid-selection"
	ReasonNotFound         Reason = "not-found"
	ReasonInvalidProject   Reason = "invalid-project"
)

// Outcome is the result of a board operation. A rejected outcome carries
// a reason and guarantees that nothing was mutated.
type Outcome struct {
	Reason Reason

	// Count is the number of entries an operation touched.
	Count int
	// ScheduleID is the id of the entry an operation created or kept.
	ScheduleID string
	// ProjectID is set by project creation.
	ProjectID string
}

// OK reports whether the operation was applied.
func (o Outcome) OK() bool { return o.Reason == "" }

func (o Outcome) String() string {
	if o.OK() {
		return "ok"
	}
	return "rejected: " + string(o.Reason)
}

func rejected(r Reason) Outcome { return Outcome{Reason: r} }
