package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrOutcome  = "outcome"
	AttrPhase    = "phase"
	AttrBreaker  = "breaker"
	AttrState    = "state"
)
