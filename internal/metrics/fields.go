package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod    = "method"
	AttrPath      = "path"
	AttrStatus    = "status"
	AttrProvider  = "provider"
	AttrKind      = "kind"
	AttrPoller    = "poller"
	AttrErrorKind = "error_kind"
	AttrOutcome   = "outcome"
	AttrState     = "state"
)
