package alert

// Config defines a webhook alert destination.
type Config struct {
	URL     string            `yaml:"url"     json:"url"`
	Format  string            `yaml:"format"  json:"format"` // "generic", "slack"
	Events  []string          `yaml:"events"  json:"events"` // ["unauthorized", "join_failed", "remediated"]
	Headers map[string]string `yaml:"headers" json:"headers"`
}

// Event is the payload sent to webhook endpoints.
type Event struct {
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"` // "unauthorized", "join_failed", "remediated"
	Network   string `json:"network"`
	Detail    string `json:"detail,omitempty"`
}

// Event type names dispatched by the remediation agent.
const (
	EventUnauthorized = "unauthorized"
	EventJoinFailed   = "join_failed"
	EventRemediated   = "remediated"
)
