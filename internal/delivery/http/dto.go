package http

import "encoding/json"

// ResultResponse is the uniform body returned by every notification
// endpoint. Success and failure are distinguishable only by the string.
type ResultResponse struct {
	Result string `json:"result"`
}

// CommonRequest holds the fields shared by every fixed-schema endpoint.
// Everything besides api_key and message is optional.
type CommonRequest struct {
	APIKey   string `json:"api_key" binding:"required"`
	Subject  string `json:"subject"`
	Message  string `json:"message" binding:"required"`
	URL      string `json:"url"`
	Priority string `json:"priority"`
	Source   string `json:"source"`
}

// InputRequest is the payload of the generic /input endpoint.
type InputRequest struct {
	CommonRequest
}

// HealthChecksRequest is the payload sent by HealthChecks pings. The
// tool leaves literal template tokens ($NAME, $STATUS, ...) in fields it
// did not fill; those are treated as empty.
type HealthChecksRequest struct {
	CommonRequest
	Name   string `json:"name"`
	Status string `json:"status"`
	Tags   string `json:"tags"`
	Time   string `json:"time"`
	UUID   string `json:"uuid"`
}

// MonitRequest is the payload sent by Monit alerts.
type MonitRequest struct {
	CommonRequest
	Action            string `json:"action"`
	Date              string `json:"date"`
	Description       string `json:"description"`
	Event             string `json:"event"`
	Host              string `json:"host"`
	ProcessChildren   string `json:"process_children"`
	ProcessCPUPercent string `json:"process_cpu_percent"`
	ProcessPID        string `json:"process_pid"`
	ProcessMemory     string `json:"process_memory"`
	ProgramStatus     string `json:"program_status"`
	Service           string `json:"service"`
}

// SmokePingRequest is the payload sent by SmokePing alerts.
type SmokePingRequest struct {
	CommonRequest
	AlertName   string `json:"alertname"`
	Hostname    string `json:"hostname"`
	LossPattern string `json:"losspattern"`
	RTT         string `json:"rtt"`
	Target      string `json:"target"`
}

// UptimeRobotRequest is the payload sent by UptimeRobot alerts. Unfilled
// fields arrive as literal *fieldName* tokens and are treated as empty.
type UptimeRobotRequest struct {
	CommonRequest
	AlertDateTime         string `json:"alertDateTime"`
	AlertDetails          string `json:"alertDetails"`
	AlertDuration         string `json:"alertDuration"`
	AlertType             string `json:"alertType"`
	AlertTypeFriendlyName string `json:"alertTypeFriendlyName"`
	MonitorAlertContacts  string `json:"monitorAlertContacts"`
	MonitorFriendlyName   string `json:"monitorFriendlyName"`
	MonitorID             string `json:"monitorID"`
	MonitorURL            string `json:"monitorURL"`
	SSLExpiryDate         string `json:"sslExpiryDate"`
	SSLExpiryDaysLeft     string `json:"sslExpiryDaysLeft"`
}

// Webhook payload shapes. Pointer fields distinguish an absent required
// field from an empty one, so malformed bodies surface as failures.

type changeDetectionPayload struct {
	Title   *string `json:"title"`
	Message *string `json:"message"`
}

// textPayload covers Headphones, Home Assistant and LazyLibrarian, which
// all deliver a single "text" field.
type textPayload struct {
	Text *string `json:"text"`
}

type radarrPayload struct {
	Movie *radarrMovie `json:"movie"`
}

type radarrMovie struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
}

type sonarrPayload struct {
	EventType string          `json:"eventType"`
	Series    *sonarrSeries   `json:"series"`
	Episodes  []sonarrEpisode `json:"episodes"`
}

type sonarrSeries struct {
	Title string `json:"title"`
}

type sonarrEpisode struct {
	SeasonNumber  int    `json:"seasonNumber"`
	EpisodeNumber int    `json:"episodeNumber"`
	Title         string `json:"title"`
	AirDate       string `json:"airDate"`
}

type synologyPayload struct {
	Message *string `json:"message"`
}

// tailscaleEvent is one entry of the batched Tailscale event-log body.
type tailscaleEvent struct {
	Type    string          `json:"type"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Tailnet string          `json:"tailnet"`
}
