package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ilindan-dev/notify-relay/internal/config"
	"github.com/ilindan-dev/notify-relay/internal/domain/model"
	"github.com/rs/zerolog"
)

// Dispatcher is the outbound side the handlers hand normalized
// notifications to.
type Dispatcher interface {
	Dispatch(ctx context.Context, n *model.Notification) error
}

// Default subjects for webhooks that don't carry a usable title.
const (
	subjectHeadphones    = "Headphones"
	subjectHomeAssistant = "Home Assistant"
	subjectLazyLibrarian = "LazyLibrarian"
	subjectRadarr        = "Radarr"
	subjectSonarr        = "Sonarr"
	subjectSynology      = "NAS"
	subjectTailscale     = "Tailscale"
)

// ChangeDetection.io appends this marker to every message; it is
// stripped before dispatch.
const changeDetectionSuffix = "\n---\n\n---"

// sonarrSubjectSuffixes maps Sonarr event type codes to the
// human-readable subject suffix.
var sonarrSubjectSuffixes = map[string]string{
	"Backup":   " -- Episode Backed Up",
	"Corrupt":  " -- Episode Corrupted",
	"Deleted":  " -- Episode Deleted",
	"Download": " -- Episode Downloaded",
	"Event":    " -- Event",
	"Failed":   " -- Corrupted",
	"Grab":     " -- Grabbed",
	"Health":   " -- Health Issues",
	"Test":     " -- Test",
	"Update":   " -- Updated",
	"Upgrade":  " -- Upgraded",
}

// Handlers holds the inbound HTTP surface: one normalizer per supported
// payload schema, all funneling into the dispatcher.
type Handlers struct {
	dispatcher Dispatcher
	logger     zerolog.Logger

	apiKey         string
	defaultSubject string
	successResult  string
	failureResult  string
	badKeyResult   string
}

// NewHandlers creates a new instance of Handlers.
func NewHandlers(cfg *config.Config, dispatcher Dispatcher, logger *zerolog.Logger) *Handlers {
	name := cfg.Application.APIName
	return &Handlers{
		dispatcher:     dispatcher,
		logger:         logger.With().Str("layer", "http_handler").Logger(),
		apiKey:         cfg.Application.APIKey,
		defaultSubject: "Output (" + name + ")",
		successResult:  "Success! Your input request was accepted by " + name,
		failureResult:  "Failure! Your input request was NOT accepted by " + name,
		badKeyResult:   fmt.Sprintf("Invalid API Key (%d)", http.StatusUnauthorized),
	}
}

// RegisterRoutes sets up the routing for the relay API.
func (h *Handlers) RegisterRoutes(router *gin.Engine) {
	router.POST("/input", h.Input)

	router.POST("/healthchecks", h.HealthChecks)
	router.POST("/monit", h.Monit)
	router.POST("/smokeping", h.SmokePing)
	router.POST("/uptimerobot", h.UptimeRobot)

	router.POST("/changedetectionio/:api_key", h.ChangeDetectionIO)
	router.POST("/headphones/:api_key", h.Headphones)
	router.POST("/homeassistant/:api_key", h.HomeAssistant)
	router.POST("/lazylibrarian/:api_key", h.LazyLibrarian)
	router.POST("/radarr/:api_key", h.Radarr)
	router.POST("/sonarr/:api_key", h.Sonarr)
	router.POST("/synology/:api_key", h.Synology)
	router.POST("/tailscale/:api_key", h.Tailscale)
}

// Input handles the generic /input endpoint: the body already carries a
// normalized notification.
func (h *Handlers) Input(c *gin.Context) {
	var req InputRequest
	if !h.bindAndGate(c, &req, &req.CommonRequest) {
		return
	}

	h.finish(c, h.dispatch(c, req.Subject, req.Message, req.URL, req.Priority, marshalRaw(req)))
}

// HealthChecks handles pings from HealthChecks. Unfilled fields arrive
// as literal template tokens and are skipped.
func (h *Handlers) HealthChecks(c *gin.Context) {
	var req HealthChecksRequest
	if !h.bindAndGate(c, &req, &req.CommonRequest) {
		return
	}

	message, url := foldURL(req.Message, req.URL)
	message = appendFields(message, []extraField{
		{"Name", req.Name, "$NAME"},
		{"Status", req.Status, "$STATUS"},
		{"Tags", req.Tags, "$TAGS"},
		{"Time", req.Time, "$NOW"},
		{"UUID", req.UUID, "$CODE"},
	})

	h.finish(c, h.dispatch(c, req.Subject, message, url, req.Priority, marshalRaw(req)))
}

// Monit handles alerts from Monit. The url and priority are not
// forwarded; Monit alerts carry everything in the message body.
func (h *Handlers) Monit(c *gin.Context) {
	var req MonitRequest
	if !h.bindAndGate(c, &req, &req.CommonRequest) {
		return
	}

	message := appendFields(req.Message+"\n\n", []extraField{
		{"action", req.Action, ""},
		{"date", req.Date, ""},
		{"description", req.Description, ""},
		{"event", req.Event, ""},
		{"host", req.Host, ""},
		{"process_children", req.ProcessChildren, ""},
		{"process_cpu_percent", req.ProcessCPUPercent, ""},
		{"process_pid", req.ProcessPID, ""},
		{"process_memory", req.ProcessMemory, ""},
		{"program_status", req.ProgramStatus, ""},
		{"service", req.Service, ""},
	})

	h.finish(c, h.dispatch(c, req.Subject, message, "", "", marshalRaw(req)))
}

// SmokePing handles alerts from SmokePing.
func (h *Handlers) SmokePing(c *gin.Context) {
	var req SmokePingRequest
	if !h.bindAndGate(c, &req, &req.CommonRequest) {
		return
	}

	message, url := foldURL(req.Message, req.URL)
	message = appendFields(message, []extraField{
		{"Alert Name", req.AlertName, ""},
		{"Hostname", req.Hostname, ""},
		{"Loss Pattern", req.LossPattern, ""},
		{"RTT", req.RTT, ""},
		{"Target", req.Target, ""},
	})

	h.finish(c, h.dispatch(c, req.Subject, message, url, req.Priority, marshalRaw(req)))
}

// UptimeRobot handles alerts from UptimeRobot. Unfilled fields arrive as
// literal *fieldName* tokens and are skipped.
func (h *Handlers) UptimeRobot(c *gin.Context) {
	var req UptimeRobotRequest
	if !h.bindAndGate(c, &req, &req.CommonRequest) {
		return
	}

	message, url := foldURL(req.Message, req.URL)
	message = appendFields(message, []extraField{
		{"alertDateTime", req.AlertDateTime, "*alertDateTime*"},
		{"alertDetails", req.AlertDetails, "*alertDetails*"},
		{"alertDuration", req.AlertDuration, "*alertDuration*"},
		{"alertType", req.AlertType, "*alertType*"},
		{"alertTypeFriendlyName", req.AlertTypeFriendlyName, "*alertTypeFriendlyName*"},
		{"monitorAlertContacts", req.MonitorAlertContacts, "*monitorAlertContacts*"},
		{"monitorFriendlyName", req.MonitorFriendlyName, "*monitorFriendlyName*"},
		{"monitorID", req.MonitorID, "*monitorID*"},
		{"monitorURL", req.MonitorURL, "*monitorURL*"},
		{"sslExpiryDate", req.SSLExpiryDate, "*sslExpiryDate*"},
		{"sslExpiryDaysLeft", req.SSLExpiryDaysLeft, "*sslExpiryDaysLeft*"},
	})

	h.finish(c, h.dispatch(c, req.Subject, message, url, req.Priority, marshalRaw(req)))
}

// ChangeDetectionIO handles webhooks from ChangeDetection.io.
func (h *Handlers) ChangeDetectionIO(c *gin.Context) {
	raw, ok := h.gateRaw(c)
	if !ok {
		return
	}

	var payload changeDetectionPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Title == nil || payload.Message == nil {
		h.failure(c, err)
		return
	}

	message := strings.TrimSuffix(*payload.Message, changeDetectionSuffix)
	h.finish(c, h.dispatch(c, *payload.Title, message, "", "0", raw))
}

// Headphones handles webhooks from Headphones.
func (h *Handlers) Headphones(c *gin.Context) {
	h.textWebhook(c, subjectHeadphones)
}

// HomeAssistant handles webhooks from Home Assistant.
func (h *Handlers) HomeAssistant(c *gin.Context) {
	h.textWebhook(c, subjectHomeAssistant)
}

// LazyLibrarian handles webhooks from LazyLibrarian.
func (h *Handlers) LazyLibrarian(c *gin.Context) {
	h.textWebhook(c, subjectLazyLibrarian)
}

// Radarr handles webhooks from Radarr.
func (h *Handlers) Radarr(c *gin.Context) {
	raw, ok := h.gateRaw(c)
	if !ok {
		return
	}

	var payload radarrPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Movie == nil {
		h.failure(c, err)
		return
	}

	message := fmt.Sprintf("%s [%d]", payload.Movie.Title, payload.Movie.Year)
	h.finish(c, h.dispatch(c, subjectRadarr, message, "", "0", raw))
}

// Sonarr handles webhooks from Sonarr. The subject suffix is derived
// from the event type; the test notification carries no air date, so a
// default is substituted.
func (h *Handlers) Sonarr(c *gin.Context) {
	raw, ok := h.gateRaw(c)
	if !ok {
		return
	}

	var payload sonarrPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Series == nil || len(payload.Episodes) == 0 {
		h.failure(c, err)
		return
	}

	episode := payload.Episodes[0]
	airDate := episode.AirDate
	if airDate == "" {
		airDate = "unknown air date"
	}

	message := fmt.Sprintf("%s\n\n%s - %dx%d - %s [%s]",
		payload.EventType, payload.Series.Title,
		episode.SeasonNumber, episode.EpisodeNumber, episode.Title, airDate)

	h.finish(c, h.dispatch(c, subjectSonarr+sonarrSubjectSuffixes[payload.EventType], message, "", "0", raw))
}

// Synology handles webhooks from Synology NAS notification settings.
func (h *Handlers) Synology(c *gin.Context) {
	raw, ok := h.gateRaw(c)
	if !ok {
		return
	}

	var payload synologyPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Message == nil {
		h.failure(c, err)
		return
	}

	h.finish(c, h.dispatch(c, subjectSynology, *payload.Message, "", "0", raw))
}

// Tailscale handles webhooks from Tailscale. The body is an array of
// discrete events; each one is normalized and dispatched independently.
func (h *Handlers) Tailscale(c *gin.Context) {
	raw, ok := h.gateRaw(c)
	if !ok {
		return
	}

	var events []json.RawMessage
	if err := json.Unmarshal(raw, &events); err != nil {
		h.failure(c, err)
		return
	}

	var errs []error
	for _, eventRaw := range events {
		var event tailscaleEvent
		if err := json.Unmarshal(eventRaw, &event); err != nil {
			h.failure(c, err)
			return
		}

		message := "Type: " + event.Type + "\n" + event.Message
		if data := tailscaleData(event.Data); data != "" {
			message += "\n\nData: " + data
		}

		subject := subjectTailscale + " (" + event.Tailnet + ")"
		if err := h.dispatch(c, subject, message, "", "0", eventRaw); err != nil {
			errs = append(errs, err)
		}
	}

	h.finish(c, errors.Join(errs...))
}

// bindAndGate binds a fixed-schema JSON body, applies field defaults and
// compares the body api_key against the configured one. It writes the
// response itself when the request cannot proceed.
func (h *Handlers) bindAndGate(c *gin.Context, req any, common *CommonRequest) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warn().Err(err).Str("path", c.FullPath()).Msg("invalid request body")
		c.JSON(http.StatusOK, ResultResponse{Result: h.failureResult})
		return false
	}

	if common.APIKey != h.apiKey {
		h.logger.Warn().Str("path", c.FullPath()).Msg("request rejected: invalid api key")
		c.JSON(http.StatusOK, ResultResponse{Result: h.badKeyResult})
		return false
	}

	if common.Subject == "" {
		common.Subject = h.defaultSubject
	}
	if common.Priority == "" {
		common.Priority = "0"
	}
	return true
}

// gateRaw compares the path api_key against the configured one and, if
// it matches, returns the raw request body.
func (h *Handlers) gateRaw(c *gin.Context) ([]byte, bool) {
	if c.Param("api_key") != h.apiKey {
		h.logger.Warn().Str("path", c.FullPath()).Msg("webhook rejected: invalid api key")
		c.JSON(http.StatusOK, ResultResponse{Result: h.badKeyResult})
		return nil, false
	}

	raw, err := c.GetRawData()
	if err != nil {
		h.failure(c, err)
		return nil, false
	}
	return raw, true
}

// textWebhook covers the webhooks that deliver a single "text" field.
func (h *Handlers) textWebhook(c *gin.Context, subject string) {
	raw, ok := h.gateRaw(c)
	if !ok {
		return
	}

	var payload textPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Text == nil {
		h.failure(c, err)
		return
	}

	h.finish(c, h.dispatch(c, subject, *payload.Text, "", "0", raw))
}

func (h *Handlers) dispatch(c *gin.Context, subject, message, url, priority string, raw []byte) error {
	n := model.NewNotification(subject, message, url, priority, raw)
	return h.dispatcher.Dispatch(c.Request.Context(), n)
}

// finish collapses the dispatch outcome into the generic result body.
// Delivery detail never reaches the caller; the logs carry it instead.
func (h *Handlers) finish(c *gin.Context, err error) {
	if err != nil {
		h.failure(c, err)
		return
	}
	c.JSON(http.StatusOK, ResultResponse{Result: h.successResult})
}

func (h *Handlers) failure(c *gin.Context, err error) {
	if err != nil {
		h.logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	} else {
		h.logger.Error().Str("path", c.FullPath()).Msg("request failed: malformed payload")
	}
	c.JSON(http.StatusOK, ResultResponse{Result: h.failureResult})
}

// extraField is one source-specific field appended to the message body
// as a "Label: value" line. A value equal to the placeholder token is
// treated as unfilled.
type extraField struct {
	label       string
	value       string
	placeholder string
}

// appendFields appends each populated field as a labelled line, in the
// declared order, skipping empty values and unfilled placeholders.
func appendFields(message string, fields []extraField) string {
	var b strings.Builder
	b.WriteString(message)
	for _, f := range fields {
		if f.value == "" || (f.placeholder != "" && f.value == f.placeholder) {
			continue
		}
		b.WriteString(f.label)
		b.WriteString(": ")
		b.WriteString(f.value)
		b.WriteString("\n")
	}
	return b.String()
}

// foldURL moves the url into the message body, the way the monitoring
// endpoints present links: appended after the base message, before the
// labelled fields.
func foldURL(message, url string) (string, string) {
	message += "\n\n"
	if url != "" {
		message += url + "\n\n"
	}
	return message, ""
}

// tailscaleData renders the optional event data for the message body.
// String data is printed bare; anything else is kept as compact JSON.
func tailscaleData(data json.RawMessage) string {
	if len(data) == 0 || string(data) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	return string(data)
}

// marshalRaw serializes a bound payload for the passthrough webhook
// channel. Bound payloads always marshal cleanly.
func marshalRaw(req any) []byte {
	raw, _ := json.Marshal(req)
	return raw
}
