package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hamed0406/pingwatch/internal/domain"
)

// placeholder prefix shipped in the sample config; treated as unconfigured.
const placeholderWebhook = "https://hooks.slack.com/services/YOUR"

// SlackOptions mirrors the slack section of the config document.
type SlackOptions struct {
	Enabled          bool     `yaml:"enabled"`
	WebhookURL       string   `yaml:"webhook_url"`
	NotifyOnDown     bool     `yaml:"notify_on_down"`
	NotifyOnRecovery bool     `yaml:"notify_on_recovery"`
	DownThreshold    int      `yaml:"down_threshold"`
	MentionGroups    []string `yaml:"mention_groups"`
	MentionUsers     []string `yaml:"mention_users"`
	Username         string   `yaml:"username"`
}

// Slack posts alert events to an incoming-webhook endpoint.
type Slack struct {
	Opts   SlackOptions
	Client *http.Client
}

// NewSlack returns nil when the options leave the notifier unusable
// (disabled, or webhook missing/left at the sample placeholder).
func NewSlack(opts SlackOptions) *Slack {
	if !opts.Enabled || opts.WebhookURL == "" || strings.HasPrefix(opts.WebhookURL, placeholderWebhook) {
		return nil
	}
	return &Slack{
		Opts:   opts,
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

type slackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type slackAttachment struct {
	Color  string       `json:"color"`
	Title  string       `json:"title"`
	Fields []slackField `json:"fields"`
	Footer string       `json:"footer"`
	TS     int64        `json:"ts"`
}

type slackPayload struct {
	Username    string            `json:"username,omitempty"`
	Text        string            `json:"text,omitempty"`
	Attachments []slackAttachment `json:"attachments"`
}

func (s *Slack) Notify(ctx context.Context, ev domain.AlertEvent) error {
	if s == nil {
		return errors.New("slack disabled")
	}
	if !ev.Alive && !s.Opts.NotifyOnDown {
		return nil
	}
	if ev.Alive && !s.Opts.NotifyOnRecovery {
		return nil
	}

	body, _ := json.Marshal(s.payload(ev))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Opts.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("slack webhook: HTTP %d", resp.StatusCode)
	}
	return nil
}

func (s *Slack) payload(ev domain.AlertEvent) slackPayload {
	color := "danger"
	title := ":x: Host down"
	state := fmt.Sprintf("NG (unreachable) - %d consecutive failures", ev.FailureCount)
	if ev.Alive {
		color = "good"
		title = ":white_check_mark: Host recovered"
		state = "OK (reachable)"
	}

	username := s.Opts.Username
	if username == "" {
		username = "pingwatch"
	}

	return slackPayload{
		Username: username,
		Text:     s.mentionText(ev),
		Attachments: []slackAttachment{{
			Color: color,
			Title: title,
			Fields: []slackField{
				{Title: "Host", Value: ev.Host, Short: true},
				{Title: "State", Value: state, Short: true},
				{Title: "Detected", Value: ev.At.Format("2006-01-02 15:04:05"), Short: false},
			},
			Footer: "pingwatch",
			TS:     time.Now().Unix(),
		}},
	}
}

// mentionText builds the escalation tags carried only by the first down
// alert of an episode.
func (s *Slack) mentionText(ev domain.AlertEvent) string {
	if !ev.IncludeMention {
		return ""
	}
	var mentions []string
	for _, id := range s.Opts.MentionGroups {
		mentions = append(mentions, "<!subteam^"+id+">")
	}
	for _, id := range s.Opts.MentionUsers {
		mentions = append(mentions, "<@"+id+">")
	}
	return strings.Join(mentions, " ")
}
