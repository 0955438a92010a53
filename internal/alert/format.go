package alert

import (
	"encoding/json"
	"fmt"
)

// FormatPayload builds the webhook body for the given format.
func FormatPayload(format string, event Event) ([]byte, error) {
	switch format {
	case "slack":
		return formatSlack(event)
	default:
		return formatGeneric(event)
	}
}

func formatGeneric(event Event) ([]byte, error) {
	return json.Marshal(event)
}

func formatSlack(event Event) ([]byte, error) {
	payload := map[string]any{
		"blocks": []any{
			map[string]any{
				"type": "header",
				"text": map[string]any{
					"type": "plain_text",
					"text": fmt.Sprintf("airwatch: %s", event.Type),
				},
			},
			map[string]any{
				"type": "section",
				"fields": []any{
					map[string]any{"type": "mrkdwn", "text": fmt.Sprintf("*Network:* %s", event.Network)},
					map[string]any{"type": "mrkdwn", "text": fmt.Sprintf("*Detail:* %s", event.Detail)},
					map[string]any{"type": "mrkdwn", "text": fmt.Sprintf("*At:* %s", event.Timestamp)},
				},
			},
		},
	}
	return json.Marshal(payload)
}
