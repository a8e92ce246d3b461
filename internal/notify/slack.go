package notify

import (
	"encoding/json"
	"fmt"

	"github.com/dosewatch/dosewatch/internal/model"
)

// SlackFormatter formats notifications for Slack webhooks.
type SlackFormatter struct{}

// slackPayload represents a Slack webhook payload.
type slackPayload struct {
	Text   string       `json:"text,omitempty"`
	Blocks []slackBlock `json:"blocks,omitempty"`
}

// slackBlock represents a Slack block.
type slackBlock struct {
	Type   string           `json:"type"`
	Text   *slackBlockText  `json:"text,omitempty"`
	Fields []slackBlockText `json:"fields,omitempty"`
}

// slackBlockText represents text in a Slack block.
type slackBlockText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Format converts a notification to Slack webhook format.
func (f *SlackFormatter) Format(n *model.Notification) ([]byte, error) {
	blocks := []slackBlock{
		{
			Type: "header",
			Text: &slackBlockText{
				Type: "plain_text",
				Text: n.Title,
			},
		},
		{
			Type: "section",
			Text: &slackBlockText{
				Type: "mrkdwn",
				Text: n.Message,
			},
		},
	}

	if len(n.Fields) > 0 {
		var fieldTexts []slackBlockText
		for key, value := range n.Fields {
			fieldTexts = append(fieldTexts, slackBlockText{
				Type: "mrkdwn",
				Text: fmt.Sprintf("*%s*\n%s", key, value),
			})
		}
		blocks = append(blocks, slackBlock{
			Type:   "section",
			Fields: fieldTexts,
		})
	}

	payload := slackPayload{
		Text:   fmt.Sprintf("%s: %s", n.Title, n.Message),
		Blocks: blocks,
	}

	return json.Marshal(payload)
}

// ContentType returns the content type for Slack webhooks.
func (f *SlackFormatter) ContentType() string {
	return "application/json"
}
