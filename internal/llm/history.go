package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
)

// MaxHistory is how many prior turns are forwarded to the model.
const MaxHistory = 12

// Turn is one prior message of the conversation as sent by the widget.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ParseHistory keeps the last MaxHistory user/assistant turns. Turns with
// other roles or empty content are dropped.
func ParseHistory(turns []Turn) []*schema.Message {
	messages := make([]*schema.Message, 0, len(turns))
	for _, t := range turns {
		content := strings.TrimSpace(t.Content)
		if content == "" {
			continue
		}
		switch strings.ToLower(t.Role) {
		case "user":
			messages = append(messages, schema.UserMessage(content))
		case "assistant", "bot":
			messages = append(messages, schema.AssistantMessage(content, nil))
		}
	}
	if len(messages) > MaxHistory {
		messages = messages[len(messages)-MaxHistory:]
	}
	return messages
}

// ParseHistoryJSON decodes a JSON array of turns, as passed in a query string.
func ParseHistoryJSON(raw string) ([]*schema.Message, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var turns []Turn
	if err := json.Unmarshal([]byte(raw), &turns); err != nil {
		return nil, fmt.Errorf("failed to parse conversation JSON: %w", err)
	}
	return ParseHistory(turns), nil
}

// BuildMessages orders the system prompt, prior turns and the new question.
func BuildMessages(systemPrompt string, history []*schema.Message, question string) []*schema.Message {
	messages := make([]*schema.Message, 0, len(history)+2)
	messages = append(messages, schema.SystemMessage(systemPrompt))
	messages = append(messages, history...)
	messages = append(messages, schema.UserMessage(question))
	return messages
}
