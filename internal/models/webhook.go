package models

import "strconv"

// WebhookPayload is the Cloud API webhook envelope. Only message
// events are decoded; status updates and other change fields are
// ignored.
type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

type WebhookChange struct {
	Field string       `json:"field"`
	Value WebhookValue `json:"value"`
}

type WebhookValue struct {
	MessagingProduct string           `json:"messaging_product"`
	Messages         []WebhookMessage `json:"messages"`
}

type WebhookMessage struct {
	From        string              `json:"from"`
	ID          string              `json:"id"`
	Timestamp   string              `json:"timestamp"`
	Type        string              `json:"type"`
	Text        *WebhookText        `json:"text,omitempty"`
	Interactive *WebhookInteractive `json:"interactive,omitempty"`
}

type WebhookText struct {
	Body string `json:"body"`
}

type WebhookInteractive struct {
	Type      string            `json:"type"`
	ListReply *WebhookListReply `json:"list_reply,omitempty"`
}

type WebhookListReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Messages flattens the payload into the internal message shape,
// dropping events that carry neither text nor a list selection.
func (p WebhookPayload) Messages() []IncomingMessage {
	var out []IncomingMessage
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				incoming := IncomingMessage{
					UserID: msg.From,
				}
				incoming.CreatedAt, _ = strconv.ParseInt(msg.Timestamp, 10, 64)

				switch {
				case msg.Interactive != nil && msg.Interactive.ListReply != nil:
					incoming.ReplyID = msg.Interactive.ListReply.ID
				case msg.Text != nil:
					incoming.Text = msg.Text.Body
				default:
					continue
				}

				if incoming.UserID == "" {
					continue
				}
				out = append(out, incoming)
			}
		}
	}
	return out
}
