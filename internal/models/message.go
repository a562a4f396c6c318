package models

// IncomingMessage is one chat event normalized for internal processing,
// regardless of which transport (webhook or Kafka) delivered it.
type IncomingMessage struct {
	UserID    string `json:"user_id" validate:"required"`
	Text      string `json:"text"`
	ReplyID   string `json:"reply_id"`
	CreatedAt int64  `json:"created_at"`
}

// KafkaMessage is the envelope published by the chat gateway.
type KafkaMessage struct {
	Pattern string           `json:"pattern"`
	Data    KafkaMessageData `json:"data"`
}

type KafkaMessageData struct {
	From      string `json:"from" validate:"required"`
	Body      string `json:"body"`
	ReplyID   string `json:"reply_id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
}
