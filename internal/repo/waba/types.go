package waba

// Payload shapes for the Cloud API /messages endpoint. Only the message
// types this bot sends are modeled.

type TextMessage struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             TextBody `json:"text"`
}

type TextBody struct {
	Body string `json:"body"`
}

type InteractiveMessage struct {
	MessagingProduct string      `json:"messaging_product"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Interactive      Interactive `json:"interactive"`
}

type Interactive struct {
	Type   string           `json:"type"`
	Header *ListHeader      `json:"header,omitempty"`
	Body   InteractiveText  `json:"body"`
	Footer *InteractiveText `json:"footer,omitempty"`
	Action ListAction       `json:"action"`
}

// InteractiveText is the {"text": ...} fragment used by interactive
// body and footer blocks.
type InteractiveText struct {
	Text string `json:"text"`
}

type ListHeader struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type ListAction struct {
	Button   string        `json:"button"`
	Sections []ListSection `json:"sections"`
}

type ListSection struct {
	Title string    `json:"title"`
	Rows  []ListRow `json:"rows"`
}

type ListRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// List is the transport-agnostic menu the usecase layer builds; the
// client maps it onto the interactive list payload.
type List struct {
	Header     string
	Body       string
	Footer     string
	ButtonText string
	Sections   []ListSection
}
