package mailer

// Message is a structured email the provider assembles itself.
type Message struct {
	From     string   `json:"from"`
	To       []string `json:"to"`
	ReplyTo  string   `json:"reply_to,omitempty"`
	Subject  string   `json:"subject"`
	HTMLBody string   `json:"html_body,omitempty"`
	TextBody string   `json:"text_body,omitempty"`
}

// RawMessage is a fully assembled MIME message sent as-is. Destinations
// travel out of band because the provider does not parse the blob's headers.
type RawMessage struct {
	From string
	To   []string
	Data []byte
}
