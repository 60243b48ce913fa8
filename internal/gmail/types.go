package gmail

// MessageSummary is the compact view of a message used for listings.
type MessageSummary struct {
	ID       string   `json:"id"`
	ThreadID string   `json:"thread_id"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	Subject  string   `json:"subject"`
	Date     string   `json:"date"`
	Snippet  string   `json:"snippet"`
	Labels   []string `json:"labels,omitempty"`
	Unread   bool     `json:"unread"`
}

// Attachment describes an attachment without its content. Content is
// fetched separately by attachment id.
type Attachment struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

// MessageContent is the full view of a single message, including the
// decoded plain-text body.
type MessageContent struct {
	MessageSummary
	Cc          string       `json:"cc,omitempty"`
	Body        string       `json:"body"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Label is a Gmail label, system or user created.
type Label struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Thread is a conversation: its id, a subject taken from the first
// message, and every message in delivery order.
type Thread struct {
	ID       string           `json:"id"`
	Subject  string           `json:"subject"`
	Messages []MessageContent `json:"messages"`
}

// OutgoingMessage describes an email to send or to store as a draft.
type OutgoingMessage struct {
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	Body    string
	IsHTML  bool

	// InReplyTo and References carry threading headers for replies.
	InReplyTo  string
	References string
	// ThreadID keeps a reply in its conversation.
	ThreadID string
}

// Draft pairs a draft id with the message it would send.
type Draft struct {
	ID      string         `json:"id"`
	Message MessageSummary `json:"message"`
}
