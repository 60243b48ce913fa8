package auth

// Scopes are the Gmail OAuth scopes mailbridge requests at consent time.
// They are requested together so a single consent covers every operation
// the adapter exposes: read, send, compose, modify and label management.
var Scopes = []string{
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.send",
	"https://www.googleapis.com/auth/gmail.compose",
	"https://www.googleapis.com/auth/gmail.modify",
	"https://www.googleapis.com/auth/gmail.labels",
}
