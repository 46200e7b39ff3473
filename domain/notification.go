package domain

// EmailMessage is a single plain-text email to one recipient.
type EmailMessage struct {
	To      string
	Subject string
	Body    string
}
