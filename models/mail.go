package models

import "time"

// MailMessage is the body of a mail document.
type MailMessage struct {
	MessageID string `firestore:"messageId" bson:"messageId" json:"messageId"`
	Subject   string `firestore:"subject" bson:"subject" json:"subject"`
	Text      string `firestore:"text" bson:"text" json:"text"`
	HTML      string `firestore:"html" bson:"html" json:"html"`
}

// MailRequest is picked up by the mail extension watching the mail collection,
// which performs the actual send.
type MailRequest struct {
	ID        string      `firestore:"-" bson:"id" json:"id"`
	From      string      `firestore:"from" bson:"from" json:"from"`
	To        []string    `firestore:"to" bson:"to" json:"to"`
	Message   MailMessage `firestore:"message" bson:"message" json:"message"`
	CreatedAt time.Time   `firestore:"created" bson:"created" json:"created"`
}

// ReminderPayload is the queued task body for a registration reminder.
type ReminderPayload struct {
	RegistrationID string `json:"registrationId"`
	FireDate       string `json:"fireDate"`
}
