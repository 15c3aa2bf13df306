package models

import "time"

// Registration is one participant signed up for one hour slot. Documents are
// owned by the hosted store; the schedule only ever reads them.
type Registration struct {
	ID            string    `firestore:"-" bson:"id" json:"id"`
	Name          string    `firestore:"name" bson:"name" json:"name"`
	Email         string    `firestore:"email" bson:"email" json:"email,omitempty"`
	OwnerID       string    `firestore:"uid,omitempty" bson:"uid,omitempty" json:"ownerId,omitempty"`
	Date          time.Time `firestore:"date" bson:"date" json:"date"`
	CreatedAt     time.Time `firestore:"created" bson:"created" json:"created"`
	NeedsReminder bool      `firestore:"needsReminder" bson:"needsReminder" json:"needsReminder"`
}

// PublicRegistration is what anonymous visitors get to see of a registration.
type PublicRegistration struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	OwnerID string    `json:"ownerId,omitempty"`
	Date    time.Time `json:"date"`
}

// Public strips contact details.
func (r Registration) Public() PublicRegistration {
	return PublicRegistration{
		ID:      r.ID,
		Name:    r.Name,
		OwnerID: r.OwnerID,
		Date:    r.Date,
	}
}

// RegistrantName is one co-registrant in a sign-up batch.
type RegistrantName struct {
	FirstName string `json:"firstName" validate:"required" binding:"required"`
	LastName  string `json:"lastName" validate:"required" binding:"required"`
}

// FullName joins first and last name the way registrations are stored.
func (n RegistrantName) FullName() string {
	return n.FirstName + " " + n.LastName
}

// SignUpRequest registers one or more people for a single hour slot.
type SignUpRequest struct {
	Date    time.Time        `json:"date" validate:"required" binding:"required"`
	Names   []RegistrantName `json:"names" validate:"required,min=1,dive" binding:"required,min=1,dive"`
	Email   string           `json:"email" validate:"required,email" binding:"required,email"`
	OwnerID string           `json:"-"`
}

// QuickSignUpRequest is the single-person form rendered above the grid.
type QuickSignUpRequest struct {
	Day       string `json:"day" validate:"required,datetime=2006-01-02" binding:"required"`
	Hour      int    `json:"hour" validate:"min=0,max=23" binding:"min=0,max=23"`
	FirstName string `json:"firstName" validate:"required" binding:"required"`
	LastName  string `json:"lastName" validate:"required" binding:"required"`
	Email     string `json:"email" validate:"required,email" binding:"required,email"`
	OwnerID   string `json:"-"`
}

// DeleteRegistrationRequest carries the proof needed to remove a registration.
type DeleteRegistrationRequest struct {
	Email        string `json:"email"`
	RequesterUID string `json:"-"`
}
