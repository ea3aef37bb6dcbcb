package model

import "time"

// Meetup is a creator-defined event proposal. Immutable after creation; it
// only accumulates time slots and responses.
type Meetup struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	Title         string    `json:"title" bson:"title" validate:"required,min=2,max=120"`
	Description   string    `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=2000"`
	Address       string    `json:"address,omitempty" bson:"address,omitempty" validate:"omitempty,max=200"`
	CreatorEmail  string    `json:"creator_email" bson:"creator_email" validate:"required,email"`
	UseTimeRanges bool      `json:"use_time_ranges" bson:"use_time_ranges"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// TimeSlot is one discrete bookable interval belonging to a meetup.
// Half-open by construction: StartTime is always strictly before EndTime.
type TimeSlot struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	MeetupID  string    `json:"meetup_id" bson:"meetup_id"`
	StartTime time.Time `json:"start_time" bson:"start_time"`
	EndTime   time.Time `json:"end_time" bson:"end_time"`
}

// MeetupCreate is the creation payload. Dates are calendar days; the hour
// markers are "HH:MM" strings and only consulted when UseTimeRanges is set.
type MeetupCreate struct {
	Title         string `json:"title" validate:"required,min=2,max=120"`
	Description   string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Address       string `json:"address,omitempty" validate:"omitempty,max=200"`
	CreatorEmail  string `json:"creator_email" validate:"required,email"`
	StartDate     string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate       string `json:"end_date" validate:"required,datetime=2006-01-02"`
	UseTimeRanges bool   `json:"use_time_ranges"`
	StartTime     string `json:"start_time,omitempty" validate:"omitempty,hour_marker"`
	EndTime       string `json:"end_time,omitempty" validate:"omitempty,hour_marker"`
}

// ShareRequest asks for an invitation email pointing at a meetup page.
type ShareRequest struct {
	MeetupID string `json:"meetup_id" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// MeetupDetail is the read shape for a meetup page: the meetup with its
// slots and every submitted response.
type MeetupDetail struct {
	Meetup    Meetup     `json:"meetup"`
	TimeSlots []TimeSlot `json:"time_slots"`
	Responses []Response `json:"responses"`
}

// MeetupCreated is returned from creation. EmailSent reports the best-effort
// confirmation email; a false value never indicates a failed creation.
type MeetupCreated struct {
	Meetup    Meetup     `json:"meetup"`
	TimeSlots []TimeSlot `json:"time_slots"`
	ShareURL  string     `json:"share_url"`
	EmailSent bool       `json:"email_sent"`
}
