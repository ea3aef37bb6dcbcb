package model

import "time"

// Response is one participant's submitted availability: the subset of a
// meetup's slot ids they can attend. Name is a display label, not an
// identity key; the same name may appear on several responses.
type Response struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty"`
	MeetupID    string    `json:"meetup_id" bson:"meetup_id"`
	Name        string    `json:"name" bson:"name" validate:"required,min=1,max=80"`
	TimeSlotIDs []string  `json:"time_slot_ids" bson:"time_slot_ids" validate:"required,min=1,dive,required"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// ResponseCreate is the submission payload for one participant.
type ResponseCreate struct {
	Name        string   `json:"name" validate:"required,min=1,max=80"`
	TimeSlotIDs []string `json:"time_slot_ids" validate:"required,min=1,dive,required"`
}
