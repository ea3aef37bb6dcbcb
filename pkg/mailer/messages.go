package mailer

import "fmt"

// CreatorMessage is the confirmation sent to a meetup's creator after a
// successful creation.
func CreatorMessage(meetupTitle, meetupURL string) (subject, body string) {
	subject = fmt.Sprintf("Your meetup %q has been created", meetupTitle)
	body = fmt.Sprintf(
		"Your meetup %q is ready.\n\n"+
			"Share this link with your participants:\n%s\n\n"+
			"What's next?\n"+
			"1. Share the link with your participants\n"+
			"2. They'll select their available times\n"+
			"3. Return to your meetup page to see everyone's availability\n",
		meetupTitle, meetupURL,
	)
	return subject, body
}

// InviteMessage is sent to a participant when the creator shares a meetup.
func InviteMessage(meetupTitle, meetupURL string) (subject, body string) {
	subject = "You've been invited to select your availability"
	body = fmt.Sprintf(
		"You've been invited to select your availability for: %s\n\n"+
			"Open the link below to select your available times:\n%s\n",
		meetupTitle, meetupURL,
	)
	return subject, body
}
