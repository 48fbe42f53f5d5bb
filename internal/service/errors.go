package service

import "errors"

var (
	ErrInviteNotFound         = errors.New("invite not found")
	ErrActionNotAvailable     = errors.New("action not available for this invite")
	ErrGuestNameRequired      = errors.New("guest name required")
	ErrInvalidRSVPChoice      = errors.New("invalid rsvp choice")
	ErrInviteTokenTaken       = errors.New("invite token already in use")
	ErrTripEventNotFound      = errors.New("trip event not found")
	ErrTripEventTitleRequired = errors.New("trip event title required")
	ErrMailNotConfigured      = errors.New("mail sending is not configured")
)
