package model

import "time"

// RSVPChoice is the guest's answer on the RSVP gate. The zero value means unset.
type RSVPChoice string

const (
	RSVPUnset RSVPChoice = ""
	RSVPYes   RSVPChoice = "yes"
	RSVPMaybe RSVPChoice = "maybe"
	RSVPNo    RSVPChoice = "no"
)

// RSVPChoices lists the selectable answers in display order.
var RSVPChoices = []RSVPChoice{RSVPYes, RSVPMaybe, RSVPNo}

func (c RSVPChoice) Valid() bool {
	switch c {
	case RSVPYes, RSVPMaybe, RSVPNo:
		return true
	}
	return false
}

// Attending reports whether the choice unlocks the trip hub.
func (c RSVPChoice) Attending() bool {
	return c == RSVPYes || c == RSVPMaybe
}

// Invite is one guest's invitation, keyed by an opaque capability token.
type Invite struct {
	Token         string     `gorm:"type:varchar(128);primaryKey" json:"token"`
	GuestName     string     `gorm:"type:varchar(256);not null;default:''" json:"guest_name"`
	GateNameDone  bool       `gorm:"not null;default:false" json:"gate_name_done"`
	GateVideoDone bool       `gorm:"not null;default:false" json:"gate_video_done"`
	RSVPDone      bool       `gorm:"column:rsvp_done;not null;default:false" json:"rsvp_done"`
	RSVPChoice    RSVPChoice `gorm:"column:rsvp_choice;type:varchar(16);not null;default:''" json:"rsvp_choice"`
	VideoURL      string     `gorm:"type:varchar(1024);not null;default:''" json:"video_url"`
	FlightOrigin  string     `gorm:"type:varchar(128);not null;default:''" json:"flight_origin"`
	HomeCity      string     `gorm:"type:varchar(128);not null;default:''" json:"home_city"`
	NeedsPassport *bool      `json:"needs_passport,omitempty"`
	SurveyDone    bool       `gorm:"not null;default:false" json:"survey_done"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Invite) TableName() string { return "invites" }
