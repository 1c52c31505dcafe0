package domain

import "time"

// Participant is one team registration against an event. Records are
// immutable once created.
type Participant struct {
	ID          int64     `json:"id"`
	CaptainName string    `json:"captainName"`
	TeamName    string    `json:"teamName"`
	Player1Name string    `json:"player1Name"`
	Player2Name string    `json:"player2Name"`
	Player3Name string    `json:"player3Name"`
	Player4Name string    `json:"player4Name,omitempty"`
	Player5Name string    `json:"player5Name,omitempty"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	EventID     int64     `json:"eventId"`
	UserID      int64     `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ParticipantCreateReq struct {
	CaptainName string `json:"captainName"`
	TeamName    string `json:"teamName"`
	Player1Name string `json:"player1Name"`
	Player2Name string `json:"player2Name"`
	Player3Name string `json:"player3Name"`
	Player4Name string `json:"player4Name"`
	Player5Name string `json:"player5Name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

func (r *ParticipantCreateReq) Validate() []string {
	var missing []string
	if r.CaptainName == "" {
		missing = append(missing, "captainName")
	}
	if r.TeamName == "" {
		missing = append(missing, "teamName")
	}
	if r.Player1Name == "" {
		missing = append(missing, "player1Name")
	}
	if r.Player2Name == "" {
		missing = append(missing, "player2Name")
	}
	if r.Player3Name == "" {
		missing = append(missing, "player3Name")
	}
	if r.Email == "" {
		missing = append(missing, "email")
	}
	if r.PhoneNumber == "" {
		missing = append(missing, "phoneNumber")
	}
	return missing
}
