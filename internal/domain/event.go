package domain

import "time"

type Event struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	EntryFees int64     `json:"entryFees"`
	Prize     int64     `json:"prize"`
	SeatsLeft int       `json:"seatsLeft"`
	GameName  string    `json:"gameName,omitempty"`
	IsOpen    bool      `json:"isopen"`
	Expired   bool      `json:"expired"`
	Image     string    `json:"image,omitempty"`
	EventType string    `json:"eventType,omitempty"`
	HostID    int64     `json:"hostId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Populated only on the public listing.
	Participants []Participant `json:"participants,omitempty"`
}

// EventCreateReq uses pointers for the required numeric fields so that an
// absent field is distinguishable from a legitimate zero.
type EventCreateReq struct {
	Name      string     `json:"name"`
	Date      *time.Time `json:"date"`
	EntryFees *int64     `json:"entryFees"`
	Prize     *int64     `json:"prize"`
	SeatsLeft *int       `json:"seatsLeft"`
	GameName  string     `json:"gameName"`
	IsOpen    bool       `json:"isopen"`
	Expired   bool       `json:"expired"`
	Image     string     `json:"image"`
	EventType string     `json:"eventType"`
}

func (r *EventCreateReq) Validate() []string {
	var missing []string
	if r.Name == "" {
		missing = append(missing, "name")
	}
	if r.Date == nil || r.Date.IsZero() {
		missing = append(missing, "date")
	}
	if r.EntryFees == nil {
		missing = append(missing, "entryFees")
	}
	if r.Prize == nil {
		missing = append(missing, "prize")
	}
	if r.SeatsLeft == nil {
		missing = append(missing, "seatsLeft")
	}
	return missing
}

// EventPatch carries a partial event update. Nil fields are left untouched.
type EventPatch struct {
	Name      *string    `json:"name"`
	Date      *time.Time `json:"date"`
	EntryFees *int64     `json:"entryFees"`
	Prize     *int64     `json:"prize"`
	SeatsLeft *int       `json:"seatsLeft"`
	GameName  *string    `json:"gameName"`
	IsOpen    *bool      `json:"isopen"`
	Expired   *bool      `json:"expired"`
	Image     *string    `json:"image"`
	EventType *string    `json:"eventType"`
}

func (p EventPatch) IsEmpty() bool {
	return p.Name == nil && p.Date == nil && p.EntryFees == nil && p.Prize == nil &&
		p.SeatsLeft == nil && p.GameName == nil && p.IsOpen == nil && p.Expired == nil &&
		p.Image == nil && p.EventType == nil
}
