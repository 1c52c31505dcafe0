package domain

import "time"

type Role string

const (
	RoleRegular Role = "REGULAR"
	RoleAdmin   Role = "ADMIN"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleRegular, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// User is the locally provisioned account an identity claim resolves to.
// Field names on the wire match the original frontend contract, including
// the historical "intrested_game" spelling.
type User struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Role           Role       `json:"role"`
	IsOnboarded    bool       `json:"isOnboarded"`
	Age            *int       `json:"age,omitempty"`
	InstagramID    string     `json:"instagram_id,omitempty"`
	BgmiID         string     `json:"bgmi_id,omitempty"`
	Gender         string     `json:"gender,omitempty"`
	InterestedGame string     `json:"intrested_game,omitempty"`
	PhoneNumber    string     `json:"phoneNumber,omitempty"`
	Image          string     `json:"image,omitempty"`
	IsSubscribed   bool       `json:"isSubscribed"`
	SubscribedAt   *time.Time `json:"subscribedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type OnboardRequest struct {
	Name           string `json:"name"`
	Age            *int   `json:"age"`
	InstagramID    string `json:"instagram_id"`
	BgmiID         string `json:"bgmi_id"`
	Gender         string `json:"gender"`
	InterestedGame string `json:"intrested_game"`
	PhoneNumber    string `json:"phoneNumber"`
	Image          string `json:"image"`
}

// UserPatch carries a partial profile update. Nil fields are left untouched.
type UserPatch struct {
	Name           *string `json:"name"`
	Age            *int    `json:"age"`
	InstagramID    *string `json:"instagram_id"`
	BgmiID         *string `json:"bgmi_id"`
	Gender         *string `json:"gender"`
	InterestedGame *string `json:"intrested_game"`
	PhoneNumber    *string `json:"phoneNumber"`
	Image          *string `json:"image"`
}

func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Age == nil && p.InstagramID == nil && p.BgmiID == nil &&
		p.Gender == nil && p.InterestedGame == nil && p.PhoneNumber == nil && p.Image == nil
}
