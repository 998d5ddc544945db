package types

import "time"

// User is the account of the signed-in user as kept by the backend.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone"`
	AvatarURL string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}

type UserUpdate struct {
	FirstName string `form:"first_name" validate:"required,max=60" json:"firstName"`
	LastName  string `form:"last_name" validate:"required,max=60" json:"lastName"`
	Phone     string `form:"phone" validate:"omitempty,e164" json:"phone"`
}
