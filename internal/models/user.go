package models

import "time"

// User is an account plus its onboarding profile. Profile fields stay nil
// until the user fills them in.
type User struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Username      string    `json:"username" gorm:"uniqueIndex;type:varchar(100);not null"`
	Email         string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password      string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	FullName      *string   `json:"fullName" gorm:"type:varchar(255)"`
	Age           *int      `json:"age"`
	Gender        *string   `json:"gender" gorm:"type:varchar(50)"`
	Height        *float64  `json:"height"`
	Weight        *float64  `json:"weight"`
	BodyFat       *float64  `json:"bodyFat"`
	ActivityLevel *string   `json:"activityLevel" gorm:"type:varchar(50)"`
	Goal          *string   `json:"goal" gorm:"type:varchar(50)"`
	Units         string    `json:"units" gorm:"type:varchar(20);not null"`
	Notifications bool      `json:"notifications"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ProfileComplete is the one rule deciding whether onboarding is done:
// full name, age and weight must all be set.
func (u *User) ProfileComplete() bool {
	return u.FullName != nil && *u.FullName != "" &&
		u.Age != nil && *u.Age > 0 &&
		u.Weight != nil && *u.Weight > 0
}

// PublicUser is the user as returned by the API.
type PublicUser struct {
	*User
	ProfileComplete bool `json:"profileComplete"`
}

// Public wraps u with its computed profile status.
func (u *User) Public() PublicUser {
	return PublicUser{User: u, ProfileComplete: u.ProfileComplete()}
}
