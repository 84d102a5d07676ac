package models

import "time"

// Photo angles accepted for progress photos.
const (
	PhotoFront = "front"
	PhotoSide  = "side"
	PhotoBack  = "back"
)

// BodyMeasurement is one point of a user's body measurement time series.
type BodyMeasurement struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"index:idx_measurements_user_date;not null"`
	Date      string    `json:"date" gorm:"type:varchar(10);index:idx_measurements_user_date;not null"`
	Weight    *float64  `json:"weight"`
	BodyFat   *float64  `json:"bodyFat"`
	Chest     *float64  `json:"chest"`
	Waist     *float64  `json:"waist"`
	Hips      *float64  `json:"hips"`
	Arms      *float64  `json:"arms"`
	Thighs    *float64  `json:"thighs"`
	Notes     *string   `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProgressPhoto references an uploaded progress picture.
type ProgressPhoto struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"index;not null"`
	Date      string    `json:"date" gorm:"type:varchar(10);not null"`
	PhotoURL  string    `json:"photoUrl" gorm:"column:photo_url;type:text;not null"`
	Type      *string   `json:"type" gorm:"type:varchar(20)"`
	CreatedAt time.Time `json:"createdAt"`
}
