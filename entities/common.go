package entities

import "time"

// Timestamp is maintained by the owning entity rather than by gorm callbacks.
// Values are kept at millisecond precision, the coarsest of the supported stores.
type Timestamp struct {
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
