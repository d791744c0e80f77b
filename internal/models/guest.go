package models

import (
	"time"

	"github.com/google/uuid"
)

// Attendance is the tri-state RSVP status of a guest.
type Attendance string

const (
	AttendanceYes     Attendance = "yes"
	AttendanceNo      Attendance = "no"
	AttendancePending Attendance = "pending"
)

func (a Attendance) Valid() bool {
	return a == AttendanceYes || a == AttendanceNo || a == AttendancePending
}

// GiftType tags which of the Gift fields is meaningful.
type GiftType string

const (
	GiftMoney GiftType = "money"
	GiftOther GiftType = "other"
)

func (t GiftType) Valid() bool {
	return t == GiftMoney || t == GiftOther
}

// Guest is a primary invitee. Primary guests always count as adults; only
// companions can be children. GroupID nil means the implicit "ungrouped"
// bucket. A guest's side is independent of its group's side.
type Guest struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName  string      `gorm:"not null;size:255" json:"first_name"`
	LastName   string      `gorm:"size:255" json:"last_name"`
	Phone      *string     `gorm:"size:50" json:"phone"`
	Attendance Attendance  `gorm:"not null;size:10;default:'pending'" json:"attendance"`
	Side       Side        `gorm:"not null;size:10" json:"side"`
	GroupID    *uuid.UUID  `gorm:"type:uuid;index" json:"group_id"`
	Notes      *string     `gorm:"type:text" json:"notes"`
	WeddingID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"wedding_id"`
	Companions []Companion `gorm:"foreignKey:GuestID;constraint:OnDelete:CASCADE" json:"companions"`
	Gift       *Gift       `gorm:"foreignKey:GuestID;constraint:OnDelete:CASCADE" json:"gift"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Companion is a plus-one owned by exactly one guest. The whole list is
// replaced whenever a guest update carries companions.
type Companion struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName string    `gorm:"not null;size:255" json:"first_name"`
	LastName  string    `gorm:"size:255" json:"last_name"`
	IsAdult   bool      `gorm:"not null" json:"is_adult"`
	GuestID   uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	CreatedAt time.Time `json:"-"`
}

// Gift is a tagged variant: Amount is meaningful for money gifts,
// Description for everything else. At most one per guest.
type Gift struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	Type        GiftType  `gorm:"not null;size:10" json:"type"`
	Amount      *float64  `json:"amount"`
	Description *string   `gorm:"type:text" json:"description"`
	GuestID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"-"`
	CreatedAt   time.Time `json:"-"`
}

// MoneyAmount returns the monetary value of the gift, treating a missing
// amount as 0. Non-money gifts contribute nothing.
func (g *Gift) MoneyAmount() float64 {
	if g == nil || g.Type != GiftMoney || g.Amount == nil {
		return 0
	}
	return *g.Amount
}
