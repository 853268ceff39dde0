package store

import "time"

// GORM models used for persistence. Booking period columns are start_date and
// end_date because "end" is a reserved word in SQL.

type UserModel struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"not null"`
	Email string `gorm:"uniqueIndex;not null"`
}

func (UserModel) TableName() string { return "users" }

type ItemModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	Available   bool      `gorm:"not null"`
	OwnerID     int64     `gorm:"not null;index"`
	Owner       UserModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	RequestID   *int64    `gorm:"index"`
}

func (ItemModel) TableName() string { return "items" }

type BookingModel struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	Start    time.Time `gorm:"column:start_date;not null;index"`
	End      time.Time `gorm:"column:end_date;not null"`
	ItemID   int64     `gorm:"not null;index"`
	Item     ItemModel `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	BookerID int64     `gorm:"not null;index"`
	Booker   UserModel `gorm:"foreignKey:BookerID;constraint:OnDelete:CASCADE"`
	Status   string    `gorm:"not null;index"`
}

func (BookingModel) TableName() string { return "bookings" }

type CommentModel struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	Text     string    `gorm:"not null"`
	ItemID   int64     `gorm:"not null;index"`
	Item     ItemModel `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	AuthorID int64     `gorm:"not null"`
	Author   UserModel `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Created  time.Time `gorm:"not null"`
}

func (CommentModel) TableName() string { return "comments" }

type RequestModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Description string    `gorm:"not null"`
	RequestorID int64     `gorm:"not null;index"`
	Requestor   UserModel `gorm:"foreignKey:RequestorID;constraint:OnDelete:CASCADE"`
	Created     time.Time `gorm:"not null;index"`
}

func (RequestModel) TableName() string { return "requests" }
