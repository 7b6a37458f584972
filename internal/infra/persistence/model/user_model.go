package model

import (
	"time"
)

// UserModel is the GORM-specific struct for the 'users' table.
type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"type:varchar(150);not null;uniqueIndex"`
	Email        string `gorm:"type:varchar(254);not null;default:''"`
	FirstName    string `gorm:"type:varchar(150);not null;default:''"`
	LastName     string `gorm:"type:varchar(150);not null;default:''"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	IsStaff      bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// CustomerModel is the GORM-specific struct for the 'customers' table.
// The unique index on user_id keeps one customer per user.
type CustomerModel struct {
	ID         uint       `gorm:"primaryKey"`
	UserID     uint       `gorm:"not null;uniqueIndex"`
	User       *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Phone      string     `gorm:"type:varchar(255);not null;default:''"`
	BirthDate  *time.Time `gorm:"type:date"`
	Membership string     `gorm:"type:varchar(1);not null;default:'B'"`
}

func (CustomerModel) TableName() string {
	return "customers"
}

// AddressModel is the GORM-specific struct for the 'addresses' table.
type AddressModel struct {
	ID         uint           `gorm:"primaryKey"`
	CustomerID uint           `gorm:"not null;index"`
	Customer   *CustomerModel `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Street     string         `gorm:"type:varchar(255);not null"`
	City       string         `gorm:"type:varchar(255);not null"`
}

func (AddressModel) TableName() string {
	return "addresses"
}
