// Package model contains the GORM persistence models mirroring the database schema.
package model

import "time"

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"type:varchar(255);unique;not null"`
	Name         string `gorm:"type:varchar(100);not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         string `gorm:"type:varchar(20);not null;default:customer;index"`
	Phone        string `gorm:"type:varchar(20)"`
	Address      string `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Books  []BookModel  `gorm:"foreignKey:SellerID"`
	Orders []OrderModel `gorm:"foreignKey:CustomerID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
