package model

import "time"

// CategoryModel mirrors the 'categories' table. Deleting a category sets the
// category reference on its books to NULL instead of cascading.
type CategoryModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"type:varchar(100);unique;not null"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time

	Books []BookModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}
