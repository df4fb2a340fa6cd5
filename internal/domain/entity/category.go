package entity

import "time"

// Category groups books for browsing. Books reference a category but never
// require one; deleting a category detaches its books instead of cascading.
type Category struct {
	ID          int64     // Unique identifier for the category.
	Name        string    // Unique display name.
	Description string    // Optional free-form description.
	CreatedAt   time.Time // Timestamp of when this category was created.
}
