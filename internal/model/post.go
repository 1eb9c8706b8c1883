package model

import "time"

// Category is one of the fixed set of post categories.
type Category string

// Post categories. The set is closed; anything else is rejected at creation.
const (
	CategoryTravel      Category = "Travel"
	CategoryFitness     Category = "Fitness"
	CategoryFood        Category = "Food"
	CategoryParenting   Category = "Parenting"
	CategoryBeauty      Category = "Beauty"
	CategoryPhotography Category = "Photography"
	CategoryArt         Category = "Art"
	CategoryWriting     Category = "Writing"
	CategoryMusic       Category = "Music"
	CategoryBook        Category = "Book"
)

// Categories lists every valid post category.
var Categories = []Category{
	CategoryTravel,
	CategoryFitness,
	CategoryFood,
	CategoryParenting,
	CategoryBeauty,
	CategoryPhotography,
	CategoryArt,
	CategoryWriting,
	CategoryMusic,
	CategoryBook,
}

// ValidCategory reports whether c is one of the fixed categories.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Post represents a blog post.
type Post struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Category    Category  `json:"category" gorm:"size:50;not null;index"`
	Description string    `json:"description" gorm:"type:text;not null"` // Rich HTML from the editor
	Thumbnail   string    `json:"thumbnail" gorm:"size:512;not null"`    // Filename under the upload dir, or an absolute URL
	CreatorID   uint      `json:"creator" gorm:"not null;index"`         // Immutable after creation
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
