package models

// PetTypeAll marks products that suit every pet type.
const PetTypeAll = "All"

// Product represents a product in the store catalog.
type Product struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required,max=200"`
	Price       float64  `json:"price" validate:"gte=0"`
	Image       string   `json:"image,omitempty"`
	Category    string   `json:"category"`
	Brand       string   `json:"brand"`
	Tags        []string `json:"tags"`
	PetType     string   `json:"petType"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Stock       *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Description string   `json:"description,omitempty"`
}

// RatingOrZero returns the rating, treating a missing one as 0.
func (p Product) RatingOrZero() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// HasTag reports whether the product carries tag.
func (p Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
