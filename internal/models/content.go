package models

// PetCategory is a pet type shown in the shop's pet carousel.
type PetCategory struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// Category is a product category.
type Category struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

// TeamMember is shown on the about page.
type TeamMember struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Img         string `json:"img"`
	Description string `json:"description"`
	Instagram   string `json:"instagram,omitempty"`
	Facebook    string `json:"facebook,omitempty"`
	Whatsapp    string `json:"whatsapp,omitempty"`
	Order       int    `json:"order"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// Testimonial is a customer quote.
type Testimonial struct {
	ID        string  `json:"_id"`
	Name      string  `json:"name"`
	Text      string  `json:"text"`
	Rating    float64 `json:"rating"`
	Avatar    string  `json:"avatar"`
	Order     int     `json:"order"`
	CreatedAt string  `json:"createdAt,omitempty"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
}

// BlogPost is an article from the blog section.
type BlogPost struct {
	ID            string   `json:"_id"`
	Title         string   `json:"title"`
	Excerpt       string   `json:"excerpt,omitempty"`
	Content       string   `json:"content,omitempty"`
	FeaturedImage string   `json:"featuredImage"`
	Author        string   `json:"author,omitempty"`
	Date          string   `json:"date"`
	Category      string   `json:"category,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Status        string   `json:"status,omitempty"`
}

// Section wraps one independently loaded part of a page. Error is set instead
// of failing the whole page.
type Section[T any] struct {
	Items []T    `json:"items"`
	Error string `json:"error,omitempty"`
}

// HomePage bundles the sections of the landing page.
type HomePage struct {
	Featured      Section[Product]     `json:"featured"`
	BestSelling   Section[Product]     `json:"bestSelling"`
	PetCategories Section[PetCategory] `json:"petCategories"`
	Testimonials  Section[Testimonial] `json:"testimonials"`
	Blog          Section[BlogPost]    `json:"blog"`
}
