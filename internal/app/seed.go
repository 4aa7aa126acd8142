package app

import (
	"fmt"

	"petstore/internal/models"
	"petstore/internal/repositories"
)

func rating(r float64) *float64 { return &r }

// demoProducts is the catalog served when no remote API is configured.
func demoProducts() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Premium Dog Food", Price: 19.99, Image: "/products/premium-dog-food.jpg", Category: "Food", Brand: "Natural food", Tags: []string{"Dog food", "Natural"}, PetType: "Dog", Rating: rating(4.5)},
		{ID: "2", Name: "Premium Cat Food", Price: 18.99, Image: "/products/premium-cat-food.jpg", Category: "Food", Brand: "Pelt-care", Tags: []string{"Cat food", "Natural"}, PetType: "Cat", Rating: rating(4.3)},
		{ID: "3", Name: "Premium Dog Food", Price: 19.99, Image: "/products/premium-dog-food.jpg", Category: "Food", Brand: "Dogs friend", Tags: []string{"Dog food", "Premium"}, PetType: "Dog", Rating: rating(4.7)},
		{ID: "4", Name: "Cat Food Deluxe", Price: 24.99, Image: "/products/cat-food-deluxe.jpg", Category: "Food", Brand: "Pet food", Tags: []string{"Cat food", "Premium"}, PetType: "Cat", Rating: rating(4.6)},
		{ID: "5", Name: "Parrot Seed Mix", Price: 12.99, Image: "/products/parrot-seed-mix.jpg", Category: "Food", Brand: "Favorite pet", Tags: []string{"Parrot", "Natural"}, PetType: "Parrot", Rating: rating(4.2)},
		{ID: "6", Name: "Cat Bowl", Price: 19.99, Image: "/products/cat-bowl.jpg", Category: "Bowls", Brand: "Green line", Tags: []string{"Cat", "Bowl"}, PetType: "Cat", Rating: rating(4.4)},
		{ID: "7", Name: "Cat Bowl Premium", Price: 29.99, Image: "/products/cat-bowl-2.jpg", Category: "Bowls", Brand: "Pelt-care", Tags: []string{"Cat", "Premium"}, PetType: "Cat", Rating: rating(4.8)},
		{ID: "8", Name: "Dog Bowl", Price: 14.99, Image: "/products/dog-bowl.jpg", Category: "Bowls", Brand: "Dogs friend", Tags: []string{"Dog", "Bowl"}, PetType: "Dog", Rating: rating(4.3)},
		{ID: "9", Name: "Dog Bowl Deluxe", Price: 24.99, Image: "/products/dog-bowl.jpg", Category: "Bowls", Brand: "Natural food", Tags: []string{"Dog", "Premium"}, PetType: "Dog", Rating: rating(4.7)},
		{ID: "10", Name: "Dog Leash", Price: 9.99, Image: "/products/dog-leash.jpg", Category: "Toys", Brand: "Dogs friend", Tags: []string{"Dog", "Leash"}, PetType: "Dog", Rating: rating(4.1)},
		{ID: "11", Name: "Premium Dog Toy", Price: 20.99, Image: "/products/dog-toy.jpg", Category: "Toys", Brand: "Favorite pet", Tags: []string{"Dog", "Toy"}, PetType: "Dog", Rating: rating(4.5)},
		{ID: "12", Name: "Cat Toy Set", Price: 15.99, Image: "/products/cat-toy.jpg", Category: "Toys", Brand: "Pelt-care", Tags: []string{"Cat", "Toy"}, PetType: "Cat", Rating: rating(4.2)},
		{ID: "13", Name: "Hamster Wheel", Price: 12.99, Image: "/products/hamster-wheel.jpg", Category: "Toys", Brand: "Green line", Tags: []string{"Hamster", "Wheel"}, PetType: "Hamster", Rating: rating(4.0)},
		{ID: "14", Name: "Cat Bed", Price: 49.99, Image: "/products/cat-bed.jpg", Category: "Furniture", Brand: "Pelt-care", Tags: []string{"Cat", "Bed"}, PetType: "Cat", Rating: rating(4.6)},
		{ID: "15", Name: "Dog Bed", Price: 49.99, Image: "/products/dog-bed.jpg", Category: "Furniture", Brand: "Dogs friend", Tags: []string{"Dog", "Bed"}, PetType: "Dog", Rating: rating(4.5)},
		{ID: "16", Name: "Pet Carrier", Price: 29.99, Image: "/products/pet-carrier.jpg", Category: "Furniture", Brand: "Natural food", Tags: []string{"Carrier", "Travel"}, PetType: "All", Rating: rating(4.3)},
		{ID: "17", Name: "Cat Tree", Price: 89.99, Image: "/products/cat-tree.jpg", Category: "Furniture", Brand: "Favorite pet", Tags: []string{"Cat", "Tree"}, PetType: "Cat", Rating: rating(4.8)},
		{ID: "18", Name: "Dog Sweater", Price: 19.99, Image: "/products/dog-sweater.jpg", Category: "Clothing", Brand: "Dogs friend", Tags: []string{"Dog", "Sweater"}, PetType: "Dog", Rating: rating(4.2)},
		{ID: "19", Name: "Cat Collar", Price: 7.99, Image: "/products/cat-collar.jpg", Category: "Clothing", Brand: "Pelt-care", Tags: []string{"Cat", "Collar"}, PetType: "Cat", Rating: rating(4.0)},
		{ID: "20", Name: "Dog Coat", Price: 34.99, Image: "/products/dog-coat.jpg", Category: "Clothing", Brand: "Natural food", Tags: []string{"Dog", "Coat"}, PetType: "Dog", Rating: rating(4.4)},
		{ID: "21", Name: "Rabbit Food", Price: 16.99, Image: "/products/rabbit-food.jpg", Category: "Food", Brand: "Green line", Tags: []string{"Rabbit", "Natural"}, PetType: "Rabbit", Rating: rating(4.1)},
		{ID: "22", Name: "Fish Food", Price: 8.99, Image: "/products/fish-food.jpg", Category: "Food", Brand: "Pet food", Tags: []string{"Fish", "Natural"}, PetType: "Fish", Rating: rating(4.0)},
		{ID: "23", Name: "Hamster Bed", Price: 22.99, Image: "/products/hamster-bed.jpg", Category: "Furniture", Brand: "Green line", Tags: []string{"Hamster", "Bed"}, PetType: "Hamster", Rating: rating(4.3)},
		{ID: "24", Name: "Dog Treats", Price: 11.99, Image: "/products/dog-treats.jpg", Category: "Food", Brand: "Dogs friend", Tags: []string{"Dog food", "Treats"}, PetType: "Dog", Rating: rating(4.5)},
	}
}

// seedDemoCatalog populates repo with the demo catalog and content.
func seedDemoCatalog(repo *repositories.MockProductRepository) error {
	products := demoProducts()
	for i := range products {
		if err := repo.Create(&products[i]); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", products[i].Name, err)
		}
	}
	repo.SetFeatured("1", "2", "3")
	repo.SetBestSelling("4", "5", "6", "7", "8", "9", "10", "11")
	repo.SetContent(
		[]models.PetCategory{
			{ID: "pet-dog", Name: "Dog", Image: "/pets/dog.png"},
			{ID: "pet-cat", Name: "Cat", Image: "/pets/cat.png"},
			{ID: "pet-parrot", Name: "Parrot", Image: "/pets/parrot.png"},
			{ID: "pet-hamster", Name: "Hamster", Image: "/pets/hamster.png"},
			{ID: "pet-rabbit", Name: "Rabbit", Image: "/pets/rabbit.png"},
			{ID: "pet-fish", Name: "Fish", Image: "/pets/fish.png"},
		},
		[]models.Category{
			{ID: "cat-food", Name: "Food"},
			{ID: "cat-bowls", Name: "Bowls"},
			{ID: "cat-toys", Name: "Toys"},
			{ID: "cat-furniture", Name: "Furniture"},
			{ID: "cat-clothing", Name: "Clothing"},
		},
		[]models.TeamMember{
			{ID: "team-1", Name: "Maria Lopez", Role: "Founder", Img: "/team/maria.jpg", Description: "Opened the first store with her two rescue dogs.", Order: 1},
			{ID: "team-2", Name: "Tom Becker", Role: "Head of Nutrition", Img: "/team/tom.jpg", Description: "Picks every food we stock.", Order: 2},
		},
		[]models.Testimonial{
			{ID: "review-1", Name: "Anna", Text: "My cat finally sleeps in her own bed.", Rating: 5, Avatar: "/avatars/anna.jpg", Order: 1},
			{ID: "review-2", Name: "Ravi", Text: "Fast delivery and great food.", Rating: 4.5, Avatar: "/avatars/ravi.jpg", Order: 2},
		},
		[]models.BlogPost{
			{ID: "post-1", Title: "Choosing the right food for your puppy", Excerpt: "What to look for on the label.", FeaturedImage: "/blog/puppy-food.jpg", Author: "Tom Becker", Date: "2024-03-02", Category: "Nutrition", Tags: []string{"Dog", "Food"}, Status: "published"},
			{ID: "post-2", Title: "Five toys every indoor cat needs", Excerpt: "Keep them busy while you are out.", FeaturedImage: "/blog/cat-toys.jpg", Author: "Maria Lopez", Date: "2024-04-18", Category: "Play", Tags: []string{"Cat", "Toys"}, Status: "published"},
		},
	)
	return nil
}
