package database

import (
	"fmt"

	"github.com/yeremiapane/foodiego/models"
	"github.com/yeremiapane/foodiego/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	Name     string
	Email    string
	Password string
	Role     string
	Phone    string
	Address  string
}

type seedItem struct {
	Name        string
	Description string
	Price       float64
}

type seedCategory struct {
	Name        string
	Description string
	Items       []seedItem
}

var seedUsers = []seedUser{
	{"Admin User", "admin@foodiego.com", "admin123", models.RoleAdmin, "+1234567890", "123 Admin Street"},
	{"Test User", "user@foodiego.com", "user123", models.RoleUser, "+0987654321", "456 User Avenue"},
}

var seedCategories = []seedCategory{
	{"Burgers", "Delicious burgers made with fresh ingredients", []seedItem{
		{"Classic Burger", "Beef patty with lettuce, tomato, and special sauce", 8.99},
		{"Cheese Burger", "Classic burger with melted cheddar cheese", 9.99},
		{"Bacon Burger", "Loaded with crispy bacon and BBQ sauce", 11.99},
	}},
	{"Pizza", "Hand-tossed pizzas with premium toppings", []seedItem{
		{"Margherita Pizza", "Fresh mozzarella, tomato sauce, and basil", 12.99},
		{"Pepperoni Pizza", "Classic pepperoni with mozzarella cheese", 14.99},
		{"Veggie Supreme", "Loaded with fresh vegetables", 13.99},
	}},
	{"Drinks", "Refreshing beverages", []seedItem{
		{"Coca Cola", "Classic refreshing cola", 2.99},
		{"Fresh Lemonade", "Homemade lemonade with real lemons", 3.99},
	}},
	{"Desserts", "Sweet treats to end your meal", []seedItem{
		{"Chocolate Cake", "Rich chocolate cake with fudge frosting", 5.99},
		{"Ice Cream Sundae", "Vanilla ice cream with toppings", 4.99},
	}},
}

// Seed wipes every table and inserts the demo data set.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		// Hapus data lama dari tabel anak ke induk
		for _, model := range []interface{}{
			&models.OrderItem{},
			&models.Order{},
			&models.MenuItem{},
			&models.Category{},
			&models.User{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		utils.InfoLogger.Println("Cleared existing data")

		for _, su := range seedUsers {
			hashed, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", su.Email, err)
			}
			phone, address := su.Phone, su.Address
			user := models.User{
				Name:     su.Name,
				Email:    su.Email,
				Password: string(hashed),
				Role:     su.Role,
				Phone:    &phone,
				Address:  &address,
			}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("create user %s: %w", su.Email, err)
			}
			utils.InfoLogger.Printf("Created user: %s", user.Email)
		}

		for _, sc := range seedCategories {
			description := sc.Description
			category := models.Category{Name: sc.Name, Description: &description}
			if err := tx.Create(&category).Error; err != nil {
				return fmt.Errorf("create category %s: %w", sc.Name, err)
			}

			items := make([]models.MenuItem, 0, len(sc.Items))
			for _, si := range sc.Items {
				desc := si.Description
				items = append(items, models.MenuItem{
					Name:        si.Name,
					Description: &desc,
					Price:       si.Price,
					Available:   true,
					CategoryID:  category.ID,
				})
			}
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("create menu items for %s: %w", sc.Name, err)
			}
		}
		utils.InfoLogger.Printf("Seeded %d categories", len(seedCategories))
		return nil
	})
}
