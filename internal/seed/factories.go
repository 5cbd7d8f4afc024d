package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"cafehub/internal/models"
	"cafehub/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPassword is the password of every fake user.
const DefaultPassword = "password123"

// Factory builds fake users, cafes and likes and persists them.
type Factory struct {
	db    *gorm.DB
	auth  *service.AuthService
	faker *gofakeit.Faker
	rng   *rand.Rand
}

// NewFactory creates a Factory. A fixed seed gives reproducible data.
func NewFactory(db *gorm.DB, seed int64) *Factory {
	return &Factory{
		db:    db,
		auth:  service.NewAuthService(nil, bcrypt.DefaultCost),
		faker: gofakeit.New(seed),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Users registers n users sharing DefaultPassword.
func (f *Factory) Users(n int) ([]models.User, error) {
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		first := f.faker.FirstName()
		last := f.faker.LastName()
		username := strings.ToLower(fmt.Sprintf("%s%s%d", first, last[:1], f.faker.Number(10, 9999)))
		if len(username) > 30 {
			username = username[:30]
		}
		user, err := f.auth.BuildCandidate(service.RegisterInput{
			Username:    username,
			Email:       f.faker.Email(),
			FirstName:   first,
			LastName:    last,
			Description: f.faker.Sentence(12),
			Password:    DefaultPassword,
		})
		if err != nil {
			return nil, fmt.Errorf("build user %s: %w", username, err)
		}
		users = append(users, *user)
	}

	if err := f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&users).Error; err != nil {
		return nil, fmt.Errorf("create users: %w", err)
	}
	return users, nil
}

// Cafes creates n cafes spread over the existing cities.
func (f *Factory) Cafes(n int) ([]models.Cafe, error) {
	var cities []models.City
	if err := f.db.Find(&cities).Error; err != nil {
		return nil, fmt.Errorf("load cities: %w", err)
	}
	if len(cities) == 0 {
		return nil, fmt.Errorf("no cities to attach cafes to, seed cities first")
	}

	cafes := make([]models.Cafe, 0, n)
	for i := 0; i < n; i++ {
		city := cities[f.rng.Intn(len(cities))]
		name := fmt.Sprintf("%s %s", f.faker.LastName(), f.faker.RandomString([]string{"Roasters", "Coffee", "Espresso Bar", "Cafe", "Beans"}))
		cafes = append(cafes, models.Cafe{
			Name:        name,
			Description: f.faker.Paragraph(1, 3, 12, " "),
			URL:         f.faker.URL(),
			Address:     fmt.Sprintf("%s %s", f.faker.StreetNumber(), f.faker.StreetName()),
			CityCode:    city.Code,
		})
	}

	if err := f.db.Omit(clause.Associations).Create(&cafes).Error; err != nil {
		return nil, fmt.Errorf("create cafes: %w", err)
	}
	return cafes, nil
}

// Likes has every user like each cafe with the given probability.
func (f *Factory) Likes(users []models.User, cafes []models.Cafe, probability float64) (int, error) {
	var likes []models.Like
	for _, u := range users {
		if u.ID == 0 {
			continue
		}
		for _, c := range cafes {
			if f.rng.Float64() < probability {
				likes = append(likes, models.Like{UserID: u.ID, CafeID: c.ID})
			}
		}
	}
	if len(likes) == 0 {
		return 0, nil
	}

	result := f.db.Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		CreateInBatches(&likes, 200)
	if result.Error != nil {
		return 0, fmt.Errorf("create likes: %w", result.Error)
	}
	log.Printf("seeded %d likes", result.RowsAffected)
	return int(result.RowsAffected), nil
}

// ClearAll removes likes, cafes and users. Cities stay.
func (f *Factory) ClearAll() error {
	return f.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{&models.Like{}, &models.Cafe{}, &models.User{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
