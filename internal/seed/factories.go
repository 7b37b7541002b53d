// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"time"

	"reelist/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions controls factory behavior.
type SeedOptions struct {
	// DryRun logs what would be created without writing to the database.
	DryRun bool
	// SkipBcrypt stores plaintext passwords to speed up large dev seeds.
	SkipBcrypt bool
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:     db,
		opts:   opts,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		nextID: 1000,
	}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Name:  gofakeit.Name(),
		Email: fmt.Sprintf("%d.%s", gofakeit.Number(100, 999), gofakeit.Email()),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Name, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateList constructs and persists a sample `models.List` for the given user.
func (f *Factory) CreateList(user *models.User, overrides ...func(*models.List)) (*models.List, error) {
	names := []string{"Favorites", "Watch Later", "Guilty Pleasures", "Date Night", "Rainy Sunday", "All-Timers"}
	list := &models.List{
		Name:     names[f.rng.Intn(len(names))] + " " + strconv.Itoa(gofakeit.Number(1, 99)),
		AuthorID: user.ID,
	}

	for _, override := range overrides {
		override(list)
	}

	if f.opts.DryRun {
		f.nextID++
		list.ID = f.nextID
		log.Printf("[dry-run] CreateList: %q for user %d", list.Name, user.ID)
		return list, nil
	}

	if err := f.db.Create(list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// CreateMovie constructs and persists a sample `models.Movie` in the given list.
// Roughly two thirds of generated movies carry a rating and review.
func (f *Factory) CreateMovie(user *models.User, list *models.List, overrides ...func(*models.Movie)) (*models.Movie, error) {
	info := gofakeit.Movie()
	movie := &models.Movie{
		Title:       info.Name,
		Year:        strconv.Itoa(gofakeit.Number(1970, 2025)),
		Description: gofakeit.Paragraph(1, 2, 8, " "),
		ImgURL:      fmt.Sprintf("https://picsum.photos/seed/%s/500/750", gofakeit.UUID()),
		Category:    models.Categories[f.rng.Intn(len(models.Categories))],
		ListID:      list.ID,
		AuthorID:    user.ID,
	}

	if f.rng.Intn(3) != 0 {
		movie.Rating = fmt.Sprintf("%.1f", 1+f.rng.Float64()*9)
		movie.Review = gofakeit.Sentence(12)
	}

	for _, override := range overrides {
		override(movie)
	}

	if f.opts.DryRun {
		f.nextID++
		movie.ID = f.nextID
		log.Printf("[dry-run] CreateMovie: %q (%s) in list %d", movie.Title, movie.Category, list.ID)
		return movie, nil
	}

	if err := f.db.Create(movie).Error; err != nil {
		return nil, err
	}
	return movie, nil
}
