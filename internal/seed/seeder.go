package seed

import (
	_ "embed"
	"fmt"
	"log"

	"reelist/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed presets.yaml
var presetsYAML []byte

// Preset describes one named seeding profile.
type Preset struct {
	Users         int  `yaml:"users"`
	ListsPerUser  int  `yaml:"lists_per_user"`
	MoviesPerList int  `yaml:"movies_per_list"`
	SkipBcrypt    bool `yaml:"skip_bcrypt"`
}

type presetFile struct {
	Presets map[string]Preset `yaml:"presets"`
}

// LoadPresets parses the embedded preset definitions.
func LoadPresets() (map[string]Preset, error) {
	var file presetFile
	if err := yaml.Unmarshal(presetsYAML, &file); err != nil {
		return nil, fmt.Errorf("parse seed presets: %w", err)
	}
	return file.Presets, nil
}

// Seeder populates the database with generated users, lists and movies.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll removes all seeded rows. Children first so foreign keys hold.
func (s *Seeder) ClearAll() error {
	for _, stmt := range []string{
		"DELETE FROM movie",
		"DELETE FROM list",
		"DELETE FROM users",
	} {
		if err := s.db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// Run seeds the given number of users, each with lists and movies.
func (s *Seeder) Run(users, listsPerUser, moviesPerList int, opts SeedOptions) error {
	factory := NewFactory(s.db, opts)

	for i := 0; i < users; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}

		for j := 0; j < listsPerUser; j++ {
			list, err := factory.CreateList(user)
			if err != nil {
				return fmt.Errorf("seed list: %w", err)
			}

			for k := 0; k < moviesPerList; k++ {
				if _, err := factory.CreateMovie(user, list); err != nil {
					return fmt.Errorf("seed movie: %w", err)
				}
			}
		}
	}

	log.Printf("Seeded %d users with %d lists of %d movies each", users, listsPerUser, moviesPerList)
	return nil
}

// ApplyPreset runs a named preset from presets.yaml.
func (s *Seeder) ApplyPreset(name string) error {
	presets, err := LoadPresets()
	if err != nil {
		return err
	}

	preset, ok := presets[name]
	if !ok {
		return fmt.Errorf("unknown seed preset %q", name)
	}

	return s.Run(preset.Users, preset.ListsPerUser, preset.MoviesPerList, SeedOptions{
		SkipBcrypt: preset.SkipBcrypt,
	})
}

// Counts reports how many rows each seeded table holds.
func (s *Seeder) Counts() (users, lists, movies int64, err error) {
	if err = s.db.Model(&models.User{}).Count(&users).Error; err != nil {
		return
	}
	if err = s.db.Model(&models.List{}).Count(&lists).Error; err != nil {
		return
	}
	err = s.db.Model(&models.Movie{}).Count(&movies).Error
	return
}
