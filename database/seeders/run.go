// Package seeders holds the database seed registry. A seed file
// registers itself in an init(); the seed command runs everything in
// registration order and stops on the first failure.
package seeders

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// SeederFunc inserts one group of seed rows.
type SeederFunc func(db *gorm.DB) error

type entry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	seeders []entry
)

// Register adds a named seeder. Call from init().
func Register(name string, fn SeederFunc) {
	mu.Lock()
	seeders = append(seeders, entry{name: name, fn: fn})
	mu.Unlock()
}

// RunAll runs every registered seeder in order, aborting on the first
// failure so partial data is easy to spot.
func RunAll(db *gorm.DB) error {
	mu.Lock()
	current := append([]entry(nil), seeders...)
	mu.Unlock()

	if len(current) == 0 {
		fmt.Println("  (no seeders registered)")
		return nil
	}

	for _, e := range current {
		fmt.Printf("  Seeding %s ... ", e.name)
		if err := e.fn(db); err != nil {
			fmt.Println("FAILED")
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
		fmt.Println("ok")
	}
	return nil
}
