package main

import (
	"log"

	"github.com/ecotrackhq/ecotrack/internal/server"

	// Register migrations and seeders via their init() funcs.
	_ "github.com/ecotrackhq/ecotrack/database/migrations"
	_ "github.com/ecotrackhq/ecotrack/database/seeders"
)

func main() {
	if err := server.Start(); err != nil {
		log.Fatal(err)
	}
}
