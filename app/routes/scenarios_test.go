package routes_test

import (
	"path/filepath"
	"testing"

	"github.com/ecotrackhq/ecotrack/pkg/testkit"
)

// Scenario-file tests pin the exact wire shapes of the envelope for a
// few representative endpoints. Shape changes show up as JSON diffs in
// testdata instead of broken assertions scattered across tests.
func TestAPI_Scenarios(t *testing.T) {
	srv, _ := startAPI(t)
	handler := srv.Config.Handler

	for _, name := range []string{
		"health.json",
		"pickups_mine_anonymous.json",
		"register_missing_fields.json",
	} {
		testkit.Run(t, handler, filepath.Join("testdata", name))
	}
}
