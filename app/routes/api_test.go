package routes_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrackhq/ecotrack/app/models"
	"github.com/ecotrackhq/ecotrack/internal/gateway"
	"github.com/ecotrackhq/ecotrack/internal/kernel"
	"github.com/ecotrackhq/ecotrack/pkg/auth"
	"github.com/ecotrackhq/ecotrack/pkg/database"
	"github.com/ecotrackhq/ecotrack/pkg/rbac"
	"github.com/ecotrackhq/ecotrack/pkg/session"
)

// startAPI boots the full HTTP stack over a clean in-memory database
// and returns the test server plus a direct database handle.
func startAPI(t *testing.T) (*httptest.Server, *testSeed) {
	t.Helper()

	db, err := database.ConnectTest()
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Material{}, &models.Product{},
		&models.PickupRequest{}, &models.Order{}, &models.OrderItem{},
	))
	for _, table := range []string{"order_items", "orders", "pickup_requests", "products", "materials", "users"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}

	srv := httptest.NewServer(kernel.NewHTTPKernel(db).Handler())
	t.Cleanup(srv.Close)

	seed := &testSeed{}

	seed.material = models.Material{Name: "PET Plastic", Code: "PET", Unit: "kg", PricePerUnit: 45}
	require.NoError(t, db.Create(&seed.material).Error)

	seed.product = models.Product{Name: "rPET Tote Bag", SKU: "TB-001", Type: "bags", Price: 850, Stock: 10}
	require.NoError(t, db.Create(&seed.product).Error)

	hash, err := auth.HashPassword("admin-password")
	require.NoError(t, err)
	seed.admin = models.User{FirstName: "Admin", LastName: "User", Email: "admin@ecotrack.app", Password: hash, Role: rbac.RoleAdmin}
	require.NoError(t, db.Create(&seed.admin).Error)

	return srv, seed
}

type testSeed struct {
	material models.Material
	product  models.Product
	admin    models.User
}

func newClient(srv *httptest.Server) *gateway.Client {
	return gateway.NewWithBase(srv.URL, session.New(&session.MemoryBackend{}))
}

func TestAPI_RegisterLoginAndGuard(t *testing.T) {
	srv, _ := startAPI(t)
	client := newClient(srv)
	guard := gateway.NewGuard(client)

	// Fresh client: signed out.
	access, err := guard.Check()
	require.NoError(t, err)
	assert.Equal(t, gateway.Unauthenticated, access)

	// Register signs the client in, but a plain user has no dashboard.
	_, err = client.Register("Sara", "Khan", "sara@example.com", "correct-horse")
	require.NoError(t, err)

	access, err = guard.Check()
	require.NoError(t, err)
	assert.Equal(t, gateway.Unauthorized, access)

	me, err := client.WhoAmI()
	require.NoError(t, err)
	assert.Equal(t, "sara@example.com", me.User.Email)
	assert.False(t, me.AdminAccess)
}

func TestAPI_AdminGuardAndProtectedRoutes(t *testing.T) {
	srv, _ := startAPI(t)

	// A plain user is turned away from admin routes with 403.
	userClient := newClient(srv)
	_, err := userClient.Register("Sara", "Khan", "sara@example.com", "correct-horse")
	require.NoError(t, err)

	_, err = userClient.Pickups("")
	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.Status)

	// The seeded admin passes the guard and the same route.
	adminClient := newClient(srv)
	_, err = adminClient.Login("admin@ecotrack.app", "admin-password")
	require.NoError(t, err)

	access, err := gateway.NewGuard(adminClient).Check()
	require.NoError(t, err)
	assert.Equal(t, gateway.Authorized, access)

	_, err = adminClient.Pickups("")
	require.NoError(t, err)
}

func TestAPI_AnonymousIsRejectedFromAuthedRoutes(t *testing.T) {
	srv, _ := startAPI(t)
	client := newClient(srv)

	_, err := client.MyPickups()

	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
}

func TestAPI_SellFlowEndToEnd(t *testing.T) {
	srv, seed := startAPI(t)

	seller := newClient(srv)
	_, err := seller.Register("Sara", "Khan", "sara@example.com", "correct-horse")
	require.NoError(t, err)

	wizard := gateway.NewSellWizard(seller)
	wizard.SetDetails(gateway.Details{
		MaterialID: seed.material.ID,
		Quantity:   12.5,
		Address:    "12 Canal Road, Lahore",
	})
	wizard.SetPayment(gateway.Payment{
		Method:        models.PayoutJazzCash,
		AccountName:   "Sara Khan",
		AccountNumber: "03001234567",
	})

	pickup, err := wizard.Submit()
	require.NoError(t, err)
	assert.Equal(t, models.PickupPending, pickup.Status)
	assert.Empty(t, pickup.AccountNumber, "seller responses never echo payout details")

	// The seller sees their request, still redacted.
	mine, err := seller.MyPickups()
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Empty(t, mine[0].AccountNumber)

	// The dashboard sees the decrypted payout details.
	admin := newClient(srv)
	_, err = admin.Login("admin@ecotrack.app", "admin-password")
	require.NoError(t, err)

	all, err := admin.Pickups(models.PickupPending)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "03001234567", all[0].AccountNumber)

	// Reject without a reason is refused; with a reason it lands.
	_, err = admin.RejectPickup(pickup.ID, "")
	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 422, apiErr.Status)

	rejected, err := admin.RejectPickup(pickup.ID, "No collection in this area yet")
	require.NoError(t, err)
	assert.Equal(t, models.PickupRejected, rejected.Status)
	assert.Equal(t, "No collection in this area yet", rejected.RejectionReason)

	// Terminal: accept after reject conflicts.
	_, err = admin.AcceptPickup(pickup.ID, "", "")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.Status)
}

func TestAPI_AcceptCarriesScheduleAndDriver(t *testing.T) {
	srv, seed := startAPI(t)

	seller := newClient(srv)
	_, err := seller.Register("Sara", "Khan", "sara@example.com", "correct-horse")
	require.NoError(t, err)

	pickup, err := seller.CreatePickup(gateway.PickupDraft{
		MaterialID:   seed.material.ID,
		Quantity:     5,
		Address:      "12 Canal Road, Lahore",
		PayoutMethod: models.PayoutCash,
	})
	require.NoError(t, err)

	admin := newClient(srv)
	_, err = admin.Login("admin@ecotrack.app", "admin-password")
	require.NoError(t, err)

	accepted, err := admin.AcceptPickup(pickup.ID, "2026-09-05 10:00", "Bilal")
	require.NoError(t, err)
	assert.Equal(t, models.PickupAccepted, accepted.Status)
	assert.Equal(t, "2026-09-05 10:00", accepted.ScheduledTime)
	assert.Equal(t, "Bilal", accepted.DriverName)

	// The seller sees the collection plan on their own request.
	mine, err := seller.MyPickups()
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "2026-09-05 10:00", mine[0].ScheduledTime)
	assert.Equal(t, "Bilal", mine[0].DriverName)
}

func TestAPI_ValidationFailuresUseTheEnvelope(t *testing.T) {
	srv, seed := startAPI(t)

	seller := newClient(srv)
	_, err := seller.Register("Sara", "Khan", "sara@example.com", "correct-horse")
	require.NoError(t, err)

	_, err = seller.CreatePickup(gateway.PickupDraft{
		MaterialID:   seed.material.ID,
		Quantity:     0,
		Address:      "x",
		PayoutMethod: "Barter",
	})

	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 422, apiErr.Status)
	assert.Contains(t, apiErr.Fields, "quantity")
	assert.Contains(t, apiErr.Fields, "payoutMethod")
}

func TestAPI_CheckoutAndFulfilment(t *testing.T) {
	srv, seed := startAPI(t)

	buyer := newClient(srv)
	_, err := buyer.Register("Sara", "Khan", "sara@example.com", "correct-horse")
	require.NoError(t, err)

	order, err := buyer.PlaceOrder(
		[]gateway.OrderLine{{ProductID: seed.product.ID, Quantity: 2}},
		"7 Mall Road, Lahore",
	)
	require.NoError(t, err)
	assert.Equal(t, 1700.0, order.Total)

	// Ordering more than the remaining stock conflicts.
	_, err = buyer.PlaceOrder(
		[]gateway.OrderLine{{ProductID: seed.product.ID, Quantity: 100}},
		"7 Mall Road, Lahore",
	)
	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.Status)

	mine, err := buyer.MyOrders()
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, models.OrderPending, mine[0].Status)
}

func TestAPI_PublicCatalogue(t *testing.T) {
	srv, _ := startAPI(t)
	client := newClient(srv)

	materials, err := client.Materials()
	require.NoError(t, err)
	require.Len(t, materials, 1)
	assert.Equal(t, "PET", materials[0].Code)

	products, err := client.Products("bags")
	require.NoError(t, err)
	require.Len(t, products, 1)

	none, err := client.Products("garden")
	require.NoError(t, err)
	assert.Empty(t, none)
}
