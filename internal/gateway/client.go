// Package gateway is the typed client for the EcoTrack API. The CLI
// and other in-house consumers go through it instead of hand-rolling
// requests.
//
// Every call hits one fixed base URL, attaches the bearer token from
// the session store when one exists, and decodes the standard response
// envelope. A response with success=false becomes an *APIError carrying
// the server's message and any field errors; a failure to reach the
// server at all is returned as a plain wrapped error, so callers can
// tell "the API said no" apart from "the API is down".
package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/ecotrackhq/ecotrack/app/models"
	"github.com/ecotrackhq/ecotrack/config"
	apphttp "github.com/ecotrackhq/ecotrack/pkg/http"
	"github.com/ecotrackhq/ecotrack/pkg/session"
)

// APIError is a response the server produced on purpose: a 4xx or 5xx
// with the standard envelope. Fields holds per-field validation
// messages when the server returned any.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

type envelope struct {
	Success bool              `json:"success"`
	Count   *int              `json:"count,omitempty"`
	Message string            `json:"message,omitempty"`
	Data    json.RawMessage   `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Client talks to one EcoTrack API deployment.
type Client struct {
	base     string
	sessions *session.Store
	timeout  time.Duration
}

// New returns a client for the configured API_BASE_URL using the given
// session store for credentials.
func New(sessions *session.Store) *Client {
	return &Client{
		base:     config.APIBaseURL(),
		sessions: sessions,
		timeout:  10 * time.Second,
	}
}

// NewWithBase overrides the base URL. Used by tests and by commands
// that target a non-default deployment.
func NewWithBase(base string, sessions *session.Store) *Client {
	c := New(sessions)
	c.base = strings.TrimRight(base, "/")
	return c
}

func (c *Client) url(path string) string {
	return c.base + path
}

// call sends the request and decodes the envelope into dest (when dest
// is non-nil). The bearer token is attached when the session store has
// one. Requests are never retried: every endpoint the client talks to
// either mutates state or is cheap enough to re-issue by hand.
func (c *Client) call(req *apphttp.Request, dest any) error {
	if token := c.sessions.Token(); token != "" {
		req.Bearer(token)
	}

	resp, err := req.Timeout(c.timeout).Retry(1, 0).Send()
	if err != nil {
		return fmt.Errorf("gateway: %w", err)
	}

	var env envelope
	if err := resp.JSON(&env); err != nil {
		// Not the standard envelope. Proxies and crashed handlers can
		// produce this; surface it as a server-side failure.
		return &APIError{Status: resp.StatusCode, Message: "unexpected response from server"}
	}

	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg, Fields: env.Errors}
	}

	if dest != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, dest); err != nil {
			return fmt.Errorf("gateway: decode data: %w", err)
		}
	}
	return nil
}

// ------------------- Auth -------------------

// AuthResult mirrors the login and register response payload.
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Me mirrors the /api/auth/me payload. AdminAccess is the server's
// verdict on whether this account may enter the dashboard.
type Me struct {
	User        models.User `json:"user"`
	AdminAccess bool        `json:"adminAccess"`
}

// Register creates an account and signs the client in.
func (c *Client) Register(firstName, lastName, email, password string) (AuthResult, error) {
	var out AuthResult
	err := c.call(apphttp.Post(c.url("/api/auth/register")).Body(map[string]any{
		"firstName":            firstName,
		"lastName":             lastName,
		"email":                email,
		"password":             password,
		"passwordConfirmation": password,
	}), &out)
	if err != nil {
		return AuthResult{}, err
	}
	return out, c.saveSession(out)
}

// Login authenticates and persists the credential pair.
func (c *Client) Login(email, password string) (AuthResult, error) {
	var out AuthResult
	err := c.call(apphttp.Post(c.url("/api/auth/login")).Body(map[string]any{
		"email":    email,
		"password": password,
	}), &out)
	if err != nil {
		return AuthResult{}, err
	}
	return out, c.saveSession(out)
}

func (c *Client) saveSession(res AuthResult) error {
	return c.sessions.Save(session.Credentials{
		Token: res.Token,
		User: session.User{
			ID:        res.User.ID,
			FirstName: res.User.FirstName,
			LastName:  res.User.LastName,
			Email:     res.User.Email,
			Role:      res.User.Role,
		},
	})
}

// Logout drops the stored credentials. The token itself is stateless,
// so no server call is needed.
func (c *Client) Logout() error {
	return c.sessions.Clear()
}

// WhoAmI asks the server who the stored token belongs to.
func (c *Client) WhoAmI() (Me, error) {
	var out Me
	err := c.call(apphttp.Get(c.url("/api/auth/me")), &out)
	return out, err
}

// ------------------- Catalogue -------------------

func (c *Client) Materials() ([]models.Material, error) {
	var out []models.Material
	err := c.call(apphttp.Get(c.url("/api/materials")), &out)
	return out, err
}

func (c *Client) Products(productType string) ([]models.Product, error) {
	u := c.url("/api/products")
	if productType != "" {
		u += "?type=" + productType
	}
	var out []models.Product
	err := c.call(apphttp.Get(u), &out)
	return out, err
}

// ------------------- Pickups -------------------

// PickupDraft is the full sell-wizard payload submitted in one shot.
type PickupDraft struct {
	MaterialID    uint    `json:"materialId"`
	Quantity      float64 `json:"quantity"`
	Address       string  `json:"address"`
	PickupDate    string  `json:"pickupDate,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	PayoutMethod  string  `json:"payoutMethod"`
	AccountName   string  `json:"accountName,omitempty"`
	AccountNumber string  `json:"accountNumber,omitempty"`
}

func (c *Client) CreatePickup(draft PickupDraft) (models.PickupRequest, error) {
	var out models.PickupRequest
	err := c.call(apphttp.Post(c.url("/api/pickups/create")).Body(draft), &out)
	return out, err
}

func (c *Client) MyPickups() ([]models.PickupRequest, error) {
	var out []models.PickupRequest
	err := c.call(apphttp.Get(c.url("/api/pickups/mine")), &out)
	return out, err
}

// Pickups lists all requests, optionally filtered by status. Dashboard
// roles only.
func (c *Client) Pickups(status string) ([]models.PickupRequest, error) {
	u := c.url("/api/pickups")
	if status != "" {
		u += "?status=" + status
	}
	var out []models.PickupRequest
	err := c.call(apphttp.Get(u), &out)
	return out, err
}

// AcceptPickup accepts a pending request, attaching the collection
// schedule and driver when given. Both may be empty.
func (c *Client) AcceptPickup(id uint, scheduledTime, driverName string) (models.PickupRequest, error) {
	var out models.PickupRequest
	err := c.call(apphttp.Put(c.url(fmt.Sprintf("/api/pickups/%d/accept", id))).
		Body(map[string]string{
			"scheduledTime": scheduledTime,
			"driverName":    driverName,
		}), &out)
	return out, err
}

func (c *Client) RejectPickup(id uint, reason string) (models.PickupRequest, error) {
	var out models.PickupRequest
	err := c.call(apphttp.Put(c.url(fmt.Sprintf("/api/pickups/%d/reject", id))).
		Body(map[string]string{"reason": reason}), &out)
	return out, err
}

func (c *Client) CompletePickup(id uint) (models.PickupRequest, error) {
	var out models.PickupRequest
	err := c.call(apphttp.Put(c.url(fmt.Sprintf("/api/pickups/%d/complete", id))), &out)
	return out, err
}

// ------------------- Orders -------------------

// OrderLine is one requested product on a new order.
type OrderLine struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

func (c *Client) PlaceOrder(lines []OrderLine, shippingAddress string) (models.Order, error) {
	var out models.Order
	err := c.call(apphttp.Post(c.url("/api/orders/place")).Body(map[string]any{
		"items":           lines,
		"shippingAddress": shippingAddress,
	}), &out)
	return out, err
}

func (c *Client) MyOrders() ([]models.Order, error) {
	var out []models.Order
	err := c.call(apphttp.Get(c.url("/api/orders/mine")), &out)
	return out, err
}
