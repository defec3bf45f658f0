// Package services holds the business rules behind the REST surface.
// Services return typed errors; controllers translate them into the
// JSON envelope and status codes.
package services

import "errors"

var (
	// ErrNotFound maps to 404.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidCredentials maps to 401 on login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken maps to 422 on registration.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidTransition maps to 409 on pickup and order status changes.
	ErrInvalidTransition = errors.New("illegal status transition")
	// ErrInsufficientStock maps to 409 on checkout.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrReasonRequired maps to 422 when rejecting a pickup without a reason.
	ErrReasonRequired = errors.New("rejection reason is required")
)
