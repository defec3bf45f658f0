package validate_test

import (
	"testing"

	"github.com/ecotrackhq/ecotrack/pkg/validate"
)

type registerInput struct {
	FirstName            string `json:"firstName"             validate:"required,min=2,max=50"`
	Email                string `json:"email"                 validate:"required,email"`
	Password             string `json:"password"              validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"confirmed"`
	Role                 string `json:"role"                  validate:"required,in=User,Admin,Manager"`
	Website              string `json:"website"               validate:"nullable,url"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(registerInput{
		FirstName:            "Sara",
		Email:                "sara@example.com",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
		Role:                 "User",
		Website:              "", // nullable, allowed to be empty
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(registerInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["firstName"]; !ok {
		t.Error("expected firstName to be required")
	}
	if _, ok := errs["email"]; !ok {
		t.Error("expected email to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Quantity float64 `json:"quantity" validate:"required,gt=0"`
	}
	if errs := validate.Struct(in{Quantity: -4}); !validate.HasErrors(errs) {
		t.Error("expected negative quantity to fail")
	}
	if errs := validate.Struct(in{Quantity: 12.5}); validate.HasErrors(errs) {
		t.Errorf("expected quantity 12.5 to pass, got: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		Role string `json:"role" validate:"required,in=User,Admin,Manager"`
	}
	if errs := validate.Struct(in{Role: "SuperAdmin"}); !validate.HasErrors(errs) {
		t.Error("expected unknown role to fail")
	}
	if errs := validate.Struct(in{Role: "Manager"}); validate.HasErrors(errs) {
		t.Errorf("expected Manager to pass: %v", errs)
	}
}

func TestConfirmedRule(t *testing.T) {
	type in struct {
		Password             string `json:"password"              validate:"required,min=8"`
		PasswordConfirmation string `json:"password_confirmation" validate:"confirmed"`
	}
	if errs := validate.Struct(in{Password: "secret123", PasswordConfirmation: "wrong"}); !validate.HasErrors(errs) {
		t.Error("expected confirmation mismatch to fail")
	}
	if errs := validate.Struct(in{Password: "secret123", PasswordConfirmation: "secret123"}); validate.HasErrors(errs) {
		t.Errorf("expected matching confirmation to pass: %v", errs)
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Website string `json:"website" validate:"nullable,url"`
	}
	if errs := validate.Struct(in{Website: ""}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable to pass: %v", errs)
	}
	if errs := validate.Struct(in{Website: "not-a-url"}); !validate.HasErrors(errs) {
		t.Error("expected invalid URL to fail")
	}
}

func TestBetweenRule(t *testing.T) {
	type in struct {
		Price float64 `json:"pricePerUnit" validate:"required,between=0,10000"`
	}
	if errs := validate.Struct(in{Price: 20000}); !validate.HasErrors(errs) {
		t.Error("expected price above range to fail")
	}
	if errs := validate.Struct(in{Price: 45.5}); validate.HasErrors(errs) {
		t.Errorf("expected price 45.5 to pass: %v", errs)
	}
}

func TestAlphaDashRule(t *testing.T) {
	type in struct {
		Code string `json:"code" validate:"required,alpha_dash"`
	}
	if errs := validate.Struct(in{Code: "PET-01_a"}); validate.HasErrors(errs) {
		t.Errorf("expected alpha_dash to pass: %v", errs)
	}
	if errs := validate.Struct(in{Code: "PET 01!"}); !validate.HasErrors(errs) {
		t.Error("expected alpha_dash to fail for spaces/punctuation")
	}
}

func TestDigitsRule(t *testing.T) {
	type in struct {
		Account string `json:"accountNumber" validate:"required,digits=11"`
	}
	if errs := validate.Struct(in{Account: "03001234567"}); validate.HasErrors(errs) {
		t.Errorf("expected 11-digit account to pass: %v", errs)
	}
	if errs := validate.Struct(in{Account: "0300-123"}); !validate.HasErrors(errs) {
		t.Error("expected non-digit account to fail")
	}
}
