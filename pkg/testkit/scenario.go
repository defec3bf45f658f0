// Package testkit runs REST API tests described by JSON scenario files.
//
// A scenario file names the request to fire, the status code to expect,
// and optionally a request body file, an expected response body file, and
// a list of mock steps for outgoing calls. Body files live next to the
// scenario file and are referenced by relative path:
//
//	testdata/
//	  register.json         scenario
//	  register_req.json     request body
//	  register_res.json     expected response body
//
// Tests hand a scenario path and an http.Handler to Run:
//
//	testkit.Run(t, kernel.Handler(), "testdata/register.json")
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Scenario is one API test case loaded from a JSON file.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	RequestMethod   string            `json:"requestMethod"`
	RequestURL      string            `json:"requestUrl"`
	RequestFileName string            `json:"requestFileName"`
	Headers         map[string]string `json:"headers"`

	ExpectedCode     int    `json:"expectedCode"`
	ResponseFileName string `json:"responseFileName"`

	// IsMockRequired makes an outgoing call without a matching mock step a
	// hard failure instead of a stubbed 404.
	IsMockRequired bool `json:"isMockRequired"`

	// NetUtilMockStep intercepts outgoing side-effects in definition order.
	NetUtilMockStep []MockStep `json:"netUtilMockStep"`

	dir string
}

// MockStep intercepts one outgoing call during a scenario.
//
// Method "httprequest" matches outgoing HTTP requests by URL prefix; any
// other value is dispatched to a FuncMocker registered under that name.
type MockStep struct {
	Method     string         `json:"method"`
	IsMock     bool           `json:"isMock"`
	MatchURL   string         `json:"matchUrl"`
	ReturnData MockReturnData `json:"returnData"`
}

// MockReturnData is the canned reply a mock step produces. Body is
// base64-encoded so binary payloads survive the JSON file.
type MockReturnData struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// LoadScenario reads and validates one scenario file.
func LoadScenario(path string) (*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve %q: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: scenario %q: %w", abs, err)
	}
	s.dir = filepath.Dir(abs)
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	for i, step := range s.NetUtilMockStep {
		if step.Method == "" {
			return fmt.Errorf("netUtilMockStep[%d].method is required", i)
		}
	}
	return nil
}

// RequestBodyPath resolves RequestFileName against the scenario's directory.
// Empty when the scenario carries no request body.
func (s *Scenario) RequestBodyPath() string {
	return s.resolve(s.RequestFileName)
}

// ResponseBodyPath resolves ResponseFileName against the scenario's directory.
func (s *Scenario) ResponseBodyPath() string {
	return s.resolve(s.ResponseFileName)
}

func (s *Scenario) resolve(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}
