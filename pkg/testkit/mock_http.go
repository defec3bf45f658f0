package testkit

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// MockTransport is an http.RoundTripper that answers outgoing requests
// from a scenario's "httprequest" mock steps instead of the network.
// The runner installs it on the shared client for the scenario's duration.
type MockTransport struct {
	mu       sync.Mutex
	steps    []httpMock
	required bool
}

type httpMock struct {
	step  MockStep
	calls int
}

// NewMockTransport collects the "httprequest" steps from s. Other step
// kinds are handled by the FuncMocker registry.
func NewMockTransport(s *Scenario) *MockTransport {
	mt := &MockTransport{required: s.IsMockRequired}
	for _, step := range s.NetUtilMockStep {
		if step.Method == "httprequest" {
			mt.steps = append(mt.steps, httpMock{step: step})
		}
	}
	return mt
}

// RoundTrip answers req with the first matching mock step.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	for i := range mt.steps {
		m := &mt.steps[i]
		if !m.step.IsMock {
			break
		}
		if m.step.MatchURL != "" && !strings.HasPrefix(req.URL.String(), m.step.MatchURL) {
			continue
		}
		m.calls++
		return mockResponse(req, m.step.ReturnData)
	}

	if mt.required {
		return nil, fmt.Errorf("testkit: no mock step matches outgoing call to %s", req.URL)
	}
	return &http.Response{
		StatusCode: http.StatusNotFound,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(`{"error":"no mock configured"}`)),
		Request:    req,
	}, nil
}

// AssertAllCalled reports every active step that was never matched.
func (mt *MockTransport) AssertAllCalled() []error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	var errs []error
	for _, m := range mt.steps {
		if m.step.IsMock && m.calls == 0 {
			errs = append(errs, fmt.Errorf(
				"testkit: httprequest mock (matchUrl=%q) was never called", m.step.MatchURL))
		}
	}
	return errs
}

func mockResponse(req *http.Request, rd MockReturnData) (*http.Response, error) {
	code := rd.StatusCode
	if code == 0 {
		code = http.StatusOK
	}

	body, err := decodeMockBody(rd.Body)
	if err != nil {
		return nil, err
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Request:    req,
	}, nil
}

// decodeMockBody accepts both padded and unpadded base64.
func decodeMockBody(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	b, err := base64.RawStdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("testkit: decode mock body: %w", err)
	}
	return b, nil
}
