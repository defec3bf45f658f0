package testkit

import (
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"
)

// FuncMocker intercepts a non-HTTP side-effect (mail, SMS, push) named by
// a scenario mock step. Implementations wrap testify/mock so tests can add
// their own expectations through Mock().
type FuncMocker interface {
	// Intercept receives the step's decoded ReturnData.Body.
	Intercept(rawBody []byte) error

	// Reset clears call history between scenarios.
	Reset()

	// WasCalled counts Intercept calls since the last Reset.
	WasCalled() int

	// Mock exposes the underlying testify mock.
	Mock() *mock.Mock
}

// GenericFuncMocker is the default testify-backed FuncMocker. It accepts
// every Intercept call and returns nil unless a test overrides the
// expectation.
type GenericFuncMocker struct {
	m      mock.Mock
	method string
	mu     sync.Mutex
	calls  int
}

// NewFuncMocker builds a GenericFuncMocker for the named step method.
func NewFuncMocker(method string) *GenericFuncMocker {
	gm := &GenericFuncMocker{method: method}
	gm.m.On("Intercept", mock.AnythingOfType("[]uint8")).Return(nil)
	return gm
}

func (gm *GenericFuncMocker) Intercept(rawBody []byte) error {
	gm.mu.Lock()
	gm.calls++
	gm.mu.Unlock()

	args := gm.m.Called(rawBody)
	if args.Get(0) == nil {
		return nil
	}
	return args.Error(0)
}

func (gm *GenericFuncMocker) Reset() {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.calls = 0
	gm.m.Calls = nil
	gm.m.On("Intercept", mock.AnythingOfType("[]uint8")).Return(nil)
}

func (gm *GenericFuncMocker) WasCalled() int {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return gm.calls
}

func (gm *GenericFuncMocker) Mock() *mock.Mock { return &gm.m }

var (
	mockerMu sync.RWMutex
	mockers  = map[string]FuncMocker{
		"sendmail":     NewFuncMocker("sendmail"),
		"sms":          NewFuncMocker("sms"),
		"notification": NewFuncMocker("notification"),
	}
)

// RegisterMocker installs a FuncMocker for the given step method. Call it
// from a test package init to handle custom step kinds.
func RegisterMocker(method string, m FuncMocker) {
	mockerMu.Lock()
	defer mockerMu.Unlock()
	mockers[method] = m
}

// GetMocker returns the mocker registered under method, or nil.
func GetMocker(method string) FuncMocker {
	mockerMu.RLock()
	defer mockerMu.RUnlock()
	return mockers[method]
}

func resetAllMockers() {
	mockerMu.RLock()
	defer mockerMu.RUnlock()
	for _, m := range mockers {
		m.Reset()
	}
}

// ActivateFuncMocks fires every active non-HTTP step against its mocker.
func ActivateFuncMocks(s *Scenario) error {
	for i, step := range s.NetUtilMockStep {
		if step.Method == "httprequest" || !step.IsMock {
			continue
		}
		m := GetMocker(step.Method)
		if m == nil {
			if s.IsMockRequired {
				return fmt.Errorf("testkit: no mocker registered for %q (step %d)", step.Method, i)
			}
			continue
		}

		raw, err := decodeMockBody(step.ReturnData.Body)
		if err != nil {
			return fmt.Errorf("testkit: step %d: %w", i, err)
		}
		if err := m.Intercept(raw); err != nil {
			return fmt.Errorf("testkit: step %d intercept: %w", i, err)
		}
	}
	return nil
}

// AssertFuncMocksCalled reports active non-HTTP steps whose mocker never fired.
func AssertFuncMocksCalled(s *Scenario) []error {
	var errs []error
	seen := map[string]bool{}
	for _, step := range s.NetUtilMockStep {
		if step.Method == "httprequest" || !step.IsMock || seen[step.Method] {
			continue
		}
		seen[step.Method] = true
		if m := GetMocker(step.Method); m != nil && m.WasCalled() == 0 {
			errs = append(errs, fmt.Errorf(
				"mock %q never called during scenario %q", step.Method, s.Name))
		}
	}
	return errs
}
