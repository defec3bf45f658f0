package testkit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode compares the recorded status against the scenario.
func AssertStatusCode(t *testing.T, s *Scenario, got int) {
	t.Helper()
	assert.Equal(t, s.ExpectedCode, got, "[%s] status code mismatch", s.Name)
}

// AssertJSONBody deep-compares the actual response against the expected
// file contents. Both sides go through json.Unmarshal first so key order
// and whitespace never matter.
func AssertJSONBody(t *testing.T, s *Scenario, expected, actual []byte) {
	t.Helper()
	if len(expected) == 0 {
		return
	}

	var want, got interface{}
	require.NoError(t, json.Unmarshal(expected, &want),
		"[%s] expected response file is not valid JSON", s.Name)
	if !assert.NoError(t, json.Unmarshal(actual, &got),
		"[%s] response is not valid JSON\nbody: %s", s.Name, actual) {
		return
	}

	assert.Equal(t, want, got, "[%s] response body mismatch", s.Name)
}

// AssertMocksAllCalled fails the test for every active mock step, HTTP or
// otherwise, that the scenario never triggered.
func AssertMocksAllCalled(t *testing.T, s *Scenario, mt *MockTransport) {
	t.Helper()
	for _, err := range mt.AssertAllCalled() {
		assert.NoError(t, err, "[%s]", s.Name)
	}
	for _, err := range AssertFuncMocksCalled(s) {
		assert.NoError(t, err, "[%s]", s.Name)
	}
}
