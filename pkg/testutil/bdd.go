package testutil

import "testing"

// Given runs fn as a subtest describing the starting state of a scenario.
// Steps share state through the enclosing test, so they run in order and a
// failed step leaves later steps to report against the partial scenario.
func Given(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("given "+desc, fn)
}

// When runs fn as the action step of a scenario.
func When(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("when "+desc, fn)
}

// Then runs fn as an outcome check of a scenario.
func Then(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("then "+desc, fn)
}
