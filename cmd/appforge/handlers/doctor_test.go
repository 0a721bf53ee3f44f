package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appforge/appforge/internal/util/prerequisites"
)

type loginProbeMock struct {
	loggedIn bool
	err      error
}

func (m *loginProbeMock) AuthStatus(_ context.Context) (bool, error) {
	return m.loggedIn, m.err
}

func injectDoctor(t *testing.T, results *prerequisites.CheckResults, probe LoginProbe) {
	t.Helper()

	origCheck := checkAllPrereqs
	origProbe := newLoginProbe
	origExists := fileExists
	t.Cleanup(func() {
		checkAllPrereqs = origCheck
		newLoginProbe = origProbe
		fileExists = origExists
	})

	checkAllPrereqs = func() *prerequisites.CheckResults { return results }
	newLoginProbe = func() LoginProbe { return probe }
	fileExists = func(_ string) bool { return false }
}

func TestDoctor(t *testing.T) {
	results := &prerequisites.CheckResults{
		Results: []prerequisites.CheckResult{
			{Tool: prerequisites.Tool{Name: "turso", Required: true}, Found: true},
		},
	}
	injectDoctor(t, results, &loginProbeMock{loggedIn: true})

	err := Doctor(context.Background(), "")
	require.NoError(t, err)
}

func TestDoctorMissingRequiredTool(t *testing.T) {
	missing := prerequisites.Tool{Name: "turso", Required: true, InstallURL: "https://docs.turso.tech/cli/installation"}
	results := &prerequisites.CheckResults{
		Results: []prerequisites.CheckResult{{Tool: missing, Found: false}},
		Missing: []prerequisites.Tool{missing},
	}
	injectDoctor(t, results, &loginProbeMock{loggedIn: false})

	err := Doctor(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "turso")
}
