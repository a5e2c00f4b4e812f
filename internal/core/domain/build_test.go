package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wave/internal/core/domain"
)

func TestParseBuildKind(t *testing.T) {
	tests := []struct {
		in   string
		want domain.BuildKind
	}{
		{"", domain.BuildIncremental},
		{"incremental", domain.BuildIncremental},
		{"FULL", domain.BuildFull},
		{"auto", domain.BuildAuto},
		{"clean", domain.BuildClean},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseBuildKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.in != "" && tt.in != "FULL" {
				assert.Equal(t, tt.in, got.String())
			}
		})
	}

	_, err := domain.ParseBuildKind("nightly")
	assert.ErrorContains(t, err, domain.ErrInvalidBuildKind.Error())
}

func TestBuildConfig_BuildRoot(t *testing.T) {
	cfg := &domain.BuildConfig{ProjectRoot: "/work/blink", BuildFolder: "build/debug"}
	assert.Equal(t, filepath.Join("/work/blink", "build", "debug"), cfg.BuildRoot())

	cfg.BuildFolder = "/tmp/out/"
	assert.Equal(t, "/tmp/out", cfg.BuildRoot())
}

func TestRuleStatus_IsTerminal(t *testing.T) {
	assert.False(t, domain.RuleStatusPending.IsTerminal())
	assert.False(t, domain.RuleStatusRunning.IsTerminal())
	assert.True(t, domain.RuleStatusCompleted.IsTerminal())
	assert.True(t, domain.RuleStatusFailed.IsTerminal())
	assert.True(t, domain.RuleStatusUpToDate.IsTerminal())
}

func TestStrings(t *testing.T) {
	in := []domain.InternedString{
		domain.NewInternedString("b.o"),
		domain.NewInternedString("a.o"),
		domain.NewInternedString("b.o"),
	}
	assert.Equal(t, []string{"a.o", "b.o"}, domain.Strings(in))
	assert.True(t, domain.InternedString{}.IsZero())
	assert.Equal(t, "", domain.InternedString{}.String())
}
