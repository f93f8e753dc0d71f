package version

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	v := GetVersion()
	assert.Equal(t, version, v.Version)
	assert.Equal(t, prerelease, v.Prerelease)
}

func TestVersion_SemanticVersion(t *testing.T) {
	testCases := []struct {
		name string
		v    Version
	}{
		{
			name: "Test only Version",
			v: Version{
				Version: "0.0.0",
			},
		},
		{
			name: "Test Prerelease",
			v: Version{
				Version:    "0.0.0",
				Prerelease: "test",
			},
		},
		{
			name: "Test Metadata",
			v: Version{
				Version:  "0.0.0",
				Metadata: "buildinfo",
			},
		},
		{
			name: "Test All",
			v: Version{
				Version:    "0.0.0",
				Prerelease: "test",
				Metadata:   "buildinfo",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sv := tc.v.SemanticVersion()
			assert.Contains(t, sv, tc.v.Version)
			if tc.v.Prerelease != "" {
				assert.Contains(t, sv, fmt.Sprintf("-%s", tc.v.Prerelease))
			}
			if tc.v.Metadata != "" {
				assert.Contains(t, sv, fmt.Sprintf("+%s", tc.v.Metadata))
			}
		})
	}
}

func TestVersion_FullVersionNumber(t *testing.T) {
	testCases := []struct {
		name   string
		v      Version
		rev    bool
		expect string
	}{
		{
			name:   "Test without revision",
			v:      Version{Version: "0.0.0"},
			rev:    false,
			expect: "tracescrub v0.0.0",
		},
		{
			name:   "Test revision requested but unset",
			v:      Version{Version: "0.0.0"},
			rev:    true,
			expect: "tracescrub v0.0.0",
		},
		{
			name:   "Test with revision",
			v:      Version{Version: "0.0.0", Revision: "abc123"},
			rev:    true,
			expect: "tracescrub v0.0.0 (abc123)",
		},
		{
			name:   "Test with build date",
			v:      Version{Version: "0.0.0", BuildDate: "2023-01-01T00:00:00Z"},
			rev:    false,
			expect: "tracescrub v0.0.0, built 2023-01-01T00:00:00Z",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.v.FullVersionNumber(tc.rev))
		})
	}
}
