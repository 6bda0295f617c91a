package lender

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoProfiles = `{
  "forward_financing": {
    "aliases": ["forward financing", "forward fin"],
    "typical_factor": 1.49,
    "factor_range": [1.40, 1.55],
    "typical_terms_weekly": [44, 46, 48, 50],
    "typical_terms_daily": [],
    "typical_fee_range": [0.02, 0.06]
  },
  "ondeck": {
    "aliases": ["ondeck", "on deck capital"],
    "typical_factor": 1.35,
    "factor_range": [1.25, 1.45],
    "typical_terms_weekly": [],
    "typical_terms_daily": [110, 120, 130],
    "typical_fee_range": [0.03, 0.08]
  }
}`

func writeProfiles(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lender_profiles.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewFileDirectory_LoadsProfiles(t *testing.T) {
	directory, err := NewFileDirectory(writeProfiles(t, twoProfiles))
	require.NoError(t, err)

	profiles := directory.List()
	require.Len(t, profiles, 2)
	assert.Equal(t, 1.49, profiles["forward_financing"].TypicalFactor)
	assert.Equal(t, []int{110, 120, 130}, profiles["ondeck"].TypicalTermsDaily)
	assert.Equal(t, []float64{1.40, 1.55}, profiles["forward_financing"].FactorRange)
}

func TestNewFileDirectory_MissingFileYieldsEmptyDirectory(t *testing.T) {
	directory, err := NewFileDirectory(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	assert.Empty(t, directory.List())
	assert.Nil(t, directory.Match("forward financing"))
}

func TestNewFileDirectory_MalformedFileFails(t *testing.T) {
	_, err := NewFileDirectory(writeProfiles(t, `{"broken":`))
	assert.Error(t, err)
}

func TestMatch_AliasContainment(t *testing.T) {
	directory, err := NewFileDirectory(writeProfiles(t, twoProfiles))
	require.NoError(t, err)

	tests := []struct {
		name          string
		input         string
		expectFactor  float64
		expectNoMatch bool
	}{
		{"alias inside input", "  Forward Financing LLC ", 1.49, false},
		{"input inside alias", "on deck", 1.35, false},
		{"exact alias", "ondeck", 1.35, false},
		{"no match", "Rapid Finance", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := directory.Match(tt.input)
			if tt.expectNoMatch {
				assert.Nil(t, profile)
				return
			}
			require.NotNil(t, profile)
			assert.Equal(t, tt.expectFactor, profile.TypicalFactor)
		})
	}
}

func TestMatch_FirstProfileInSourceOrderWins(t *testing.T) {
	// Both profiles alias "capital"; the one listed first must win even
	// though Go maps would iterate them in any order.
	overlapping := `{
  "zeta_capital": {
    "aliases": ["capital"],
    "typical_factor": 1.50,
    "factor_range": [1.40, 1.60],
    "typical_terms_weekly": [40],
    "typical_terms_daily": [],
    "typical_fee_range": [0.02, 0.08]
  },
  "alpha_capital": {
    "aliases": ["capital"],
    "typical_factor": 1.30,
    "factor_range": [1.20, 1.40],
    "typical_terms_weekly": [20],
    "typical_terms_daily": [],
    "typical_fee_range": [0.02, 0.08]
  }
}`

	directory, err := NewFileDirectory(writeProfiles(t, overlapping))
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		profile := directory.Match("Some Capital Group")
		require.NotNil(t, profile)
		assert.Equal(t, 1.50, profile.TypicalFactor, "first profile in file order must match")
	}
}

func TestReload_SwapsSnapshotAtomically(t *testing.T) {
	path := writeProfiles(t, twoProfiles)
	directory, err := NewFileDirectory(path)
	require.NoError(t, err)

	before := directory.List()
	require.Len(t, before, 2)

	extended := twoProfiles[:len(twoProfiles)-2] + `,
  "rapid": {
    "aliases": ["rapid finance"],
    "typical_factor": 1.40,
    "factor_range": [1.30, 1.50],
    "typical_terms_weekly": [30],
    "typical_terms_daily": [],
    "typical_fee_range": [0.02, 0.08]
  }
}`
	require.NoError(t, os.WriteFile(path, []byte(extended), 0o644))

	count, err := directory.Reload()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Len(t, directory.List(), 3)
	assert.NotNil(t, directory.Match("Rapid Finance"))

	// The snapshot handed out before the reload is untouched.
	assert.Len(t, before, 2)
}

func TestReload_MalformedFileKeepsOldSnapshot(t *testing.T) {
	path := writeProfiles(t, twoProfiles)
	directory, err := NewFileDirectory(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err = directory.Reload()
	assert.Error(t, err)
	assert.Len(t, directory.List(), 2, "failed reload must not clobber the current snapshot")
}

func TestMatch_AliasesNormalizedToLowercase(t *testing.T) {
	mixedCase := `{
  "shouty": {
    "aliases": ["SHOUTY CAPITAL"],
    "typical_factor": 1.45,
    "factor_range": [1.35, 1.55],
    "typical_terms_weekly": [40],
    "typical_terms_daily": [],
    "typical_fee_range": [0.02, 0.08]
  }
}`
	directory, err := NewFileDirectory(writeProfiles(t, mixedCase))
	require.NoError(t, err)

	assert.NotNil(t, directory.Match("shouty capital llc"))
}
