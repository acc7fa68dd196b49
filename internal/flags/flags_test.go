package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		registry *Registry
		flag     string
		expected bool
	}{
		{
			name:     "strict-load set to true returns true",
			registry: New(map[string]bool{FlagStrictLoad: true}),
			flag:     FlagStrictLoad,
			expected: true,
		},
		{
			name:     "no-schedule-cache set to false returns false",
			registry: New(map[string]bool{FlagNoScheduleCache: false}),
			flag:     FlagNoScheduleCache,
			expected: false,
		},
		{
			name:     "unknown flag returns false",
			registry: New(map[string]bool{FlagStrictLoad: true}),
			flag:     "unknown-flag",
			expected: false,
		},
		{
			name:     "nil registry returns false",
			registry: nil,
			flag:     FlagStrictLoad,
			expected: false,
		},
		{
			name:     "empty registry returns false",
			registry: New(map[string]bool{}),
			flag:     FlagNoScheduleCache,
			expected: false,
		},
		{
			name:     "nil flags map returns false",
			registry: New(nil),
			flag:     FlagStrictLoad,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.registry.Enabled(tt.flag)
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestRegistry_Enabled_MultipleFlags(t *testing.T) {
	r := New(map[string]bool{
		FlagStrictLoad:      true,
		FlagNoScheduleCache: false,
	})

	require.True(t, r.Enabled(FlagStrictLoad))
	require.False(t, r.Enabled(FlagNoScheduleCache))
	require.False(t, r.Enabled("schedule-cache")) // unknown
}

func TestRegistry_All(t *testing.T) {
	tests := []struct {
		name     string
		registry *Registry
		expected map[string]bool
	}{
		{
			name:     "returns all flags",
			registry: New(map[string]bool{FlagStrictLoad: true, FlagNoScheduleCache: false}),
			expected: map[string]bool{FlagStrictLoad: true, FlagNoScheduleCache: false},
		},
		{
			name:     "returns empty map for nil registry",
			registry: nil,
			expected: map[string]bool{},
		},
		{
			name:     "returns empty map for empty registry",
			registry: New(map[string]bool{}),
			expected: map[string]bool{},
		},
		{
			name:     "returns empty map for nil flags",
			registry: New(nil),
			expected: map[string]bool{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.registry.All()
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestRegistry_All_ReturnsDefensiveCopy(t *testing.T) {
	original := map[string]bool{FlagStrictLoad: true}
	r := New(original)

	// Get a copy via All()
	copy := r.All()

	// Mutate the copy
	copy[FlagStrictLoad] = false
	copy[FlagNoScheduleCache] = true

	// Verify the registry is unaffected
	require.True(t, r.Enabled(FlagStrictLoad), "registry should not be affected by copy mutation")
	require.False(t, r.Enabled(FlagNoScheduleCache), "registry should not have new flags from copy mutation")

	// Verify All() returns the original state
	freshCopy := r.All()
	require.Equal(t, map[string]bool{FlagStrictLoad: true}, freshCopy)
}

func TestNew_WithNilFlags(t *testing.T) {
	r := New(nil)
	require.NotNil(t, r)
	require.False(t, r.Enabled(FlagStrictLoad))
}

func TestNew_WithEmptyFlags(t *testing.T) {
	r := New(map[string]bool{})
	require.NotNil(t, r)
	require.False(t, r.Enabled(FlagNoScheduleCache))
}
