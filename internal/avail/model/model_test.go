package model

import "testing"

func TestPseudoStatesAreNegativeAndDistinct(t *testing.T) {
	states := map[string]int{
		"StateUnspecified": StateUnspecified,
		"StateCurrent":     StateCurrent,
		"StateNotRunning":  StateNotRunning,
	}
	seen := map[int]string{}
	for name, v := range states {
		if v >= 0 {
			t.Errorf("%s = %d, want a negative pseudo-state so it can never collide with a concrete state", name, v)
		}
		if other, ok := seen[v]; ok {
			t.Errorf("%s and %s share the value %d", name, other, v)
		}
		seen[v] = name
	}
}

func TestConcreteStateValuesAreNonNegativeAndDistinct(t *testing.T) {
	hostStates := []int{HostUp, HostDown, HostUnreachable}
	seen := map[int]bool{}
	for _, s := range hostStates {
		if s < 0 {
			t.Errorf("host state %d must be non-negative", s)
		}
		if seen[s] {
			t.Errorf("duplicate host state value %d", s)
		}
		seen[s] = true
	}

	serviceStates := []int{ServiceOK, ServiceWarning, ServiceCritical, ServiceUnknown}
	seen = map[int]bool{}
	for _, s := range serviceStates {
		if s < 0 {
			t.Errorf("service state %d must be non-negative", s)
		}
		if seen[s] {
			t.Errorf("duplicate service state value %d", s)
		}
		seen[s] = true
	}
}
