package model

import "testing"

func TestRunState_IsActive(t *testing.T) {
	tests := []struct {
		state    RunState
		expected bool
	}{
		{RunStateIdle, false},
		{RunStateRunning, true},
		{RunStateStopping, true},
		{"", false},
	}

	for _, test := range tests {
		result := test.state.IsActive()
		if result != test.expected {
			t.Errorf("RunState(%s).IsActive() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestRunState_CanStart(t *testing.T) {
	tests := []struct {
		state    RunState
		expected bool
	}{
		{RunStateIdle, true},
		{"", true},
		{RunStateRunning, false},
		{RunStateStopping, false},
	}

	for _, test := range tests {
		result := test.state.CanStart()
		if result != test.expected {
			t.Errorf("RunState(%s).CanStart() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestRunState_String(t *testing.T) {
	if RunStateStopping.String() != "Stopping" {
		t.Errorf("RunState.String() = %s, expected Stopping", RunStateStopping.String())
	}
}
