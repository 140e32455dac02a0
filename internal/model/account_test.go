package model

import "testing"

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		role     string
		minimum  string
		expected bool
	}{
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleManager, true},
		{RoleAdmin, RoleUser, true},
		{RoleManager, RoleAdmin, false},
		{RoleManager, RoleManager, true},
		{RoleManager, RoleUser, true},
		{RoleUser, RoleAdmin, false},
		{RoleUser, RoleManager, false},
		{RoleUser, RoleUser, true},
		{"unknown", RoleUser, false},
	}

	for _, tt := range tests {
		if got := RoleAtLeast(tt.role, tt.minimum); got != tt.expected {
			t.Errorf("RoleAtLeast(%q, %q) = %v, want %v", tt.role, tt.minimum, got, tt.expected)
		}
	}
}

func TestItemStatusValid(t *testing.T) {
	for _, s := range []string{ItemStatusInWarehouse, ItemStatusDelivered, ItemStatusMaintenance, ItemStatusDecommissioned} {
		if !ItemStatusValid(s) {
			t.Errorf("expected %q to be a valid status", s)
		}
	}
	if ItemStatusValid("broken") {
		t.Error("expected unknown status to be invalid")
	}
}
