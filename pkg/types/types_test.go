package types

import (
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{"valid sqlite", Config{Backend: BackendSQLite, DataDir: "/tmp/x"}, nil},
		{"empty backend", Config{DataDir: "/tmp/x"}, ErrBackendEmpty},
		{"unknown backend", Config{Backend: "postgres"}, ErrBackendUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr error
	}{
		{"valid", User{Name: "Ada", Email: "ada@example.com"}, nil},
		{"empty name", User{Email: "ada@example.com"}, ErrInvalidName},
		{"bad email", User{Name: "Ada", Email: "not-an-email"}, ErrInvalidEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.user.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUserProjectLimit(t *testing.T) {
	if got := (&User{Tier: TierFree}).ProjectLimit(); got != 1 {
		t.Errorf("free tier limit = %d, want 1", got)
	}
	for _, tier := range []string{TierPro, TierPremium} {
		if got := (&User{Tier: tier}).ProjectLimit(); got != -1 {
			t.Errorf("%s tier limit = %d, want -1", tier, got)
		}
	}
}

func TestValidProjectStatus(t *testing.T) {
	valid := []string{
		ProjectStatusDraft, ProjectStatusBuilding, ProjectStatusReady,
		ProjectStatusDeployed, ProjectStatusError,
	}
	for _, s := range valid {
		if !ValidProjectStatus(s) {
			t.Errorf("ValidProjectStatus(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "archived", "DRAFT"}
	for _, s := range invalid {
		if ValidProjectStatus(s) {
			t.Errorf("ValidProjectStatus(%q) = true, want false", s)
		}
	}
}

func TestProjectUpdateEmpty(t *testing.T) {
	if !(ProjectUpdate{}).Empty() {
		t.Error("zero update should be empty")
	}
	name := "renamed"
	if (ProjectUpdate{Name: &name}).Empty() {
		t.Error("update with name should not be empty")
	}
}

func TestValidAgentTypeAndStatus(t *testing.T) {
	for _, a := range []string{AgentDesign, AgentBackend, AgentTesting} {
		if !ValidAgentType(a) {
			t.Errorf("ValidAgentType(%q) = false, want true", a)
		}
	}
	if ValidAgentType("frontend") {
		t.Error("ValidAgentType(frontend) = true, want false")
	}
	for _, s := range []string{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusFailed} {
		if !ValidTaskStatus(s) {
			t.Errorf("ValidTaskStatus(%q) = false, want true", s)
		}
	}
	if ValidTaskStatus("cancelled") {
		t.Error("ValidTaskStatus(cancelled) = true, want false")
	}
}
