package vault

import (
	"errors"
	"strings"
	"testing"

	"moneyvault/internal/domain"
)

func TestInitialize(t *testing.T) {
	e := newEnv(t)
	if e.dir.Initialized() {
		t.Fatal("fresh vault reports initialized")
	}
	admin := e.setup(t)
	if admin.Role != domain.RoleAdmin {
		t.Errorf("first principal role = %q, want admin", admin.Role)
	}
	if !e.dir.Initialized() {
		t.Error("vault not initialized after setup")
	}
	// setup logs the admin straight in
	if p, ok := e.session.Current(); !ok || p.ID != admin.ID {
		t.Error("setup did not establish a session for the admin")
	}
	// second setup must be rejected
	if _, err := e.dir.Initialize("Eve", "9999", "9999"); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("second Initialize = %v, want ErrConflict", err)
	}
}

func TestInitializeValidation(t *testing.T) {
	tests := []struct {
		name, pName, pin, confirm string
		want                      error
	}{
		{"blank name", "  ", "1234", "1234", domain.ErrValidation},
		{"short pin", "Alice", "12", "12", domain.ErrValidation},
		{"mismatched confirm", "Alice", "1234", "4321", domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			if _, err := e.dir.Initialize(tt.pName, tt.pin, tt.confirm); !errors.Is(err, tt.want) {
				t.Errorf("Initialize = %v, want %v", err, tt.want)
			}
			if e.dir.Initialized() {
				t.Error("failed setup left the vault initialized")
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	e := newEnv(t)
	admin := e.setup(t)
	bob := e.addMember(t, "Bob", "5678")
	e.session.Logout()

	p, err := e.dir.Authenticate("1234")
	if err != nil {
		t.Fatalf("Authenticate admin: %v", err)
	}
	if p.ID != admin.ID {
		t.Errorf("authenticated as %s, want %s", p.ID, admin.ID)
	}

	if p, err = e.dir.Authenticate("5678"); err != nil || p.ID != bob.ID {
		t.Errorf("Authenticate member = %v, %v", p.ID, err)
	}

	if _, err = e.dir.Authenticate("9999"); !errors.Is(err, domain.ErrAuthentication) {
		t.Errorf("wrong PIN = %v, want ErrAuthentication", err)
	}
	if _, err = e.dir.Authenticate(""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty PIN = %v, want ErrValidation", err)
	}
}

func TestAddMemberDuplicatePIN(t *testing.T) {
	e := newEnv(t)
	e.setup(t)
	e.addMember(t, "Bob", "5678")
	if _, err := e.dir.AddMember("Carol", "5678", domain.RoleMember); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("duplicate PIN = %v, want ErrConflict", err)
	}
	// admin's PIN is also taken
	if _, err := e.dir.AddMember("Carol", "1234", domain.RoleMember); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("PIN matching admin = %v, want ErrConflict", err)
	}
	if got := len(e.dir.List()); got != 2 {
		t.Errorf("directory size = %d, want 2", got)
	}
}

func TestAddMemberNotifies(t *testing.T) {
	e := newEnv(t)
	e.setup(t)
	e.addMember(t, "Bob", "5678")
	list := e.notes.List()
	if len(list) == 0 || list[0].Message != `Member "Bob" added successfully!` {
		t.Errorf("notification list head = %+v", list)
	}
}

func TestUpdateMember(t *testing.T) {
	e := newEnv(t)
	admin := e.setup(t)
	bob := e.addMember(t, "Bob", "5678")

	updated, err := e.dir.UpdateMember(bob.ID, "Robert", "", domain.RoleMember)
	if err != nil {
		t.Fatalf("UpdateMember: %v", err)
	}
	if updated.Name != "Robert" {
		t.Errorf("name = %q, want Robert", updated.Name)
	}
	if updated.PIN != bob.PIN {
		t.Error("empty pin argument must leave the stored PIN unchanged")
	}

	// demoting the admin is forbidden
	if _, err := e.dir.UpdateMember(admin.ID, "Alice", "", domain.RoleMember); !errors.Is(err, domain.ErrPermission) {
		t.Errorf("admin demotion = %v, want ErrPermission", err)
	}

	// new PIN must not collide
	if _, err := e.dir.UpdateMember(bob.ID, "Robert", "1234", domain.RoleMember); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("colliding PIN update = %v, want ErrConflict", err)
	}

	if _, err := e.dir.UpdateMember("user_missing", "X", "", domain.RoleMember); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown id = %v, want ErrNotFound", err)
	}
}

func TestUpdateMemberRefreshesSession(t *testing.T) {
	e := newEnv(t)
	admin := e.setup(t)
	if _, err := e.dir.UpdateMember(admin.ID, "Alicia", "", domain.RoleAdmin); err != nil {
		t.Fatalf("UpdateMember: %v", err)
	}
	if p, ok := e.session.Current(); !ok || p.Name != "Alicia" {
		t.Errorf("session snapshot not refreshed, got %+v", p)
	}
}

func TestDeleteMember(t *testing.T) {
	e := newEnv(t)
	admin := e.setup(t)
	bob := e.addMember(t, "Bob", "5678")

	if err := e.dir.DeleteMember(admin.ID); !errors.Is(err, domain.ErrPermission) {
		t.Errorf("deleting admin = %v, want ErrPermission", err)
	}
	if err := e.dir.DeleteMember(bob.ID); err != nil {
		t.Fatalf("DeleteMember: %v", err)
	}
	if err := e.dir.DeleteMember(bob.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
	if got := len(e.dir.List()); got != 1 {
		t.Errorf("directory size = %d, want 1", got)
	}
}

func TestChangeOwnPIN(t *testing.T) {
	e := newEnv(t)
	admin := e.setup(t)
	e.addMember(t, "Bob", "5678")

	tests := []struct {
		name                  string
		current, next, confirm string
		want                  error
	}{
		{"wrong current", "0000", "4321", "4321", domain.ErrAuthentication},
		{"mismatched confirm", "1234", "4321", "9999", domain.ErrValidation},
		{"too short", "1234", "12", "12", domain.ErrValidation},
		{"taken by another member", "1234", "5678", "5678", domain.ErrConflict},
		{"empty fields", "", "", "", domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := e.dir.ChangeOwnPIN(admin, tt.current, tt.next, tt.confirm); !errors.Is(err, tt.want) {
				t.Errorf("ChangeOwnPIN = %v, want %v", err, tt.want)
			}
		})
	}

	if err := e.dir.ChangeOwnPIN(admin, "1234", "4321", "4321"); err != nil {
		t.Fatalf("ChangeOwnPIN: %v", err)
	}
	e.session.Logout()
	if _, err := e.dir.Authenticate("1234"); !errors.Is(err, domain.ErrAuthentication) {
		t.Error("old PIN still authenticates")
	}
	if _, err := e.dir.Authenticate("4321"); err != nil {
		t.Errorf("new PIN rejected: %v", err)
	}
	var found bool
	for _, n := range e.notes.List() {
		if n.Message == "PIN changed successfully!" {
			found = true
		}
	}
	if !found {
		t.Error("PIN change notification missing")
	}
}

func TestDirectoryNeverStoresPlaintextPIN(t *testing.T) {
	e := newEnv(t)
	e.setup(t)
	raw, err := e.store.Get("moneyVault_users")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(raw, `"pin":"1234"`) {
		t.Error("plaintext PIN found in store")
	}
	if !strings.Contains(raw, domain.EncodePIN("1234")) {
		t.Error("encoded PIN missing from store")
	}
}
