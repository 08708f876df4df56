package rbac

import "testing"

func TestAdminCanEverything(t *testing.T) {
	for _, action := range []Action{ActionRead, ActionWrite, ActionDelete, ActionAdmin} {
		if !Can(RoleAdmin, action) {
			t.Errorf("admin should be allowed %s", action)
		}
	}
}

func TestEditorCannotDelete(t *testing.T) {
	if !Can(RoleEditor, ActionRead) {
		t.Error("editor should read")
	}
	if !Can(RoleEditor, ActionWrite) {
		t.Error("editor should write")
	}
	if Can(RoleEditor, ActionDelete) {
		t.Error("editor must not delete")
	}
	if Can(RoleEditor, ActionAdmin) {
		t.Error("editor must not admin")
	}
}

func TestViewerReadOnly(t *testing.T) {
	if !Can(RoleViewer, ActionRead) {
		t.Error("viewer should read")
	}
	for _, action := range []Action{ActionWrite, ActionDelete, ActionAdmin} {
		if Can(RoleViewer, action) {
			t.Errorf("viewer must not be allowed %s", action)
		}
	}
}

func TestUnknownRoleDeniedAndNormalized(t *testing.T) {
	if Can(Role("owner"), ActionRead) {
		t.Error("unknown role must be denied")
	}
	if got := Normalize("owner"); got != RoleViewer {
		t.Errorf("expected unknown role to normalize to viewer, got %s", got)
	}
	if got := Normalize("admin"); got != RoleAdmin {
		t.Errorf("expected admin to survive normalization, got %s", got)
	}
}
