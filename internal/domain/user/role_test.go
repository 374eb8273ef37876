package user

import "testing"

func TestHasPrivilege(t *testing.T) {
	tests := []struct {
		role     Role
		required Level
		want     bool
	}{
		{RoleAuthor, LevelAuthor, true},
		{RoleAuthor, LevelEditor, false},
		{RoleAuthor, LevelAdmin, false},
		{RoleEditor, LevelAuthor, true},
		{RoleEditor, LevelEditor, true},
		{RoleEditor, LevelAdmin, false},
		{RoleAdmin, LevelAuthor, true},
		{RoleAdmin, LevelEditor, true},
		{RoleAdmin, LevelAdmin, true},
		{RoleSubscriber, LevelSubscriber, true},
		{RoleSubscriber, LevelAuthor, false},
		{Role("root"), LevelNone, false},
		{Role(""), LevelSubscriber, false},
	}

	for _, tt := range tests {
		got := HasPrivilege(tt.role, tt.required)
		if got != tt.want {
			t.Fatalf("HasPrivilege(%q, %s) = %v, want %v", tt.role, tt.required, got, tt.want)
		}
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleSubscriber, RoleAuthor, RoleEditor, RoleAdmin} {
		if !r.Valid() {
			t.Fatalf("expected %q to be valid", r)
		}
	}

	if Role("Admin").Valid() {
		t.Fatalf("role names are case sensitive")
	}
}
