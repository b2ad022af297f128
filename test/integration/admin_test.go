package integration

import (
	"context"
	"testing"

	"github.com/healthdesk/healthdesk/internal/domain/admin"
	"github.com/healthdesk/healthdesk/internal/platform/rest"
	"github.com/healthdesk/healthdesk/internal/session"
	"github.com/healthdesk/healthdesk/internal/view"
)

func TestAdminAccountFlow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := admin.NewService(e.api)

	// A plain user is locked out of admin management entirely.
	user := e.signIn(t, "alice@example.com", "pw-alice")
	if view.CanEnter(user.Role, view.AreaAdmins) {
		t.Fatal("user role must not enter admin management")
	}
	if _, err := svc.List(ctx); err == nil {
		t.Fatal("backend should also reject the user")
	}

	root := e.signIn(t, "root@example.com", "pw-root")
	if root.Role != session.RoleSuperAdmin {
		t.Fatalf("role = %s", root.Role)
	}
	if !view.CanEnter(root.Role, view.AreaAdmins) {
		t.Fatal("super admin enters admin management")
	}

	created, err := svc.Create(ctx, admin.AccountCreate{
		Email: "ops@example.com", Name: "Ops", Phone: "555-0150", Password: "pw-ops",
	})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if created.Role != session.RoleAdmin {
		t.Errorf("provisioned role = %s", created.Role)
	}

	accounts, err := svc.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	// root plus the new admin
	if len(accounts) != 2 {
		t.Errorf("accounts = %d, want 2", len(accounts))
	}

	// The new admin can sign in but cannot provision further admins.
	e.signIn(t, "ops@example.com", "pw-ops")
	_, err = svc.Create(ctx, admin.AccountCreate{
		Email: "more@example.com", Name: "More", Password: "pw-more",
	})
	if err == nil {
		t.Fatal("admins must not provision admins")
	}
	if rest.Detail(err, "fallback") != "Super admin access required" {
		t.Errorf("detail = %q", rest.Detail(err, "fallback"))
	}
}
