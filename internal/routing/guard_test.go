package routing

import (
	"testing"

	"banglapay-wallet-go/internal/models"
	"banglapay-wallet-go/internal/session"
)

func anonymous() session.Snapshot {
	return session.Snapshot{}
}

func signedIn(role models.Role) session.Snapshot {
	return session.Snapshot{
		User:       &models.Principal{Id: "p1", Name: "Test", Role: role},
		Token:      "tok",
		Generation: 1,
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		session session.Snapshot
		path    string
		want    Decision
	}{
		{"anonymous admin", anonymous(), "/admin", redirect("/login")},
		{"anonymous user subpage", anonymous(), "/user/send-money", redirect("/login")},
		{"agent on login", signedIn(models.RoleAgent), "/login", redirect("/agent")},
		{"admin on register", signedIn(models.RoleAdmin), "/register", redirect("/admin")},
		{"anonymous login", anonymous(), "/login", render(ViewLogin, "")},
		{"anonymous register", anonymous(), "/register?ref=home", render(ViewRegister, "")},
		{"user on admin", signedIn(models.RoleUser), "/admin/users", redirect("/login")},
		{"agent on user", signedIn(models.RoleAgent), "/user", redirect("/login")},
		{"user home", signedIn(models.RoleUser), "/user", render(ViewUser, "")},
		{"user trailing slash", signedIn(models.RoleUser), "/user/", render(ViewUser, "")},
		{"agent profile", signedIn(models.RoleAgent), "/agent/profile", render(ViewAgent, "profile")},
		{"admin nested", signedIn(models.RoleAdmin), "/admin/users/42", render(ViewAdmin, "users/42")},
		{"public while signed in", signedIn(models.RoleUser), "/faq", render(ViewFAQ, "")},
		{"public anonymous", anonymous(), "/", render(ViewHome, "")},
		{"empty path", anonymous(), "", render(ViewHome, "")},
		{"unknown", anonymous(), "/nowhere", redirect("/")},
		{"unknown signed in", signedIn(models.RoleAdmin), "/users", redirect("/")},
		{"prefix lookalike", signedIn(models.RoleUser), "/username", redirect("/")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.session, tt.path); got != tt.want {
				t.Errorf("Resolve(%q) = %+v, want %+v", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolveIsTotal(t *testing.T) {
	sessions := []session.Snapshot{
		anonymous(),
		signedIn(models.RoleUser),
		signedIn(models.RoleAgent),
		signedIn(models.RoleAdmin),
	}
	paths := []string{
		"", "/", "/about", "/features", "/contact", "/faq", "/login", "/register",
		"/user", "/user/x", "/agent", "/agent/x/y", "/admin", "/admin/", "/x", "//", "/../admin",
		"about", "/login#top",
	}

	for _, s := range sessions {
		for _, p := range paths {
			d := Resolve(s, p)
			switch d.Kind {
			case Render:
				if d.View == "" || d.Target != "" {
					t.Errorf("Resolve(%v, %q) render = %+v", s.Role(), p, d)
				}
			case Redirect:
				if d.Target == "" || d.View != "" {
					t.Errorf("Resolve(%v, %q) redirect = %+v", s.Role(), p, d)
				}
			default:
				t.Errorf("Resolve(%v, %q) kind = %v", s.Role(), p, d.Kind)
			}
		}
	}
}
