/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package routing

import (
	"path"
	"strings"

	"banglapay-wallet-go/internal/models"
	"banglapay-wallet-go/internal/session"
)

type Kind int

const (
	Render Kind = iota
	Redirect
)

func (k Kind) String() string {
	if k == Redirect {
		return "redirect"
	}
	return "render"
}

type View string

const (
	ViewHome     View = "home"
	ViewAbout    View = "about"
	ViewFeatures View = "features"
	ViewContact  View = "contact"
	ViewFAQ      View = "faq"
	ViewLogin    View = "login"
	ViewRegister View = "register"
	ViewUser     View = "user-dashboard"
	ViewAgent    View = "agent-dashboard"
	ViewAdmin    View = "admin-dashboard"
)

const (
	PathHome  = "/"
	PathLogin = "/login"
)

// Decision is the outcome of one navigation. Exactly one of View (Render)
// or Target (Redirect) is set.
type Decision struct {
	Kind   Kind
	View   View
	Target string
	// Section is the part of a dashboard path after the role prefix, e.g.
	// "profile" for /agent/profile.
	Section string
}

func render(v View, section string) Decision {
	return Decision{Kind: Render, View: v, Section: section}
}

func redirect(target string) Decision {
	return Decision{Kind: Redirect, Target: target}
}

var publicViews = map[string]View{
	"/":         ViewHome,
	"/about":    ViewAbout,
	"/features": ViewFeatures,
	"/contact":  ViewContact,
	"/faq":      ViewFAQ,
}

var authViews = map[string]View{
	"/login":    ViewLogin,
	"/register": ViewRegister,
}

var dashboardViews = map[models.Role]View{
	models.RoleUser:  ViewUser,
	models.RoleAgent: ViewAgent,
	models.RoleAdmin: ViewAdmin,
}

// Resolve decides what a navigation to requested shows for the session s.
// It is total: every input yields one Render or one Redirect.
func Resolve(s session.Snapshot, requested string) Decision {
	p := normalize(requested)

	if v, ok := publicViews[p]; ok {
		return render(v, "")
	}

	if v, ok := authViews[p]; ok {
		if s.Authenticated() {
			return redirect(s.Role().Home())
		}
		return render(v, "")
	}

	if role, section, ok := protected(p); ok {
		if !s.Authenticated() || s.Role() != role {
			return redirect(PathLogin)
		}
		return render(dashboardViews[role], section)
	}

	return redirect(PathHome)
}

func protected(p string) (models.Role, string, bool) {
	trimmed := strings.TrimPrefix(p, "/")
	head, section, _ := strings.Cut(trimmed, "/")
	role := models.Role(head)
	if _, ok := dashboardViews[role]; !ok {
		return "", "", false
	}
	return role, section, true
}

func normalize(requested string) string {
	p, _, _ := strings.Cut(requested, "?")
	p, _, _ = strings.Cut(p, "#")
	if p == "" {
		return PathHome
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
