// Package nav maps a role to its fixed, ordered set of side-menu links.
// Role is the sole input; there is no dynamic permission composition.
package nav

import "github.com/migeprof/fehub/core/session"

type Link struct {
	Label string
	Path  string
	Icon  string
}

var adminLinks = []Link{
	{Label: "Dashboard", Path: "/dashboard/admin", Icon: "dashboard"},
	{Label: "Manage Field Agents", Path: "/manage-field-agents", Icon: "people"},
	{Label: "Manage Programs", Path: "/manage-programs", Icon: "track-changes"},
	{Label: "Manage Families", Path: "/manage-families", Icon: "group"},
	{Label: "Update Content", Path: "/update-content", Icon: "update"},
	{Label: "Manage Feedback", Path: "/manage-feedback", Icon: "feedback"},
	{Label: "Manage Attendance", Path: "/manage-attendance", Icon: "assignment"},
	{Label: "View Reports", Path: "/view-reports", Icon: "report"},
}

var fieldAgentLinks = []Link{
	{Label: "Dashboard", Path: "/dashboard/field-agent", Icon: "dashboard"},
	{Label: "Access Materials", Path: "/access-materials", Icon: "update"},
	{Label: "Register Families", Path: "/register-families", Icon: "people"},
	{Label: "Track Attendance", Path: "/track-attendance", Icon: "track-changes"},
	{Label: "Submit Feedback", Path: "/submit-feedback", Icon: "feedback"},
}

// LinksFor returns the menu for a role. Callers must not mutate the result.
func LinksFor(role string) []Link {
	switch role {
	case session.RoleAdmin:
		return adminLinks
	case session.RoleFieldAgent:
		return fieldAgentLinks
	}
	return nil
}

// Active reports whether a link matches the current location; matching is an
// exact string comparison.
func Active(l Link, currentPath string) bool {
	return l.Path == currentPath
}
