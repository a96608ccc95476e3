package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/migeprof/fehub/core/session"
)

func TestLinksFor(t *testing.T) {
	admin := LinksFor(session.RoleAdmin)
	agent := LinksFor(session.RoleFieldAgent)

	adminPaths := make([]string, 0, len(admin))
	for _, l := range admin {
		adminPaths = append(adminPaths, l.Path)
	}
	assert.Equal(t, []string{
		"/dashboard/admin",
		"/manage-field-agents",
		"/manage-programs",
		"/manage-families",
		"/update-content",
		"/manage-feedback",
		"/manage-attendance",
		"/view-reports",
	}, adminPaths)

	agentPaths := make([]string, 0, len(agent))
	for _, l := range agent {
		agentPaths = append(agentPaths, l.Path)
	}
	assert.Equal(t, []string{
		"/dashboard/field-agent",
		"/access-materials",
		"/register-families",
		"/track-attendance",
		"/submit-feedback",
	}, agentPaths)

	assert.Nil(t, LinksFor("supervisor"))
	assert.Nil(t, LinksFor(""))
}

func TestLinksFor_completeEntries(t *testing.T) {
	for _, role := range []string{session.RoleAdmin, session.RoleFieldAgent} {
		for _, l := range LinksFor(role) {
			assert.NotEmpty(t, l.Label, "link %q has no label", l.Path)
			assert.NotEmpty(t, l.Icon, "link %q has no icon", l.Path)
		}
	}
}

func TestActive(t *testing.T) {
	link := Link{Label: "Dashboard", Path: "/dashboard/admin"}

	assert.True(t, Active(link, "/dashboard/admin"))
	assert.False(t, Active(link, "/dashboard/admin/"))
	assert.False(t, Active(link, "/dashboard"))
	assert.False(t, Active(link, "/manage-programs"))
}
