package navigate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/queuedesk/queuedesk-go/internal/session"
)

func TestLoginRoute(t *testing.T) {
	tests := []struct {
		userType  session.UserType
		wantRoute string
		wantPath  string
	}{
		{session.UserTypeBusiness, RouteBusinessLogin, PathBusinessLogin},
		{session.UserTypeMaster, RouteMasterLogin, PathMasterLogin},
		{session.UserTypeCollaborator, RouteRoot, PathRoot},
		{session.UserTypeInvited, RouteRoot, PathRoot},
		{session.UserType("unknown"), RouteRoot, PathRoot},
	}

	for _, tt := range tests {
		t.Run(string(tt.userType), func(t *testing.T) {
			route, path := LoginRoute(tt.userType)
			assert.Equal(t, tt.wantRoute, route)
			assert.Equal(t, tt.wantPath, path)
		})
	}
}

func TestFuncNavigator(t *testing.T) {
	var gotRoute string
	var gotReplace bool
	var gotPath string

	nav := Func{
		NavigateToFunc: func(route string, replace bool) error {
			gotRoute = route
			gotReplace = replace
			return nil
		},
		SetLocationFunc: func(path string) {
			gotPath = path
		},
	}

	assert.NoError(t, nav.NavigateTo(RouteBusinessLogin, true))
	assert.Equal(t, RouteBusinessLogin, gotRoute)
	assert.True(t, gotReplace)

	nav.SetLocation(PathMasterLogin)
	assert.Equal(t, PathMasterLogin, gotPath)
}

func TestFuncNavigatorNilFuncs(t *testing.T) {
	nav := Func{}
	assert.NoError(t, nav.NavigateTo(RouteRoot, false))
	nav.SetLocation(PathRoot) // must not panic
}
