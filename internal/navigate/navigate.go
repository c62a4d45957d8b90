package navigate

import (
	"github.com/queuedesk/queuedesk-go/internal/session"
)

// Navigator is the navigation capability injected into the session broker.
//
// After a cascading teardown the broker sends the user to the login surface
// for their user type. NavigateTo is the primary mechanism; when it is
// unavailable or fails, SetLocation performs a hard redirect to a path.
type Navigator interface {
	// NavigateTo routes to a named destination, optionally replacing the
	// current history entry.
	NavigateTo(route string, replace bool) error

	// SetLocation performs a hard redirect to the given path.
	SetLocation(path string)
}

// Named routes and their hard-redirect fallback paths
const (
	RouteRoot          = "root"
	RouteBusinessLogin = "business-login"
	RouteMasterLogin   = "master-login"

	PathRoot          = "/"
	PathBusinessLogin = "/business/login"
	PathMasterLogin   = "/master/login"
)

// LoginRoute maps a user type to its post-teardown login destination.
// Business users return to the business login, masters to the master
// login, everyone else to the root.
func LoginRoute(userType session.UserType) (route string, path string) {
	switch userType {
	case session.UserTypeBusiness:
		return RouteBusinessLogin, PathBusinessLogin
	case session.UserTypeMaster:
		return RouteMasterLogin, PathMasterLogin
	default:
		return RouteRoot, PathRoot
	}
}

// Func adapts plain functions to the Navigator interface
type Func struct {
	NavigateToFunc  func(route string, replace bool) error
	SetLocationFunc func(path string)
}

// NavigateTo calls NavigateToFunc if set
func (f Func) NavigateTo(route string, replace bool) error {
	if f.NavigateToFunc == nil {
		return nil
	}
	return f.NavigateToFunc(route, replace)
}

// SetLocation calls SetLocationFunc if set
func (f Func) SetLocation(path string) {
	if f.SetLocationFunc == nil {
		return
	}
	f.SetLocationFunc(path)
}

// Nop is a Navigator that goes nowhere. The CLI uses it: there is no
// navigation surface in a terminal, the teardown's session reset is what
// matters there.
type Nop struct{}

// NavigateTo does nothing
func (Nop) NavigateTo(route string, replace bool) error { return nil }

// SetLocation does nothing
func (Nop) SetLocation(path string) {}
