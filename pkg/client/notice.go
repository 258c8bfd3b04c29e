package client

// Level is the severity of a user-facing notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarn    Level = "warn"
	LevelError   Level = "error"
)

// Notice is a user-facing message emitted as a side effect of an API call.
type Notice struct {
	Level Level
	Text  string
}

// Notifier displays notices. Implementations must not block for long; calls
// are fire-and-forget and never affect the outcome of the request.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// Route is a navigation target the UI maps to a view.
type Route string

const (
	RouteHome  Route = "/"
	RouteLogin Route = "/login"
)

// Navigator switches the UI to a route. Fire-and-forget, like Notifier.
type Navigator interface {
	Navigate(Route)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(Route)

func (f NavigatorFunc) Navigate(r Route) { f(r) }

type discard struct{}

func (discard) Notify(Notice)   {}
func (discard) Navigate(Route) {}

// Notice texts shown for failures the wrapper classifies itself.
const (
	msgRequestFailed = "request failed"
	msgUnauthorized  = "unauthorized, please log in again"
	msgForbidden     = "access denied"
	msgNotFound      = "requested resource does not exist"
	msgServerError   = "internal server error"
	msgNetwork       = "network error, please check your connection"
	msgRequestConfig = "request configuration error"
)
