// Package loader registers features on the Fiber application.
//
// Each feature implements Feature:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps features in registration order. LoadAll skips disabled
// features and returns the first load error, so a half-configured feature
// never serves routes.
package loader
