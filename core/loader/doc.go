// Package loader provides the plugin-like feature loading system.
//
// Features (modules) register with a Manager and are mounted on the Fiber
// application at startup. Each feature implements the Feature interface.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager struct holds the registry of available features:
//   - Register() appends a feature; features load in registration order
//   - LoadAll() loads the enabled ones and stops at the first failure
//
// The only feature today is dirsync, which exposes the sync trigger.
package loader
