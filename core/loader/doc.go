// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface, which names it, says whether
// it is enabled and registers its routes.
//
// # Manager
//
// The Manager struct holds the registry of available features. It handles:
//   - Registration of features via Register()
//   - Loading of enabled features via LoadAll()
//
// # Usage
//
//	mgr := loader.NewManager()
//	mgr.Register(audit.NewFeature(svc, history))
//	loaded, err := mgr.LoadAll(app)
package loader
