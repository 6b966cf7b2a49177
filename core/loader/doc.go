// Package loader mounts feature modules on the admin API.
//
// Each feature implements Feature; the Manager loads the enabled ones in
// registration order:
//
//	mgr := loader.NewManager()
//	mgr.Register(resources.NewFeature(svc, logg))
//	err := mgr.LoadAll(app)
package loader
