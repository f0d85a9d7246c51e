package driver

import "prism/gfx"

// Registry holds the set of installed drivers, newest first.
//
// It is a single-owner structure: the caller serializes access, the
// registry does no locking of its own. Drivers stay registered for the
// life of the graphics stack; Unregister exists for shutdown and tests.
type Registry struct {
	drivers []Driver
	log     gfx.Logger
}

// NewRegistry returns an empty registry. A nil logger is replaced with
// the no-op logger.
func NewRegistry(log gfx.Logger) *Registry {
	if log == nil {
		log = gfx.NopLogger
	}
	return &Registry{log: log}
}

// Register installs d at the head of the list, so the most recently
// registered driver wins name lookups. Registering nil or the same
// driver twice returns ErrInvalidParameter.
func (r *Registry) Register(d Driver) error {
	if d == nil {
		return gfx.ErrInvalidParameter
	}
	for _, have := range r.drivers {
		if have == d {
			return gfx.ErrInvalidParameter
		}
	}
	r.drivers = append([]Driver{d}, r.drivers...)
	r.log.Infof("driver registered: %s %s", d.Name(), d.Version())
	return nil
}

// Unregister removes d by identity. Removing a driver that was never
// registered is a no-op.
func (r *Registry) Unregister(d Driver) {
	for i, have := range r.drivers {
		if have == d {
			r.drivers = append(r.drivers[:i], r.drivers[i+1:]...)
			r.log.Infof("driver unregistered: %s", d.Name())
			return
		}
	}
}

// Loaded reports whether d is currently registered.
func (r *Registry) Loaded(d Driver) bool {
	for _, have := range r.drivers {
		if have == d {
			return true
		}
	}
	return false
}

// Find returns the registered driver with the given name, or nil.
func (r *Registry) Find(name string) Driver {
	for _, d := range r.drivers {
		if d.Name() == name {
			return d
		}
	}
	return nil
}

// TextCapable returns the first registered driver advertising native
// text-mode support, or nil. This is the last resort of the matching
// policy: any text output beats a black screen.
func (r *Registry) TextCapable() Driver {
	for _, d := range r.drivers {
		if d.Caps().Has(CapTextMode) {
			return d
		}
	}
	return nil
}

// Drivers returns the registration list, newest first. The slice is a
// copy; the registry's own list is not exposed.
func (r *Registry) Drivers() []Driver {
	out := make([]Driver, len(r.drivers))
	copy(out, r.drivers)
	return out
}

// Len reports the number of registered drivers.
func (r *Registry) Len() int { return len(r.drivers) }
