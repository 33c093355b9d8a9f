package gallery

import "sync"

// Registry hands out one View per owner for the lifetime of their
// gallery session. Views hold no remote resources, so eviction is just
// forgetting the scope.
type Registry struct {
	svc Services

	mu    sync.Mutex
	views map[string]*View
}

func NewRegistry(svc Services) *Registry {
	return &Registry{
		svc:   svc,
		views: make(map[string]*View),
	}
}

// ViewFor returns the owner's view, creating one at root scope on
// first use.
func (r *Registry) ViewFor(owner string) *View {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.views[owner]; ok {
		return v
	}
	v := NewView(owner, r.svc)
	r.views[owner] = v
	return v
}

// Drop discards the owner's view, e.g. when the gallery is exited.
func (r *Registry) Drop(owner string) {
	r.mu.Lock()
	delete(r.views, owner)
	r.mu.Unlock()
}
