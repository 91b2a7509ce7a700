package traversal

// Optimizer rewrites the step list of a traversal before its first pull.
// Rewrites must not change the traversers the traversal produces and
// applying an optimizer twice must leave the steps as after the first
// application.
type Optimizer interface {
	// Name identifies the optimizer in the registry.
	Name() string

	// Optimize rewrites t in place through Traversal.ReplaceSteps.
	Optimize(t *Traversal) error
}

// Optimizers is the ordered set of optimizers applied to a traversal.
type Optimizers struct {
	list []Optimizer
}

// NewOptimizers returns an empty registry.
func NewOptimizers() *Optimizers {
	return &Optimizers{}
}

// Register adds opt, replacing a registered optimizer with the same name.
func (o *Optimizers) Register(opt Optimizer) {
	for i, existing := range o.list {
		if existing.Name() == opt.Name() {
			o.list[i] = opt

			return
		}
	}

	o.list = append(o.list, opt)
}

// Unregister removes the optimizer with the given name and reports
// whether it was registered.
func (o *Optimizers) Unregister(name string) bool {
	for i, existing := range o.list {
		if existing.Name() == name {
			o.list = append(o.list[:i], o.list[i+1:]...)

			return true
		}
	}

	return false
}

// Has reports whether an optimizer with the given name is registered.
func (o *Optimizers) Has(name string) bool {
	for _, existing := range o.list {
		if existing.Name() == name {
			return true
		}
	}

	return false
}

// List returns the registered optimizers in application order.
func (o *Optimizers) List() []Optimizer {
	return append([]Optimizer(nil), o.list...)
}
