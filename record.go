package lazyframe

// Record binds a placeholder element to its resolved settings and build state.
type Record struct {
	Target   Element
	Settings Settings

	// Frame is the built iframe, nil until the record has been built.
	Frame *Frame

	// Initialized is set once the visibility (or immediate) pipeline ran.
	Initialized bool

	// Activated is set once the frame has been attached by a click.
	Activated bool
}
