package agent

// Linkage variants (spec §4.2): Independent agents own no children;
// Single-linkage agents own exactly one (validated at Init, see
// Base.RequireSingleDep); Multiple-linkage agents own an ordered list
// traversed in insertion order. These are plain constructors, not types —
// Go has no linkage-policy mix-in to replace; composition (a plain []Agent
// field) does the whole job, per spec §9's re-architecture note.

// Independent returns an empty dependency list.
func Independent() []Agent { return nil }

// Single returns a one-element dependency list for a Single-linkage agent.
// Pass nil if the child is not yet known; call Base.RequireSingleDep so
// Init refuses with ErrNotConfigured if it's still nil by then.
func Single(child Agent) []Agent {
	return []Agent{child}
}

// Multiple returns an ordered dependency list for a Multiple-linkage agent.
func Multiple(children ...Agent) []Agent {
	return children
}
