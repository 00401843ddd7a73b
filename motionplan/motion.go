package motionplan

// Motion is a single node of a planner's exploration tree: a configuration
// and a back-reference to the motion it grew from. parent is nil only for
// root motions seeded directly from a start state. Motions are exclusively
// owned by the tree that created them and are never mutated after
// insertion, other than through the state slice they hold (which is never
// aliased with another motion's).
type Motion struct {
	State  State
	Parent *Motion
}

// newMotion allocates a Motion whose state is an independent copy of s.
func newMotion(s State) *Motion {
	return &Motion{State: s.Clone()}
}

// path walks parent pointers from m to the root and returns the states in
// root-to-m order.
func path(m *Motion) []State {
	var rev []State
	for cur := m; cur != nil; cur = cur.Parent {
		rev = append(rev, cur.State)
	}
	out := make([]State, len(rev))
	for i, s := range rev {
		out[len(rev)-1-i] = s.Clone()
	}
	return out
}
