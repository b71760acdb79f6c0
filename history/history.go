// Package history implements the undo/redo stack. Tools record operations
// after applying them; Undo and Redo replay the recorded closures. Grouped
// pushes collapse into one composite operation so a whole drag gesture
// undoes as a single step.
package history

// Operation is one reversible unit. Execute and Undo must be idempotent
// under repeated undo/redo cycling: both sides write absolute values, never
// relative ones.
type Operation struct {
	ID          int
	Type        string
	Description string
	Execute     func()
	Undo        func()
}

// Manager owns the undo and redo stacks. Push records an operation that has
// already been applied; it does not call Execute.
type Manager struct {
	undo    []*Operation
	redo    []*Operation
	group   []*Operation
	label   string
	depth   int
	nextID  int
	maxUndo int
}

func NewManager() *Manager {
	return &Manager{maxUndo: 100}
}

// Push records an already-applied operation. While a group is open the
// operation joins the group instead of landing on the stack. Any redo
// history is discarded.
func (m *Manager) Push(op *Operation) {
	if op == nil {
		return
	}
	m.nextID++
	op.ID = m.nextID
	if m.depth > 0 {
		m.group = append(m.group, op)
		return
	}
	m.push(op)
}

func (m *Manager) push(op *Operation) {
	if len(m.undo) >= m.maxUndo {
		m.undo = m.undo[1:]
	}
	m.undo = append(m.undo, op)
	m.redo = nil
}

// BeginGroup opens an undo group. Calls nest; only the outermost EndGroup
// commits. Begin/End must always be paired, even for gestures that end up
// changing nothing.
func (m *Manager) BeginGroup(label string) {
	if m.depth == 0 {
		m.label = label
		m.group = nil
	}
	m.depth++
}

// EndGroup closes the current group. An empty group leaves the stacks
// untouched; a group of one is pushed directly.
func (m *Manager) EndGroup() {
	if m.depth == 0 {
		return
	}
	m.depth--
	if m.depth > 0 {
		return
	}
	ops := m.group
	m.group = nil
	switch len(ops) {
	case 0:
	case 1:
		m.push(ops[0])
	default:
		m.nextID++
		m.push(&Operation{
			ID:          m.nextID,
			Type:        "group",
			Description: m.label,
			Execute: func() {
				for _, op := range ops {
					op.Execute()
				}
			},
			Undo: func() {
				for i := len(ops) - 1; i >= 0; i-- {
					ops[i].Undo()
				}
			},
		})
	}
}

// Undo reverts the most recent operation. Returns false when there is
// nothing to undo.
func (m *Manager) Undo() bool {
	if len(m.undo) == 0 {
		return false
	}
	op := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	op.Undo()
	m.redo = append(m.redo, op)
	return true
}

// Redo re-applies the most recently undone operation.
func (m *Manager) Redo() bool {
	if len(m.redo) == 0 {
		return false
	}
	op := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	op.Execute()
	m.undo = append(m.undo, op)
	return true
}

func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// Depth reports how many operations sit on the undo stack.
func (m *Manager) Depth() int { return len(m.undo) }
