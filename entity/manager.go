// Package entity owns entity identity and storage. All placement, movement
// and removal of entity instances goes through the Manager; tools never
// append to the scene's entity list directly.
package entity

import "github.com/milk9111/leveledit/level"

// Move pairs an entity id with an absolute target position.
type Move struct {
	ID int
	X  float64
	Y  float64
}

// Manager is the single source of truth for entity identity within a scene.
type Manager struct {
	scene  *level.Scene
	nextID int
}

func NewManager(scene *level.Scene) *Manager {
	m := &Manager{scene: scene, nextID: 1}
	for _, e := range scene.Entities {
		if e.ID >= m.nextID {
			m.nextID = e.ID + 1
		}
	}
	return m
}

// Entity returns the instance with the given id, or nil.
func (m *Manager) Entity(id int) *level.EntityInstance {
	for _, e := range m.scene.Entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Entities returns the instances for the given ids, skipping unknown ids.
func (m *Manager) Entities(ids []int) []*level.EntityInstance {
	out := make([]*level.EntityInstance, 0, len(ids))
	for _, id := range ids {
		if e := m.Entity(id); e != nil {
			out = append(out, e)
		}
	}
	return out
}

// All returns the scene's entity list in placement order.
func (m *Manager) All() []*level.EntityInstance {
	return m.scene.Entities
}

// Add places a new entity of the given type at (x,y) and assigns it a fresh
// id.
func (m *Manager) Add(entityType string, x, y float64) *level.EntityInstance {
	inst := &level.EntityInstance{ID: m.nextID, Type: entityType, X: x, Y: y}
	m.nextID++
	m.scene.Entities = append(m.scene.Entities, inst)
	return inst
}

// AddInstance re-inserts an instance that already carries an id, typically
// when undoing a removal or redoing a duplicate. Existing ids are kept
// stable; the id counter advances past them.
func (m *Manager) AddInstance(inst *level.EntityInstance) {
	if inst == nil || m.Entity(inst.ID) != nil {
		return
	}
	if inst.ID >= m.nextID {
		m.nextID = inst.ID + 1
	}
	m.scene.Entities = append(m.scene.Entities, inst)
}

// MoveMany applies absolute positions to the given entities. Unknown ids
// are skipped.
func (m *Manager) MoveMany(moves []Move) {
	for _, mv := range moves {
		if e := m.Entity(mv.ID); e != nil {
			e.X = mv.X
			e.Y = mv.Y
		}
	}
}

// RemoveMany deletes the given entities and returns the removed instances
// in their original placement order.
func (m *Manager) RemoveMany(ids []int) []*level.EntityInstance {
	drop := make(map[int]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	var removed []*level.EntityInstance
	kept := m.scene.Entities[:0]
	for _, e := range m.scene.Entities {
		if drop[e.ID] {
			removed = append(removed, e)
		} else {
			kept = append(kept, e)
		}
	}
	m.scene.Entities = kept
	return removed
}

// DuplicateMany clones the given entities offset by (dx,dy), assigning
// fresh ids. Returns the copies in the order of the input ids.
func (m *Manager) DuplicateMany(ids []int, dx, dy float64) []*level.EntityInstance {
	copies := make([]*level.EntityInstance, 0, len(ids))
	for _, id := range ids {
		src := m.Entity(id)
		if src == nil {
			continue
		}
		c := src.Clone()
		c.ID = m.nextID
		m.nextID++
		c.X += dx
		c.Y += dy
		m.scene.Entities = append(m.scene.Entities, c)
		copies = append(copies, c)
	}
	return copies
}
