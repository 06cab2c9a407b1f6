package models

import "fmt"

// EntityType tags the kind of row an EntityRef points at.
type EntityType string

const (
	EntityIntern  EntityType = "INTERN"
	EntityProject EntityType = "PROJECT"
	EntityTask    EntityType = "TASK"
)

// Valid reports whether the type is one of the referenceable kinds.
func (t EntityType) Valid() bool {
	switch t {
	case EntityIntern, EntityProject, EntityTask:
		return true
	}
	return false
}

// EntityRef is a tagged reference to one of the referenceable entity kinds.
// It replaces the loose (entity_type string, entity_id number) pair: the only
// way to build one is through the typed constructors, so a ref can never carry
// an id from the wrong numbering space.
type EntityRef struct {
	kind EntityType
	id   int64
}

// InternRef builds a reference to an intern profile row.
func InternRef(id InternID) EntityRef {
	return EntityRef{kind: EntityIntern, id: int64(id)}
}

// ProjectRef builds a reference to a project row.
func ProjectRef(id ProjectID) EntityRef {
	return EntityRef{kind: EntityProject, id: int64(id)}
}

// TaskRef builds a reference to a task row.
func TaskRef(id TaskID) EntityRef {
	return EntityRef{kind: EntityTask, id: int64(id)}
}

// ParseEntityRef rebuilds a ref from its stored (type, id) columns.
func ParseEntityRef(kind EntityType, id int64) (EntityRef, error) {
	if !kind.Valid() {
		return EntityRef{}, fmt.Errorf("unknown entity type %q", kind)
	}
	if id <= 0 {
		return EntityRef{}, fmt.Errorf("invalid entity id %d", id)
	}
	return EntityRef{kind: kind, id: id}, nil
}

// Kind returns the tagged entity type.
func (r EntityRef) Kind() EntityType { return r.kind }

// RawID returns the untyped id for persistence.
func (r EntityRef) RawID() int64 { return r.id }

// IsZero reports whether the ref was never set.
func (r EntityRef) IsZero() bool { return r.kind == "" }

func (r EntityRef) String() string {
	return fmt.Sprintf("%s/%d", r.kind, r.id)
}
