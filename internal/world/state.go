package world

import (
	"github.com/retrorpg/roguecore/internal/core/ecs"
	"go.uber.org/zap"
)

// State tracks every map, actor and encounter of a running game.
// Single-goroutine access only (tick loop).
type State struct {
	ecs        *ecs.World
	actors     *ecs.PtrComponentStore[Entity]
	maps       map[MapID]*Map
	lastMapID  MapID
	Encounters *EncounterManager
	log        *zap.Logger
}

func NewState(log *zap.Logger) *State {
	if log == nil {
		log = zap.NewNop()
	}
	s := &State{
		ecs:    ecs.NewWorld(),
		actors: ecs.NewPtrComponentStore[Entity](),
		maps:   make(map[MapID]*Map),
		log:    log,
	}
	s.ecs.Registry().Register(s.actors)
	s.Encounters = NewEncounterManager(s)
	return s
}

// ---------- maps ----------

// CreateMap allocates the next map ID. The first map created is WorldMapID.
func (s *State) CreateMap(width, height int32, parent MapID) *Map {
	s.lastMapID++
	m := NewMap(s.lastMapID, width, height, s.log)
	m.Parent = parent
	s.maps[m.ID] = m
	return m
}

func (s *State) Map(id MapID) *Map { return s.maps[id] }

func (s *State) MapCount() int { return len(s.maps) }

// ---------- actors ----------

// Register assigns e a fresh handle. It does not place e on a map.
func (s *State) Register(e *Entity) ecs.EntityID {
	id := s.ecs.CreateEntity()
	e.ID = id
	s.actors.Set(id, e)
	return id
}

// Spawn places e on m and registers it. A rejected placement returns
// NoEntity and allocates nothing.
func (s *State) Spawn(e *Entity, m *Map, x, y int32) ecs.EntityID {
	if !m.AddEntity(e, x, y) {
		return ecs.NoEntity
	}
	return s.Register(e)
}

// Entity implements EntityLookup. Stale handles resolve to nil.
func (s *State) Entity(id ecs.EntityID) *Entity {
	if !s.ecs.Alive(id) {
		return nil
	}
	e, _ := s.actors.Get(id)
	return e
}

// Despawn queues the handle for release at the end of the tick.
func (s *State) Despawn(id ecs.EntityID) {
	s.ecs.MarkForDestruction(id)
}

// FlushDespawned releases every queued handle and returns them.
func (s *State) FlushDespawned() []ecs.EntityID {
	return s.ecs.FlushDestroyQueue()
}

func (s *State) PendingDespawn() int { return s.ecs.PendingDestruction() }

// ActorCount returns the number of live handles.
func (s *State) ActorCount() int { return s.ecs.Pool().Len() }

// ClearTargetsOn drops id as a target from every actor that still holds it.
func (s *State) ClearTargetsOn(id ecs.EntityID) {
	s.actors.Each(func(_ ecs.EntityID, e *Entity) {
		if e.Target == id {
			e.Target = ecs.NoEntity
		}
	})
}
