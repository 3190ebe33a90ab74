package ecs

// World owns the handle pool, the component registry, and a deferred
// destruction queue flushed by the cleanup system at the end of each tick.
// Deferring keeps handles valid while the rest of the tick still iterates
// snapshots that may contain them.
type World struct {
	pool         *EntityPool
	registry     *Registry
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 16),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// MarkForDestruction queues an entity for end-of-tick cleanup.
func (w *World) MarkForDestruction(id EntityID) {
	for _, q := range w.destroyQueue {
		if q == id {
			return
		}
	}
	w.destroyQueue = append(w.destroyQueue, id)
}

// PendingDestruction reports how many handles wait for the next flush.
func (w *World) PendingDestruction() int {
	return len(w.destroyQueue)
}

// FlushDestroyQueue destroys all queued entities and clears their components.
func (w *World) FlushDestroyQueue() []EntityID {
	if len(w.destroyQueue) == 0 {
		return nil
	}
	flushed := make([]EntityID, len(w.destroyQueue))
	copy(flushed, w.destroyQueue)
	for _, id := range w.destroyQueue {
		w.registry.RemoveAll(id)
		w.pool.Destroy(id)
	}
	w.destroyQueue = w.destroyQueue[:0]
	return flushed
}
