package world

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/retrorpg/roguecore/internal/core/ecs"
)

// SectorCount is the number of facing sectors on the combat widget.
// Sector 0 points up, numbering runs clockwise.
const SectorCount = 5

// NoSector is what the facing widget reports when the pointer is outside it.
const NoSector = SectorCount

// ArmorSlotForSector maps the attacker's facing to the defender's armour
// piece that absorbs the hit.
func ArmorSlotForSector(sector int) Slot {
	switch sector {
	case 0:
		return SlotHead
	case 1, 4:
		return SlotChest
	case 2, 3:
		return SlotLegs
	}
	return SlotNone
}

// SectorFromVector maps a pointer offset (screen coordinates, y down) from
// the widget centre to a sector.
func SectorFromVector(dx, dy float64) int {
	angle := math.Atan2(dy, dx)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	width := 2 * math.Pi / SectorCount
	adjusted := angle + math.Pi/2 + width/2
	if adjusted > 2*math.Pi {
		adjusted -= 2 * math.Pi
	}
	return int(adjusted/width) % SectorCount
}

// Fight is one encounter: its members and where each of them faces.
type Fight struct {
	ID              int32
	Members         []ecs.EntityID // join order
	Facings         map[ecs.EntityID]int
	NextEnemyAttack time.Duration // shared gate for all NPC attacks in this fight
}

func (f *Fight) Has(id ecs.EntityID) bool {
	_, ok := f.Facings[id]
	return ok
}

// Facing returns the member's sector.
func (f *Fight) Facing(id ecs.EntityID) (int, bool) {
	s, ok := f.Facings[id]
	return s, ok
}

// Active is false once the fight has one member or fewer.
func (f *Fight) Active() bool { return len(f.Members) > 1 }

// EntityLookup resolves live entities; State implements it.
type EntityLookup interface {
	Entity(id ecs.EntityID) *Entity
}

// EncounterManager owns every active fight.
type EncounterManager struct {
	fights    map[int32]*Fight
	memberOf  map[ecs.EntityID]int32 // entity → fight ID
	nextID    int32
	lookup    EntityLookup
	dissolved []int32
}

func NewEncounterManager(lookup EntityLookup) *EncounterManager {
	return &EncounterManager{
		fights:   make(map[int32]*Fight),
		memberOf: make(map[ecs.EntityID]int32),
		lookup:   lookup,
	}
}

// Create opens an empty fight.
func (m *EncounterManager) Create() *Fight {
	m.nextID++
	f := &Fight{ID: m.nextID, Facings: make(map[ecs.EntityID]int)}
	m.fights[f.ID] = f
	return f
}

func (m *EncounterManager) Get(id int32) *Fight { return m.fights[id] }

// FightOf returns the fight an entity belongs to, or nil.
func (m *EncounterManager) FightOf(id ecs.EntityID) *Fight {
	fid, ok := m.memberOf[id]
	if !ok {
		return nil
	}
	return m.fights[fid]
}

// All returns active fights ordered by ID.
func (m *EncounterManager) All() []*Fight {
	out := make([]*Fight, 0, len(m.fights))
	for _, f := range m.fights {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *EncounterManager) Count() int { return len(m.fights) }

// AddMember appends e when absent. NPCs get a random facing, the player
// starts facing up.
func (m *EncounterManager) AddMember(f *Fight, e *Entity, rng *rand.Rand) {
	if f.Has(e.ID) {
		return
	}
	f.Members = append(f.Members, e.ID)
	facing := 0
	if !e.IsPlayer() {
		facing = rng.Intn(SectorCount)
	}
	f.Facings[e.ID] = facing
	m.memberOf[e.ID] = f.ID
	e.InFight = true
	e.FightID = f.ID
}

// RemoveMember drops id from f and clears the entity's fight state, then
// dissolves f if one member or fewer remain. Returns true on dissolution.
func (m *EncounterManager) RemoveMember(f *Fight, id ecs.EntityID) bool {
	if !f.Has(id) {
		return false
	}
	for i, mid := range f.Members {
		if mid == id {
			f.Members = append(f.Members[:i], f.Members[i+1:]...)
			break
		}
	}
	delete(f.Facings, id)
	delete(m.memberOf, id)
	if e := m.lookup.Entity(id); e != nil {
		clearFightState(e)
	}
	return m.checkActive(f)
}

// PruneByDistance removes every non-player member that is on another map or
// further than maxDist from the player on either axis. Returns true when the
// fight dissolved as a result.
func (m *EncounterManager) PruneByDistance(f *Fight, player *Entity, maxDist int32) bool {
	snapshot := append([]ecs.EntityID(nil), f.Members...)
	for _, id := range snapshot {
		if id == player.ID {
			continue
		}
		e := m.lookup.Entity(id)
		if e == nil || e.MapID != player.MapID || !e.ChebyshevWithin(player, maxDist) {
			if m.RemoveMember(f, id) {
				return true
			}
		}
	}
	return false
}

// SetPlayerFacing ignores sectors outside 0..4, which the widget uses for
// "pointer not over me".
func (m *EncounterManager) SetPlayerFacing(f *Fight, playerID ecs.EntityID, sector int) bool {
	if sector < 0 || sector >= SectorCount || !f.Has(playerID) {
		return false
	}
	f.Facings[playerID] = sector
	return true
}

// SetFacing turns any member.
func (m *EncounterManager) SetFacing(f *Fight, id ecs.EntityID, sector int) {
	if f.Has(id) && sector >= 0 && sector < SectorCount {
		f.Facings[id] = sector
	}
}

func (m *EncounterManager) checkActive(f *Fight) bool {
	if f.Active() {
		return false
	}
	m.dissolve(f)
	return true
}

func (m *EncounterManager) dissolve(f *Fight) {
	for _, id := range f.Members {
		delete(m.memberOf, id)
		if e := m.lookup.Entity(id); e != nil {
			clearFightState(e)
		}
	}
	f.Members = nil
	f.Facings = make(map[ecs.EntityID]int)
	delete(m.fights, f.ID)
	m.dissolved = append(m.dissolved, f.ID)
}

// TakeDissolved returns the IDs of fights dissolved since the last call.
func (m *EncounterManager) TakeDissolved() []int32 {
	out := m.dissolved
	m.dissolved = nil
	return out
}

func clearFightState(e *Entity) {
	e.InFight = false
	e.Target = ecs.NoEntity
	e.FightID = 0
}

// ArrowColors colours the five facing sectors as the player sees them:
// enemy facings red (bright red for the player's target), the player's own
// facing blue, or purple where it meets an enemy facing.
func (f *Fight) ArrowColors(player *Entity) [SectorCount]Color {
	var colors [SectorCount]Color
	for i := range colors {
		colors[i] = White
	}
	for _, id := range f.Members {
		if id == player.ID {
			continue
		}
		s := f.Facings[id]
		if id == player.Target {
			colors[s] = BrightRed
		} else {
			colors[s] = Red
		}
	}
	if s, ok := f.Facings[player.ID]; ok {
		if colors[s] == Red || colors[s] == BrightRed {
			colors[s] = Purple
		} else {
			colors[s] = Blue
		}
	}
	return colors
}
