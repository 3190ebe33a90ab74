package world

// Kind is the closed set of things that can sit in a cell.
type Kind uint8

const (
	KindTerrain Kind = iota
	KindEntity
	KindChest
	KindPile
	KindSubArea
)

func (k Kind) String() string {
	switch k {
	case KindTerrain:
		return "terrain"
	case KindEntity:
		return "entity"
	case KindChest:
		return "chest"
	case KindPile:
		return "pile"
	case KindSubArea:
		return "subarea"
	}
	return "unknown"
}

// Placeable is anything a Cell can hold. Cells compare placeables by
// identity, so implementations are always used through pointers.
type Placeable interface {
	Kind() Kind
	Priority() int
	Passable() bool
	Glyph() Glyph
}

// Positioned placeables carry their own coordinates (see Map.PlaceAtOwn).
type Positioned interface {
	Placeable
	Position() Point
}

// ---------- terrain ----------

type TerrainType uint8

const (
	TerrainPlain TerrainType = iota
	TerrainWall
	TerrainDoor
	TerrainTree
	TerrainForest
	TerrainForestDirt
	TerrainVillage
)

type terrainInfo struct {
	name     string
	symbol   rune
	priority int
	passable bool
	color    Color
}

var terrainTable = [...]terrainInfo{
	TerrainPlain:      {"plain", '.', 9, true, Green},
	TerrainWall:       {"wall", '#', 1, false, Grey},
	TerrainDoor:       {"door", '[', 2, true, Brown},
	TerrainTree:       {"tree", 'o', 1, false, TreeGreen},
	TerrainForest:     {"forest", 'F', 2, true, ForestGreen},
	TerrainForestDirt: {"forest dirt", ' ', 5, true, White},
	TerrainVillage:    {"village", 'V', 1, true, Brown},
}

func (t TerrainType) String() string {
	if int(t) < len(terrainTable) {
		return terrainTable[t].name
	}
	return "unknown"
}

// Terrain is a static ground feature. Houses is only meaningful for villages.
type Terrain struct {
	Type   TerrainType
	Houses int
}

func NewTerrain(t TerrainType) *Terrain { return &Terrain{Type: t} }

func NewVillage(houses int) *Terrain {
	return &Terrain{Type: TerrainVillage, Houses: houses}
}

func (t *Terrain) Kind() Kind     { return KindTerrain }
func (t *Terrain) Priority() int  { return terrainTable[t.Type].priority }
func (t *Terrain) Passable() bool { return terrainTable[t.Type].passable }
func (t *Terrain) Glyph() Glyph {
	info := terrainTable[t.Type]
	return Glyph{Symbol: info.symbol, Color: info.color}
}

// ---------- containers ----------

// Container is a chest or a loot pile. Both hold items and never block.
type Container struct {
	kind  Kind
	X, Y  int32
	Items []*Item
}

func NewChest(x, y int32) *Container { return &Container{kind: KindChest, X: x, Y: y} }
func NewPile(x, y int32) *Container  { return &Container{kind: KindPile, X: x, Y: y} }

func (c *Container) Kind() Kind      { return c.kind }
func (c *Container) Priority() int   { return 2 }
func (c *Container) Passable() bool  { return true }
func (c *Container) Glyph() Glyph    { return Glyph{Symbol: c.symbol(), Color: Gold} }
func (c *Container) Position() Point { return Point{c.X, c.Y} }

func (c *Container) symbol() rune {
	if c.kind == KindChest {
		return 'C'
	}
	return 'P'
}

func (c *Container) Empty() bool { return len(c.Items) == 0 }

// Add appends an item; currency merges into an existing currency item.
func (c *Container) Add(it *Item) {
	c.Items = addItem(c.Items, it)
}

// Remove takes an item out by identity. Returns false when absent.
func (c *Container) Remove(it *Item) bool {
	var ok bool
	c.Items, ok = removeItem(c.Items, it)
	return ok
}

// ---------- sub-area ----------

// Biome selects how a location is generated.
type Biome uint8

const (
	BiomeForest Biome = iota
	BiomeVillage
)

// SubArea marks a world cell that leads into a generated location map.
type SubArea struct {
	MapID MapID
	Biome Biome
}

func (s *SubArea) Kind() Kind     { return KindSubArea }
func (s *SubArea) Priority() int  { return 10 }
func (s *SubArea) Passable() bool { return true }
func (s *SubArea) Glyph() Glyph   { return Glyph{Symbol: 'L', Color: White} }
