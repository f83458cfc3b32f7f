package engine

import (
	"math"
	"sort"

	"github.com/lixenwraith/deskrush/component"
	"github.com/lixenwraith/deskrush/parameter"
	"github.com/lixenwraith/deskrush/vmath"
)

type cellKey struct {
	X, Z int
}

type zoneEntry struct {
	id     component.StationID
	volume component.TriggerVolume
	order  int
}

// ZoneIndex is a sparse uniform grid over station trigger volumes
// A volume is bucketed into every cell its bounding square touches, so a query
// only inspects the pointer's own cell
type ZoneIndex struct {
	cellSize float64
	cells    map[cellKey][]*zoneEntry
	entries  map[component.StationID]*zoneEntry
	nextID   int
}

// NewZoneIndex creates an index with the given cell edge length (<= 0 uses the default)
func NewZoneIndex(cellSize float64) *ZoneIndex {
	if cellSize <= 0 {
		cellSize = parameter.ZoneCellSize
	}
	return &ZoneIndex{
		cellSize: cellSize,
		cells:    make(map[cellKey][]*zoneEntry),
		entries:  make(map[component.StationID]*zoneEntry),
	}
}

func (z *ZoneIndex) keyFor(x, zz float64) cellKey {
	return cellKey{
		X: int(math.Floor(x / z.cellSize)),
		Z: int(math.Floor(zz / z.cellSize)),
	}
}

func (z *ZoneIndex) span(v component.TriggerVolume) (lo, hi cellKey) {
	lo = z.keyFor(v.Center.X-v.Radius, v.Center.Z-v.Radius)
	hi = z.keyFor(v.Center.X+v.Radius, v.Center.Z+v.Radius)
	return lo, hi
}

// Insert adds or replaces the volume for a station
func (z *ZoneIndex) Insert(id component.StationID, v component.TriggerVolume) {
	z.Remove(id)

	e := &zoneEntry{id: id, volume: v, order: z.nextID}
	z.nextID++
	z.entries[id] = e

	lo, hi := z.span(v)
	for cx := lo.X; cx <= hi.X; cx++ {
		for cz := lo.Z; cz <= hi.Z; cz++ {
			k := cellKey{cx, cz}
			z.cells[k] = append(z.cells[k], e)
		}
	}
}

// Remove deletes a station's volume; unknown ids are ignored
func (z *ZoneIndex) Remove(id component.StationID) {
	e, ok := z.entries[id]
	if !ok {
		return
	}
	delete(z.entries, id)

	lo, hi := z.span(e.volume)
	for cx := lo.X; cx <= hi.X; cx++ {
		for cz := lo.Z; cz <= hi.Z; cz++ {
			k := cellKey{cx, cz}
			bucket := z.cells[k]
			for i, other := range bucket {
				if other == e {
					// Swap-remove keeps buckets dense
					last := len(bucket) - 1
					bucket[i] = bucket[last]
					bucket[last] = nil
					bucket = bucket[:last]
					break
				}
			}
			if len(bucket) == 0 {
				delete(z.cells, k)
			} else {
				z.cells[k] = bucket
			}
		}
	}
}

// Query returns every station whose volume contains p, nearest center first
// Ties keep insertion order
func (z *ZoneIndex) Query(p vmath.Vec3F) []component.StationID {
	bucket := z.cells[z.keyFor(p.X, p.Z)]
	if len(bucket) == 0 {
		return nil
	}

	hits := make([]*zoneEntry, 0, len(bucket))
	for _, e := range bucket {
		if e.volume.Contains(p) {
			hits = append(hits, e)
		}
	}
	if len(hits) == 0 {
		return nil
	}

	sort.SliceStable(hits, func(i, j int) bool {
		di := vmath.V3FPlanarDist(hits[i].volume.Center, p)
		dj := vmath.V3FPlanarDist(hits[j].volume.Center, p)
		if di == dj {
			return hits[i].order < hits[j].order
		}
		return di < dj
	})

	ids := make([]component.StationID, len(hits))
	for i, e := range hits {
		ids[i] = e.id
	}
	return ids
}

// Nearest returns the closest station containing p
func (z *ZoneIndex) Nearest(p vmath.Vec3F) (component.StationID, bool) {
	ids := z.Query(p)
	if len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}

// Len returns the number of indexed stations
func (z *ZoneIndex) Len() int {
	return len(z.entries)
}
