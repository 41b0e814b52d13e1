package ecs

import (
	"github.com/phanxgames/evergreen"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for evergreen interaction
// events. Subscribe to it to receive pointer, drag and pinch events.
var InteractionEventType = events.NewEventType[evergreen.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Events are queued on InteractionEventType until ProcessEvents runs. The
// store is also an evergreen.LayoutStore: a scene respawns the world's
// ornament entities whenever its layout changes.
func NewDonburiStore(world donburi.World) evergreen.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event evergreen.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

func (s *donburiStore) SyncOrnaments(ornaments []evergreen.Ornament) {
	SpawnOrnaments(s.world, ornaments)
}

// OrnamentData is the per-ornament component.
type OrnamentData struct {
	Ornament evergreen.Ornament
	Hovered  bool
	Clicks   int
}

// Ornament is the component type holding OrnamentData.
var Ornament = donburi.NewComponentType[OrnamentData]()

// SpawnOrnaments creates one entity per ornament, replacing any ornament
// entities already in the world.
func SpawnOrnaments(world donburi.World, ornaments []evergreen.Ornament) []donburi.Entity {
	var stale []donburi.Entity
	for e := range Ornament.Iter(world) {
		stale = append(stale, e.Entity())
	}
	for _, e := range stale {
		world.Remove(e)
	}

	entities := make([]donburi.Entity, len(ornaments))
	for i, o := range ornaments {
		entities[i] = world.Create(Ornament)
		Ornament.SetValue(world.Entry(entities[i]), OrnamentData{Ornament: o})
	}
	return entities
}

// FindOrnament returns the entry for ornament index i.
func FindOrnament(world donburi.World, i int) (*donburi.Entry, bool) {
	for e := range Ornament.Iter(world) {
		if Ornament.Get(e).Ornament.Index == i {
			return e, true
		}
	}
	return nil, false
}

// TrackOrnaments subscribes a handler that applies hover and click events
// to the matching ornament entities.
func TrackOrnaments(world donburi.World) {
	InteractionEventType.Subscribe(world, applyOrnamentEvent)
}

func applyOrnamentEvent(w donburi.World, e evergreen.InteractionEvent) {
	if e.Target.Kind != evergreen.TargetOrnament {
		return
	}
	entry, ok := FindOrnament(w, e.Target.Index)
	if !ok {
		return
	}
	data := Ornament.Get(entry)
	switch e.Type {
	case evergreen.EventPointerEnter:
		data.Hovered = true
	case evergreen.EventPointerLeave:
		data.Hovered = false
	case evergreen.EventClick:
		if e.Button == evergreen.MouseButtonLeft {
			data.Clicks++
		}
	}
}
