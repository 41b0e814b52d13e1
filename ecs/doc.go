// Package ecs bridges evergreen's interaction events into a [Donburi] world.
//
// [NewDonburiStore] publishes every pointer, click, drag and pinch event as
// a typed [InteractionEventType] event. [SpawnOrnaments] mirrors the
// ornament layout as entities and [TrackOrnaments] keeps their hover and
// click state current from those events. The store respawns the ornament
// entities when it is attached to a scene and whenever the scene redraws
// its layout.
//
// Usage:
//
//	world := donburi.NewWorld()
//	ecs.TrackOrnaments(world)
//	scene.SetEntityStore(ecs.NewDonburiStore(world))
//
//	// once per frame
//	events.ProcessAllEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
