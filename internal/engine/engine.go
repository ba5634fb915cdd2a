// Package engine wires the actor system: one controller actor per post,
// spawned on demand and shared across requests for the same post id.
package engine

import (
	"sync"

	"github.com/asynkron/protoactor-go/actor"

	"heron-feed/internal/engine/actors"
	"heron-feed/internal/posting"
	"heron-feed/internal/render"
	"heron-feed/internal/state"
	"heron-feed/internal/utils"
)

// Engine owns the actor system and the controller registry.
type Engine struct {
	system    *actor.ActorSystem
	store     *state.Store
	registry  *render.Registry
	service   posting.Service
	notifier  actors.Notifier
	navigator actors.Navigator
	metrics   *utils.MetricsCollector

	mu          sync.Mutex
	controllers map[string]*actor.PID
}

// NewEngine builds the engine over its collaborators.
func NewEngine(
	system *actor.ActorSystem,
	store *state.Store,
	registry *render.Registry,
	service posting.Service,
	notifier actors.Notifier,
	navigator actors.Navigator,
	metrics *utils.MetricsCollector,
) *Engine {
	return &Engine{
		system:      system,
		store:       store,
		registry:    registry,
		service:     service,
		notifier:    notifier,
		navigator:   navigator,
		metrics:     metrics,
		controllers: make(map[string]*actor.PID),
	}
}

// Store exposes the shared state container.
func (e *Engine) Store() *state.Store {
	return e.store
}

// ControllerFor returns the controller PID for a post id, spawning one if
// none exists yet.
func (e *Engine) ControllerFor(postID string) *actor.PID {
	e.mu.Lock()
	defer e.mu.Unlock()
	if pid, ok := e.controllers[postID]; ok {
		return pid
	}
	props := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewPostActor(e.store, e.registry, e.service, e.notifier, e.navigator, e.metrics)
	})
	pid := e.system.Root.Spawn(props)
	e.controllers[postID] = pid
	return pid
}

// ControllerCount reports how many controllers are live.
func (e *Engine) ControllerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.controllers)
}

// Shutdown stops every controller.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for id, pid := range e.controllers {
		e.system.Root.Stop(pid)
		delete(e.controllers, id)
	}
}
