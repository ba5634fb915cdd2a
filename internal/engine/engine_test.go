package engine

import (
	"testing"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heron-feed/internal/engine/actors"
	"heron-feed/internal/models"
	"heron-feed/internal/posting"
	"heron-feed/internal/render"
	"heron-feed/internal/state"
	"heron-feed/internal/textparse"
	"heron-feed/internal/utils"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	system := actor.NewActorSystem()
	registry := render.NewRegistry(textparse.New(), nil, nil)
	eng := NewEngine(system, state.NewStore(), registry, &posting.Stub{}, nil, nil, utils.NewMetricsCollector())
	t.Cleanup(eng.Shutdown)
	return eng
}

func TestControllerForReusesPID(t *testing.T) {
	eng := newTestEngine(t)

	first := eng.ControllerFor("p1")
	second := eng.ControllerFor("p1")
	other := eng.ControllerFor("p2")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Equal(t, 2, eng.ControllerCount())
}

func TestControllerHandlesRequests(t *testing.T) {
	eng := newTestEngine(t)
	pid := eng.ControllerFor("p1")

	post := &models.Post{ID: "p1", Type: "text", CreatedTime: time.Now().Unix()}
	future := eng.system.Root.RequestFuture(pid, &actors.BindPostMsg{Post: post}, 5*time.Second)
	result, err := future.Result()
	require.NoError(t, err)

	view, ok := result.(*actors.ViewState)
	require.True(t, ok, "bind returned %T", result)
	assert.Equal(t, "p1", view.PostID)
}
