package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heron-feed/internal/models"
)

func TestSetStateMergesAtTopLevel(t *testing.T) {
	store := NewStore()

	profile := &models.Author{ID: "u1", DisplayName: "Ann"}
	store.SetState(Partial{Profile: profile})
	store.SetLocalLike("p1", true)

	// A partial with only likes leaves the profile untouched
	store.SetState(Partial{LocalLikes: map[string]bool{"p2": false}})
	state := store.GetState()
	require.NotNil(t, state.Profile)
	assert.Equal(t, "u1", state.Profile.ID)

	// But the likes map was replaced wholesale, not merged
	_, hasOld := state.LocalLikes["p1"]
	assert.False(t, hasOld)
	assert.Contains(t, state.LocalLikes, "p2")
}

func TestGetStateReturnsCopy(t *testing.T) {
	store := NewStore()
	store.SetLocalLike("p1", true)

	snapshot := store.GetState()
	snapshot.LocalLikes["p1"] = false
	snapshot.LocalLikes["p9"] = true

	assert.True(t, store.EffectiveLiked("p1", false))
	assert.False(t, store.EffectiveLiked("p9", false))
}

func TestEffectiveLikedOverlayWins(t *testing.T) {
	store := NewStore()

	// No overlay: server truth
	assert.True(t, store.EffectiveLiked("p1", true))
	assert.False(t, store.EffectiveLiked("p1", false))

	// Overlay entry overrides either way
	store.SetLocalLike("p1", true)
	assert.True(t, store.EffectiveLiked("p1", false))
	store.SetLocalLike("p1", false)
	assert.False(t, store.EffectiveLiked("p1", true))

	// Clearing restores server truth
	store.ClearLocalLike("p1")
	assert.True(t, store.EffectiveLiked("p1", true))
}

func TestEffectiveLikeCount(t *testing.T) {
	store := NewStore()

	// No overlay: server count passes through
	assert.Equal(t, 3, store.EffectiveLikeCount("p1", 3, false))
	assert.Equal(t, 3, store.EffectiveLikeCount("p1", 3, true))

	// Unconfirmed local like adds one
	store.SetLocalLike("p1", true)
	assert.Equal(t, 4, store.EffectiveLikeCount("p1", 3, false))

	// Once the server confirms, the overlay no longer contributes
	assert.Equal(t, 4, store.EffectiveLikeCount("p1", 4, true))

	// A local unlike never subtracts below the server count
	store.SetLocalLike("p1", false)
	assert.Equal(t, 3, store.EffectiveLikeCount("p1", 3, true))
}
