package scorecard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/scorecard/internal/shared"
)

func TestSessionStoreDefaultsWhenEmpty(t *testing.T) {
	store := NewSessionStore()
	card, err := store.Load(&shared.Session{})
	require.NoError(t, err)
	assert.Equal(t, Default(), card)
}

func TestSessionStoreRoundTrip(t *testing.T) {
	store := NewSessionStore()
	sess := &shared.Session{}

	card := Default()
	require.NoError(t, card.Remove("3"))
	card.Add()
	card.SetEmployeeCount(3)
	require.NoError(t, store.Save(sess, card))

	loaded, err := store.Load(sess)
	require.NoError(t, err)
	assert.Equal(t, card, loaded)
	assert.Equal(t, 5, loaded.NextID)
}

func TestSessionStoreCorruptValue(t *testing.T) {
	store := NewSessionStore()
	sess := &shared.Session{}
	sess.Set(SessionKey, "{not json")

	card, err := store.Load(sess)
	assert.ErrorIs(t, err, ErrCorruptState)
	assert.Equal(t, Default(), card)
}

func TestSessionStoreRepairsEmptyList(t *testing.T) {
	store := NewSessionStore()
	sess := &shared.Session{}
	sess.Set(SessionKey, `{"main":{"plan":10,"fact":5},"employee_count":0,"secondary":[],"next_id":7}`)

	card, err := store.Load(sess)
	require.NoError(t, err)
	require.Len(t, card.Secondary, 1)
	assert.Equal(t, "7", card.Secondary[0].ID)
	assert.Equal(t, 1, card.EmployeeCount)
}

func TestSessionStoreClear(t *testing.T) {
	store := NewSessionStore()
	sess := &shared.Session{}
	card := Default()
	card.SetEmployeeCount(9)
	require.NoError(t, store.Save(sess, card))
	store.Clear(sess)

	loaded, err := store.Load(sess)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.EmployeeCount)
}

func TestSessionStoreNilSession(t *testing.T) {
	store := NewSessionStore()
	_, err := store.Load(nil)
	assert.ErrorIs(t, err, shared.ErrSessionMissing)
	assert.ErrorIs(t, store.Save(nil, Default()), shared.ErrSessionMissing)
}

func TestSessionStoreRejectsOverflowingState(t *testing.T) {
	store := NewSessionStore()
	sess := &shared.Session{}
	sess.Set(SessionKey, `{"main":{"plan":1e-300,"fact":1e300},"employee_count":1,"secondary":[{"id":"1","name":"a","plan":1,"fact":1}],"next_id":2}`)

	card, err := store.Load(sess)
	assert.ErrorIs(t, err, ErrCorruptState)
	assert.Equal(t, Default(), card)
}
