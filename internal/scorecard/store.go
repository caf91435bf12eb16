package scorecard

import (
	"errors"
	"fmt"

	"github.com/odyssey-erp/scorecard/internal/shared"
)

// SessionKey is the session value holding the encoded scorecard.
const SessionKey = "scorecard"

// SessionStore keeps a Scorecard inside the user's session.
type SessionStore struct{}

// NewSessionStore constructs a SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Load returns the session's scorecard, or the default state when none is
// stored. A value that fails to decode yields the default state together
// with ErrCorruptState so the caller can log it.
func (st *SessionStore) Load(sess *shared.Session) (*Scorecard, error) {
	if sess == nil {
		return nil, shared.ErrSessionMissing
	}
	var card Scorecard
	found, err := sess.GetJSON(SessionKey, &card)
	if err != nil {
		return Default(), fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if !found {
		return Default(), nil
	}
	if len(card.Secondary) == 0 {
		// An empty list breaks the non-empty invariant; seed one blank metric.
		card.Add()
	}
	card.normalize()
	if err := card.Check(); err != nil {
		return Default(), fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return &card, nil
}

// Save writes the scorecard back into the session.
func (st *SessionStore) Save(sess *shared.Session, card *Scorecard) error {
	if sess == nil {
		return shared.ErrSessionMissing
	}
	if card == nil {
		return errors.New("scorecard: nil scorecard")
	}
	return sess.SetJSON(SessionKey, card)
}

// Clear drops the stored scorecard so the next Load starts from defaults.
func (st *SessionStore) Clear(sess *shared.Session) {
	if sess == nil {
		return
	}
	sess.Delete(SessionKey)
}
