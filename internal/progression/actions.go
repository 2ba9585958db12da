// Package progression maintains the per-actor points ledger: award amounts,
// per-action daily caps, experience totals and discrete level advancement.
package progression

import "errors"

// ErrUnknownAction indicates an action type outside the fixed catalog.
// Callers pass action types from their own code, so this is a programming
// error at the call site, not user input to tolerate.
var ErrUnknownAction = errors.New("unknown action type")

// ActionType identifies a point-earning user action.
type ActionType string

// The seven actions that earn points.
const (
	ActionRegistration  ActionType = "registration"
	ActionApply         ActionType = "apply"
	ActionChat          ActionType = "chat"
	ActionCompleteWork  ActionType = "complete_work"
	ActionProfileLike   ActionType = "profile_like"
	ActionProfileUpdate ActionType = "profile_update"
	ActionSavePost      ActionType = "save_post"
)

// ActionSpec is one catalog entry. DailyLimit of zero means uncapped.
type ActionSpec struct {
	Type       ActionType
	Points     int
	XP         int
	DailyLimit int
}

var actionCatalog = map[ActionType]ActionSpec{
	ActionRegistration:  {Type: ActionRegistration, Points: 20, XP: 20},
	ActionApply:         {Type: ActionApply, Points: 10, XP: 15},
	ActionChat:          {Type: ActionChat, Points: 1, XP: 1, DailyLimit: 10},
	ActionCompleteWork:  {Type: ActionCompleteWork, Points: 40, XP: 50},
	ActionProfileLike:   {Type: ActionProfileLike, Points: 5, XP: 5},
	ActionProfileUpdate: {Type: ActionProfileUpdate, Points: 2, XP: 3, DailyLimit: 1},
	ActionSavePost:      {Type: ActionSavePost, Points: 1, XP: 1},
}

// LookupAction returns the catalog entry for an action type.
func LookupAction(t ActionType) (ActionSpec, bool) {
	spec, ok := actionCatalog[t]
	return spec, ok
}

// ParseActionType validates a wire-format action string against the catalog.
func ParseActionType(s string) (ActionType, error) {
	t := ActionType(s)
	if _, ok := actionCatalog[t]; !ok {
		return "", ErrUnknownAction
	}
	return t, nil
}
