package service

import "fmt"

// Action enumerates the protocol's dispatchable operations. Keeping this a
// typed enum makes adding or removing an action a compile-time-checked change;
// the wire string appears only at the JSON boundary.
type Action int

const (
	ActionStatus Action = iota
	ActionRegistrationOptions
	ActionRegistrationVerify
	ActionAuthenticationOptions
	ActionAuthenticationVerify
	ActionFallbackVerify
)

var actionNames = map[string]Action{
	"status":                 ActionStatus,
	"registration_options":   ActionRegistrationOptions,
	"registration_verify":    ActionRegistrationVerify,
	"authentication_options": ActionAuthenticationOptions,
	"authentication_verify":  ActionAuthenticationVerify,
	"fallback_verify":        ActionFallbackVerify,
}

// ParseAction maps a wire action string to its Action. Unknown strings fail
// with ErrInvalidInput.
func ParseAction(s string) (Action, error) {
	a, ok := actionNames[s]
	if !ok {
		return 0, invalidInputf("unknown action %q", s)
	}
	return a, nil
}

func (a Action) String() string {
	for name, v := range actionNames {
		if v == a {
			return name
		}
	}
	return fmt.Sprintf("Action(%d)", int(a))
}
