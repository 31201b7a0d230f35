package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Key scopes. The search input swallows printable keys, so single-letter
// shortcuts only live in the selector scope.
const (
	scopeSearch = "search"
	scopeSelect = "select"
)

const (
	actionQuit          = "quit"
	actionRetry         = "retry"
	actionClear         = "clear"
	actionFocusNext     = "focus-next"
	actionFocusPrev     = "focus-prev"
	actionOptionNext    = "option-next"
	actionOptionPrev    = "option-prev"
	actionScrollUp      = "scroll-up"
	actionScrollDown    = "scroll-down"
	actionPageUp        = "page-up"
	actionPageDown      = "page-down"
	actionCreateProfile = "create-profile"
)

type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"ctrl+c"}, Action: actionQuit, Description: "quit", Scopes: []string{"*"}},
		{Keys: []string{"q"}, Action: actionQuit, Description: "quit", Scopes: []string{scopeSelect}},
		{Keys: []string{"ctrl+r"}, Action: actionRetry, Description: "reload", Scopes: []string{"*"}},
		{Keys: []string{"r"}, Action: actionRetry, Description: "reload", Scopes: []string{scopeSelect}},
		{Keys: []string{"esc"}, Action: actionClear, Description: "clear filters", Scopes: []string{"*"}},
		{Keys: []string{"tab"}, Action: actionFocusNext, Description: "next filter", Scopes: []string{"*"}},
		{Keys: []string{"shift+tab"}, Action: actionFocusPrev, Description: "prev filter", Scopes: []string{"*"}},
		{Keys: []string{"right", "l"}, Action: actionOptionNext, Description: "next option", Scopes: []string{scopeSelect}},
		{Keys: []string{"left", "h"}, Action: actionOptionPrev, Description: "prev option", Scopes: []string{scopeSelect}},
		{Keys: []string{"up"}, Action: actionScrollUp, Description: "scroll", Scopes: []string{"*"}},
		{Keys: []string{"k"}, Action: actionScrollUp, Description: "scroll", Scopes: []string{scopeSelect}},
		{Keys: []string{"down"}, Action: actionScrollDown, Description: "scroll", Scopes: []string{"*"}},
		{Keys: []string{"j"}, Action: actionScrollDown, Description: "scroll", Scopes: []string{scopeSelect}},
		{Keys: []string{"pgup"}, Action: actionPageUp, Description: "page up", Scopes: []string{"*"}},
		{Keys: []string{"pgdown"}, Action: actionPageDown, Description: "page down", Scopes: []string{"*"}},
		{Keys: []string{"ctrl+p"}, Action: actionCreateProfile, Description: "create profile", Scopes: []string{"*"}},
		{Keys: []string{"p"}, Action: actionCreateProfile, Description: "create profile", Scopes: []string{scopeSelect}},
	}
}

// ApplyActionKeybindings replaces the keys of every binding whose action has
// an override. Overrides apply to all scopes of that action.
func ApplyActionKeybindings(bindings []KeyBinding, actionKeys map[string][]string) []KeyBinding {
	out := make([]KeyBinding, 0, len(bindings))
	seen := make(map[string]bool)
	for _, b := range bindings {
		next := KeyBinding{
			Keys:        append([]string(nil), b.Keys...),
			Action:      b.Action,
			Description: b.Description,
			Scopes:      append([]string(nil), b.Scopes...),
		}
		keys, ok := actionKeys[b.Action]
		if ok && len(keys) > 0 {
			// the first binding of the action takes the override everywhere
			if seen[b.Action] {
				continue
			}
			next.Keys = append([]string(nil), keys...)
			next.Scopes = []string{"*"}
			seen[b.Action] = true
		}
		out = append(out, next)
	}
	return out
}

func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

// Action returns the action bound to msg in scope, or "".
func (r *KeyRegistry) Action(msg tea.KeyMsg, scope string) string {
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		if !scopeMatch(scope, b.Scopes) {
			continue
		}
		for _, k := range b.Keys {
			if normalizeKey(k) == pressed {
				return b.Action
			}
		}
	}
	return ""
}

// HelpFor renders "key desc" pairs for the given actions in scope, first key only.
func (r *KeyRegistry) HelpFor(scope string, actions ...string) []string {
	var out []string
	for _, action := range actions {
		for _, b := range r.BindingsForScope(scope) {
			if b.Action == action && len(b.Keys) > 0 {
				out = append(out, b.Keys[0]+" "+b.Description)
				break
			}
		}
	}
	return out
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == "*" || s == scope {
			return true
		}
	}
	return false
}
