package review

import "fmt"

// Action describes a single operation a reviewer may perform on a
// reviewable. Actions are constructed fresh for every ActionsFor call and
// never persisted.
type Action struct {
	// ID is the short symbolic name of the action, e.g. "approve".
	ID string

	// Title is the localizable title key shown to reviewers.
	Title string

	// Icon is the glyph identifier for the action button.
	Icon string
}

// actionDefault holds the registry defaults for a commonly-named action.
type actionDefault struct {
	icon  string
	title string
}

// actionDefaults maps well-known action ids to their default icon and title
// key. Item types that invent their own action ids fall back to a computed
// title key and an empty icon.
var actionDefaults = map[string]actionDefault{
	"approve": {
		icon:  "far-thumbs-up",
		title: "reviewables.actions.approve.title",
	},
	"reject": {
		icon:  "far-thumbs-down",
		title: "reviewables.actions.reject.title",
	},
	"ignore": {
		icon:  "external-link-alt",
		title: "reviewables.actions.ignore.title",
	},
	"delete": {
		icon:  "trash-alt",
		title: "reviewables.actions.delete.title",
	},
}

// ActionOpt overrides a resolved field of an Action.
type ActionOpt func(*Action)

// WithTitle overrides the resolved title key.
func WithTitle(title string) ActionOpt {
	return func(a *Action) {
		a.Title = title
	}
}

// WithIcon overrides the resolved icon.
func WithIcon(icon string) ActionOpt {
	return func(a *Action) {
		a.Icon = icon
	}
}

// NewAction resolves a fully populated Action for the given item type and
// action id. Resolution order for each field: explicit override, then the
// registry default, then (for the title only) the computed key
// "reviewables.<item-type>.actions.<id>.title".
func NewAction(itemType, id string, opts ...ActionOpt) Action {
	action := Action{ID: id}

	if def, ok := actionDefaults[id]; ok {
		action.Icon = def.icon
		action.Title = def.title
	}

	for _, opt := range opts {
		opt(&action)
	}

	if action.Title == "" {
		action.Title = fmt.Sprintf(
			"reviewables.%s.actions.%s.title", itemType, id,
		)
	}

	return action
}

// ActionList is the ordered set of actions available to one reviewer on one
// reviewable. It is populated by the item type's action builder and then
// read back by the transport layer. Adding the same action id twice is a
// no-op, so builders never have to coordinate around duplicates.
type ActionList struct {
	itemType string
	actions  []Action
	seen     map[string]struct{}
}

// NewActionList creates an empty ActionList for the given item type.
func NewActionList(itemType string) *ActionList {
	return &ActionList{
		itemType: itemType,
		seen:     make(map[string]struct{}),
	}
}

// Add resolves the action id through the registry and appends it, keeping
// insertion order. A second Add of an id already present does nothing.
func (l *ActionList) Add(id string, opts ...ActionOpt) {
	if _, ok := l.seen[id]; ok {
		return
	}

	l.seen[id] = struct{}{}
	l.actions = append(l.actions, NewAction(l.itemType, id, opts...))
}

// Has reports whether the given action id was added.
func (l *ActionList) Has(id string) bool {
	_, ok := l.seen[id]
	return ok
}

// ToList returns the actions in insertion order. The returned slice is a
// copy.
func (l *ActionList) ToList() []Action {
	out := make([]Action, len(l.actions))
	copy(out, l.actions)
	return out
}
