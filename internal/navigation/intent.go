// Copyright (c) 2025 Brandlens
// Licensed under the MIT License. See LICENSE file in the project root for details.

package navigation

import "fmt"

// Kind is the transition an intent replays.
type Kind string

const (
	KindPush    Kind = "push"
	KindReplace Kind = "replace"
	KindBack    Kind = "back"
	KindForward Kind = "forward"
	// KindAction is an arbitrary deferred callback rather than a path change.
	KindAction Kind = "action"
)

// Intent is a navigation attempt deferred because of unsaved changes.
// ID is assigned when the intent is deferred and only correlates log lines.
type Intent struct {
	ID     string
	Kind   Kind
	Path   string
	Label  string
	Action func()
}

// Describe renders the intent for prompts and logs.
func (i Intent) Describe() string {
	switch i.Kind {
	case KindPush, KindReplace:
		return fmt.Sprintf("%s %s", i.Kind, i.Path)
	case KindAction:
		if i.Label != "" {
			return "run " + i.Label
		}
		return "run action"
	default:
		return string(i.Kind)
	}
}
