// Package tui provides the terminal plan viewer used by `visionplan show -i`
// and `visionplan create --view`.
//
// The viewer is read-only. It shows one tab per section of a plan:
//   - Overview: name, ID, horizon, counts and the vision text
//   - Epics: every epic with its stories and their tasks
//   - Sprints: dates, goal and task IDs of each sprint
//
// Switch tabs with Tab, Shift+Tab or 1-3. Scroll with the arrow keys, PgUp and
// PgDn. Quit with 'q', Esc or Ctrl+C.
//
// Usage:
//
//	plan, err := store.Load("data")
//	if err != nil {
//	    return err
//	}
//	return tui.Run(plan)
package tui
