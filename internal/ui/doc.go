// Package ui contains the Bubble Tea program that hosts the penpal tabs.
// Model is the tab container; each tab is backed by a screen value that is
// created once and kept resident for the whole session, so cursors, filters
// and detail flags survive switching tabs.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Update routes
//     each tea.Msg through a typed handler registry so key presses, backend
//     events and command results are handled by focused functions.
//   - Key presses go to the active screen first when it is editing a filter,
//     otherwise the global bindings (tab selection, quit) get the first look.
//
// Navigation:
//   - The active tab and the pending deep link live in a single *nav.State
//     shared with the rest of the program. The model subscribes to it and
//     queues every published change; at the end of each update the queue is
//     drained, which activates the newly selected screen or lets the
//     messages screen consume a deep link that arrived while it was active.
//   - Screens never keep their own copy of the selected tab. They request a
//     switch by writing to the shared state.
//
// Data:
//   - A backend.Watcher streams provider snapshots; handleBackendEventMsg
//     hands them to the dispatcher, which fills the stores in internal/state,
//     then re-syncs the screens that render that data.
//   - Provider actions (refreshing penpals, marking a message opened) run off
//     the loop through the internal/ui/command bus and report back as
//     command.Result messages.
package ui
