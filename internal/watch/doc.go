// Package watch reruns generation passes when Go sources change.
//
// A Watcher observes a set of directories with fsnotify. Relevant events are
// debounced and coalesced; passes run one at a time until the context is
// cancelled.
package watch
