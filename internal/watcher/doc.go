// Package watcher feeds new PDF files from watched directories into a
// handler, one at a time.
//
// fsnotify Create and Write events are filtered by name (only .pdf files,
// temporary and partial downloads skipped) and debounced per path, so a file
// is handed over once writes have been quiet for the debounce delay. A single
// worker goroutine calls the handler, which lets the handler drive one
// session without further locking.
package watcher
