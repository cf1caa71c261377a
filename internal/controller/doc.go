// Package controller drives one submission from the selected file to a
// resolved session state.
//
// Submit validates that a file is selected, marks the session as loading,
// hands the file to a Redactor, and applies the resulting outcome. The
// loading flag is cleared on every path, including a panicking Redactor.
package controller
