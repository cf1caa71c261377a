// Package batch submits many documents concurrently.
//
// Every document gets its own session, so each still has at most one
// submission in flight; errgroup.SetLimit bounds how many sessions submit
// at once. A failed document never stops the others.
package batch
