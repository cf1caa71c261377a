// Package stats turns redaction category counts into display strings.
//
// Every function here is pure: identical input always yields identical output,
// and nothing is logged or mutated. Renderers call Format once for the total
// counts and once per page.
package stats
