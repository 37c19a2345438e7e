// Package orchestration runs independent tasks concurrently and joins their
// results in submission order. A failing task cancels its siblings and the
// join reports the first error without partial results.
package orchestration
