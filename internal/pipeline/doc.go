// Package pipeline fans the per-model companion predicate out over a worker
// pool. Every row's survival decision is independent, so the only shared
// state is the read-only grids plus one disjoint mask slot per row, and the
// result is identical to a serial scan for any worker count.
package pipeline
