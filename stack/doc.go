// Package stack implements a self-verifying LIFO container over a
// contiguous, dynamically resized buffer.
//
// The container is instrumented to detect memory corruption the moment an
// operation touches it, rather than letting it propagate: every mutating
// operation verifies the container's structural invariants before trusting
// existing state and again after mutating, and renders a full diagnostic
// dump to the configured sink whenever a check fails.
//
// # Protection modes
//
// Two independent detectors compile into the package by default:
//
//   - Boundary canaries: sentinel words stored in the container metadata
//     and at both edges of the heap buffer, derived from the buffer's base
//     address so that both overwrites and stale aliases are detectable.
//   - Content checksum: a seeded digest over the container metadata and
//     the full capacity-sized payload region, recomputed after every
//     mutation so that writes to unused slots are caught too.
//
// Build tags select cheaper configurations:
//
//	-tags stacknocanary     boundary canaries compiled out
//	-tags stacknohash       content checksum compiled out
//	-tags stackunprotected  both compiled out (baseline)
//
// # Lifecycle
//
// The zero value of Stack is the unconstructed state. Construct allocates
// the buffer at the minimum capacity, Push and Pop mutate it with a
// doubling/halving capacity policy, and Destruct releases the buffer and
// returns the value to the zeroed state, from which it may be constructed
// again. Destruct is safe to call repeatedly.
//
// The container is not safe for concurrent use.
package stack
