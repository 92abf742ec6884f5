// SPDX-License-Identifier: MIT

// Package rules paints a mesh.Mesh with the cells where a voting rule or
// proportionality axiom admits a committee.
//
// What:
//
//	Every Strategy first clips the mesh to the region its committees can
//	reach (the JR region or the global extremes from search.Stats), then asks
//	one question per active cell and writes the symbol into the cells that
//	answer yes. Cells that answer no keep their value.
//
//	jr            JRCommittee           size-k committee satisfying cohesiveness
//	pjr, ejr      PJRCommittee, EJRCommittee   refinement search per cell
//	any           AnyCommittee          any committee, global region
//	max-approval  MaxApprovalCommittee  committees with the maximal approval
//	cc            ChamberlinCourant     committees with the maximal coverage
//	single-pav    SinglePAV             the cell of one PAV winner
//	pav           PAV                   cells holding a PAV-optimal committee
//	phragmen      SequentialPhragmen    cells of the tied Phragmén committees
//
// Concurrency:
//
//	Cell queries run on an errgroup limited to Env.Workers; each query builds
//	its own oracle model. Mesh writes happen after all queries finished, on the
//	calling goroutine. A Mesh must not be shared between concurrent Compute
//	calls.
//
// Caching:
//
//	With Env.Store set, per-cell outcomes are cached under
//	(matrix digest, rule, cell); a cached cell costs no oracle call.
//
// Errors:
//
//	ErrUnknownRule   - Lookup of an unregistered name.
//	ErrMeshMismatch  - mesh built for another voter count or committee size.
//	Solver errors (oracle.ErrSolver) and search errors propagate unchanged in
//	kind; the mesh is left partially clipped but unpainted.
package rules
