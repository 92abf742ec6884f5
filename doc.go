// Package jrmesh is a toolkit for proportional representation in
// multi-winner approval elections: it decides whether committees satisfy
// Justified Representation (JR), Proportional JR (PJR) and Extended JR (EJR),
// and maps where such committees live in the (coverage, approval score) plane.
//
// 🚀 What is inside?
//
//	• Axiom checks: JR by greedy uncovered counting, PJR/EJR through an
//	  optimisation oracle that searches for an under-represented cohesive group
//	• Committee search: size-k committees under coverage/approval bounds, with
//	  counterexample-guided refinement for PJR and EJR, plus PAV
//	• Mesh: a coverage × approval grid with clipping and one marker per cell
//	• Sequential Phragmén: every committee reachable under ties, exact loads
//	• Rules: one strategy per rule/axiom painting a mesh in parallel
//
// Under the hood, everything is organized under these packages:
//
//	approval/   profiles, committees and the immutable approval matrix
//	oracle/     narrow optimisation interface + gophersat PB backend
//	axiom/      IsJR, IsPJR, IsEJR, Check and violation witnesses
//	search/     base model builder, Compute, ComputeEJRorPJR, ComputePAV, stats
//	mesh/       the coverage × approval grid
//	phragmen/   tied Sequential Phragmén enumeration
//	rules/      rule strategies and the parallel cell runner
//	store/      Badger-backed cache of cell outcomes
//	preflib/    PrefLib partial-order loader
//	config/     YAML configuration
//	cmd/jrmesh  the command line front end
//
// Quick ASCII example (ballots {0,1},{0,1},{2},{2}, k=2, a 2×4 mesh):
//
//	.j..   coverage 3..4
//	....   coverage 1..2
//
// Only committees with coverage 4 and approval score 4 satisfy JR, so a single
// cell is marked.
//
//	go install github.com/katalvlaran/jrmesh/cmd/jrmesh@latest
package jrmesh
