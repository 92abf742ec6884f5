// Package config holds the settings of an analysis run.
//
// What:
//
//	Config is loaded from YAML on top of Default(). A missing file yields the
//	defaults; JRMESH_WORKERS and JRMESH_SOLVER_TIMEOUT override the file.
//
//	mesh:    coverage_parts, approval_parts, initial_value
//	solver:  timeout, max_refinements
//	run:     committee_size, groups_approved, rules, symbols, workers
//	store:   enabled, path, in_memory
//	logging: level, format
//
// Errors:
//
//	ErrInvalid  - Validate found an unusable field (wrapped with its name).
package config
