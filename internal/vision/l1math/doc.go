// Package l1math owns Layer 1 (Primitives) of the vision data model.
//
// Responsibilities: fixed-size numeric tuples, incremental running means,
// count-weighted averages, RGB/HSV colour conversion and comparison, and
// the error kinds shared by every higher layer.
// Key types: Vec2f, Vec3f, Vec3i, Average3, HSVComparator.
//
// Dependency rule: L1 depends on no other vision layer.
// All functions are pure: they consume values and return new values, so a
// clone can never alias its source through a vector argument.
package l1math
