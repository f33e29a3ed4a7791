// Package layout turns a page's accessibility findings into the overlay
// groups drawn on top of its screenshot.
//
// Many findings point at the same element, and elements on a page sit close
// together, so drawing one box and one badge per finding produces an
// unreadable pile. This package merges findings that share a region, detects
// regions whose boxes or badges would visually collide, and assigns each
// colliding region a cascade index so the renderer can offset and stack them.
//
// # Pipeline
//
// Compute runs every stage in order, each consuming the previous output:
//
//  1. Filter: drop pass results, levels excluded by the severity filter, and
//     findings without location data (FilterFindings)
//  2. Group: merge findings with identical bounds (GroupByBounds)
//  3. Resolve: pick each group's most severe level (PrimaryLevel)
//  4. Detect: test pairs of groups for visual collision (Geometry.Collide)
//  5. Cluster: cluster colliding groups and rank them (AssignCascade)
//  6. Emit: return the annotated groups; Stack turns them into z-ordered
//     placements for a given hover/selection state
//
// # Coordinate System
//
// All geometry is in the screenshot's native pixel space, origin top-left.
// Zooming is a uniform scale the caller applies to the output.
//
// # Collision Heuristics
//
// A group renders as a box of at least MinRenderSize pixels per side with a
// round count badge anchored at its top-right corner. Two groups collide when
// either:
//   - their badge anchors are closer than BadgeSize + BadgeMargin, or
//   - their rendered boxes intersect by more than AreaOverlapRatio of the
//     smaller box's area.
//
// Both tests are symmetric in their arguments.
//
// # Clustering
//
// The default ClusterSingleHop mode forms a cluster from an unprocessed group
// and the unprocessed groups that collide with it directly. Chains A-B-C where
// A and C do not collide are not merged. ClusterTransitive takes connected
// components of the collision graph instead. In both modes a cluster is
// ordered by level priority, then top, then left, and each member's
// CascadeIndex is its rank in that order.
//
// # Determinism
//
// Every function here is pure: no I/O, no shared state, no randomness. The
// same findings and options always produce the same groups, keys, issue order
// and cascade indices. Functions may be called concurrently.
package layout
