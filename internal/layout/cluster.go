package layout

import (
	"fmt"
	"sort"
)

// ClusterMode selects how colliding groups are gathered into clusters.
type ClusterMode string

const (
	// ClusterSingleHop clusters a group with the unprocessed groups that
	// collide with it directly.
	ClusterSingleHop ClusterMode = "single-hop"

	// ClusterTransitive clusters connected components of the collision graph.
	ClusterTransitive ClusterMode = "transitive"
)

// ParseClusterMode converts s to a ClusterMode. The empty string means
// ClusterSingleHop.
func ParseClusterMode(s string) (ClusterMode, error) {
	switch ClusterMode(s) {
	case "", ClusterSingleHop:
		return ClusterSingleHop, nil
	case ClusterTransitive:
		return ClusterTransitive, nil
	default:
		return "", fmt.Errorf("unknown cluster mode: %q", s)
	}
}

// Cluster is a set of colliding groups. Keys lists the member group keys in
// cascade order: Keys[i] has CascadeIndex i.
type Cluster struct {
	Keys []string `json:"keys"`
}

// AssignCascade clusters colliding groups and sets each clustered group's
// CascadeIndex to its rank within the cluster. Groups that collide with
// nothing keep CascadeIndex 0. It returns the clusters of two or more groups
// in the order they were formed.
//
// # Single-hop walk
//
// Groups are visited in slice order. A visited group that is not yet
// processed is clustered with every later unprocessed group it collides with
// directly; all members are then marked processed. A group colliding only
// with an already processed group is evaluated on its own against the rest.
//
// # Ranking
//
// Members are sorted by level priority (most severe first), then top, then
// left. Members at the same position keep slice order.
func AssignCascade(groups []Group, geom Geometry, mode ClusterMode) []Cluster {
	for i := range groups {
		groups[i].CascadeIndex = 0
	}

	if mode == ClusterTransitive {
		return assignTransitive(groups, geom)
	}
	return assignSingleHop(groups, geom)
}

func assignSingleHop(groups []Group, geom Geometry) []Cluster {
	processed := make(map[string]bool, len(groups))
	clusters := make([]Cluster, 0)

	for i := range groups {
		if processed[groups[i].Key] {
			continue
		}

		members := []int{i}
		for j := i + 1; j < len(groups); j++ {
			if processed[groups[j].Key] {
				continue
			}
			if geom.Collide(groups[i].Bounds, groups[j].Bounds) {
				members = append(members, j)
			}
		}

		for _, m := range members {
			processed[groups[m].Key] = true
		}
		if len(members) > 1 {
			clusters = append(clusters, rankCluster(groups, members))
		}
	}

	return clusters
}

func assignTransitive(groups []Group, geom Geometry) []Cluster {
	seen := make(map[string]bool, len(groups))
	clusters := make([]Cluster, 0)

	for i := range groups {
		if seen[groups[i].Key] {
			continue
		}
		seen[groups[i].Key] = true

		// Breadth-first over the collision graph.
		members := []int{i}
		for q := 0; q < len(members); q++ {
			cur := groups[members[q]]
			for j := range groups {
				if seen[groups[j].Key] {
					continue
				}
				if geom.Collide(cur.Bounds, groups[j].Bounds) {
					seen[groups[j].Key] = true
					members = append(members, j)
				}
			}
		}

		if len(members) > 1 {
			sort.Ints(members)
			clusters = append(clusters, rankCluster(groups, members))
		}
	}

	return clusters
}

// rankCluster sorts members (indices into groups, in slice order), writes
// each member's CascadeIndex and returns the cluster.
func rankCluster(groups []Group, members []int) Cluster {
	sort.SliceStable(members, func(a, b int) bool {
		ga, gb := groups[members[a]], groups[members[b]]
		pa, pb := ga.PrimaryLevel.Priority(), gb.PrimaryLevel.Priority()
		if pa != pb {
			return pa < pb
		}
		if ga.Bounds.Top != gb.Bounds.Top {
			return ga.Bounds.Top < gb.Bounds.Top
		}
		return ga.Bounds.Left < gb.Bounds.Left
	})

	keys := make([]string, len(members))
	for rank, m := range members {
		groups[m].CascadeIndex = rank
		keys[rank] = groups[m].Key
	}
	return Cluster{Keys: keys}
}
