// Package selector narrows a manifest's repo list down to the subset a
// given invocation should operate on: explicit ignore paths removed,
// then (if requested) only repos carrying at least one of the given
// labels kept.
package selector

import (
	"strings"

	"github.com/gizzahub/fleetgit/pkg/manifest"
)

// Selected pairs a RepoConfig with the stable index it held in the
// manifest's original repo list, mirroring the sequential numbering a
// progress sink reports against.
type Selected struct {
	Index int
	Repo  manifest.RepoConfig
}

// Select returns repos from all, in manifest order, excluding any whose
// DisplayLocal matches an entry in ignore, and - when labels is
// non-empty - keeping only repos that carry at least one of labels.
// A repo with no labels is excluded whenever a label filter is active.
func Select(all []manifest.RepoConfig, ignore, labels []string) []Selected {
	ignoreSet := toSet(ignore)
	labelSet := toSet(labels)

	out := make([]Selected, 0, len(all))
	for i, r := range all {
		if _, skip := ignoreSet[r.DisplayLocal()]; skip {
			continue
		}
		if len(labelSet) > 0 && !hasAnyLabel(r.Labels, labelSet) {
			continue
		}
		out = append(out, Selected{Index: i + 1, Repo: r})
	}
	return out
}

func hasAnyLabel(repoLabels []string, wanted map[string]struct{}) bool {
	for _, l := range repoLabels {
		if _, ok := wanted[l]; ok {
			return true
		}
	}
	return false
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[strings.TrimSpace(it)] = struct{}{}
	}
	return set
}
