package pipeline

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gizzahub/fleetgit/pkg/manifest"
)

// CleanResult summarizes what Clean removed.
type CleanResult struct {
	RemovedCount int
	Failures     []CleanFailure
}

// CleanFailure records one path Clean could not remove.
type CleanFailure struct {
	RelPath string
	Err     error
}

// Clean walks baseDir for nested ".git" directories that do not belong
// to any repo declared in repos, and removes the working copies they
// root - except for the parts of those working copies that a still-declared
// repo happens to live under (a manifest entry nested inside a directory
// that is itself not declared keeps its own ancestors alive).
func Clean(baseDir string, repos []manifest.RepoConfig) CleanResult {
	declared := make([]string, 0, len(repos))
	for _, r := range repos {
		declared = append(declared, filepath.Clean(r.DisplayLocal()))
	}

	var unused []string
	_ = filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if d.Name() != ".git" {
			return nil
		}

		repoDir := filepath.Dir(path)
		rel, relErr := filepath.Rel(baseDir, repoDir)
		if relErr != nil {
			return filepath.SkipDir
		}
		rel = filepath.Clean(rel)

		if !containsExact(declared, rel) {
			unused = append(unused, rel)
		}
		return filepath.SkipDir
	})

	var result CleanResult
	for _, rel := range unused {
		contained := containedBeneath(rel, declared)
		if len(contained) == 0 {
			if err := os.RemoveAll(filepath.Join(baseDir, rel)); err != nil {
				result.Failures = append(result.Failures, CleanFailure{RelPath: rel, Err: err})
				continue
			}
		} else if err := removePreservingContained(baseDir, rel, contained); err != nil {
			result.Failures = append(result.Failures, CleanFailure{RelPath: rel, Err: err})
			continue
		}
		result.RemovedCount++
	}
	return result
}

func containsExact(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}
	return false
}

// containedBeneath returns every declared repo path that lives inside
// unusedPath, so its files survive the cleanup of unusedPath's remainder.
func containedBeneath(unusedPath string, declared []string) []string {
	var contained []string
	prefix := unusedPath + string(filepath.Separator)
	for _, d := range declared {
		if strings.HasPrefix(d+string(filepath.Separator), prefix) || d == unusedPath {
			contained = append(contained, d)
		}
	}
	return contained
}

// removePreservingContained deletes everything under baseDir/unusedPath
// except the directories in contained and their ancestors.
func removePreservingContained(baseDir, unusedPath string, contained []string) error {
	full := filepath.Join(baseDir, unusedPath)

	return filepath.WalkDir(full, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(baseDir, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.Clean(rel)

		if containsExact(contained, rel) {
			return filepath.SkipDir
		}
		if d.IsDir() {
			if len(containedBeneath(rel, contained)) > 0 {
				return nil
			}
			if err := os.RemoveAll(path); err != nil {
				return err
			}
			return filepath.SkipDir
		}
		return os.Remove(path)
	})
}
