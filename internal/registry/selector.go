package registry

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/jakoblorz/drupal-init/internal/models"
)

// VersionSelector picks the best version of a package under a minimum
// stability, preferring stable releases
type VersionSelector struct {
	repo      Repository
	stability models.Stability
}

// NewVersionSelector creates a selector over repo with the given stability floor
func NewVersionSelector(repo Repository, stability models.Stability) *VersionSelector {
	if stability == "" {
		stability = models.DefaultStability
	}
	return &VersionSelector{
		repo:      repo,
		stability: stability,
	}
}

// FindBestCandidate returns the best version of name.
// Returns ErrPackageNotFound when no repository lists the package and
// ErrNoCandidateVersion when every version is below the stability floor.
func (s *VersionSelector) FindBestCandidate(ctx context.Context, name string) (*PackageVersion, error) {
	versions, err := s.repo.FindPackage(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: could not find package %s", models.ErrPackageNotFound, name)
	}

	var candidates []PackageVersion
	for _, v := range versions {
		if s.stability.Allows(v.Stability()) {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: could not find a version of package %s matching your minimum-stability (%s)",
			models.ErrNoCandidateVersion, name, s.stability)
	}

	best := SelectBest(candidates, models.StabilityStable)
	return &best, nil
}

// SelectBest returns the highest version, skipping candidates less stable
// than preferred whenever a more stable one is available. candidates must
// not be empty.
func SelectBest(candidates []PackageVersion, preferred models.Stability) PackageVersion {
	minPriority := preferred.Priority()
	best := candidates[0]

	for _, candidate := range candidates[1:] {
		candidatePriority := candidate.Stability().Priority()
		currentPriority := best.Stability().Priority()

		// Less stable than preferred and than the current pick
		if minPriority < candidatePriority && currentPriority < candidatePriority {
			continue
		}

		// Stable enough while the current pick is not
		if minPriority >= candidatePriority && minPriority < currentPriority {
			best = candidate
			continue
		}

		if CompareVersions(best.Version, candidate.Version) < 0 {
			best = candidate
		}
	}

	return best
}

// CompareVersions orders two version strings semantically.
// Versions that are not semantic (branch names) sort below all others.
func CompareVersions(a, b string) int {
	va, errA := semver.NewVersion(strings.ToLower(a))
	vb, errB := semver.NewVersion(strings.ToLower(b))

	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}

	return va.Compare(vb)
}

// RecommendedConstraint returns the constraint to require for v:
//   - "8.4.2" -> "^8.4"
//   - "0.3.1" -> "^0.3.1"
//   - "8.5.0-beta2" -> "^8.5@beta"
//   - branches and four-part versions are returned verbatim
func RecommendedConstraint(v PackageVersion) string {
	if v.IsDev() {
		return v.Version
	}

	if parts := strings.Split(v.VersionNormalized, "."); len(parts) == 4 {
		if !strings.HasPrefix(parts[3], "0") {
			return v.Version
		}
	}

	parsed, err := semver.NewVersion(strings.ToLower(v.Version))
	if err != nil {
		return v.Version
	}

	var constraint string
	if parsed.Major() == 0 {
		constraint = fmt.Sprintf("^0.%d.%d", parsed.Minor(), parsed.Patch())
	} else {
		constraint = "^" + strconv.FormatUint(parsed.Major(), 10) + "." + strconv.FormatUint(parsed.Minor(), 10)
	}

	if stability := v.Stability(); stability != models.StabilityStable {
		constraint += "@" + string(stability)
	}

	return constraint
}
