package orchestrator

import (
	"fmt"
	"regexp"
)

var commitSHARegex = regexp.MustCompile(`^[0-9a-f]{40}$`)

// ValidateCommitSHA checks that sha is a full lowercase hex commit id.
func ValidateCommitSHA(sha string) error {
	if !commitSHARegex.MatchString(sha) {
		return fmt.Errorf("invalid commit sha: %q", sha)
	}
	return nil
}
