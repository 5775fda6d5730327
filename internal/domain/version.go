package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// TagPrefix is prepended to the version to form the tag name.
const TagPrefix = "v"

var tagNameRegex = regexp.MustCompile(`^[a-zA-Z0-9._+/-]+$`)

// Version is the release version as written in the project metadata.
// Any string that forms a valid tag name is accepted (PEP 440 versions such
// as 0.5.0.dev1 included); tag and release names use it verbatim.
type Version struct {
	raw    string
	parsed *semver.Version
}

// NewVersion creates a new Version from a string.
func NewVersion(s string) (*Version, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return nil, fmt.Errorf("version cannot be empty")
	}
	if err := ValidateTagName(TagPrefix + raw); err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	v := &Version{raw: raw}
	if parsed, err := semver.NewVersion(raw); err == nil {
		v.parsed = parsed
	}
	return v, nil
}

// String returns the version exactly as read.
func (v *Version) String() string {
	return v.raw
}

// Semver returns the parsed semantic version, or nil when the version is not semver.
func (v *Version) Semver() *semver.Version {
	return v.parsed
}

// TagName returns the tag name, e.g. "v1.2.3".
func (v *Version) TagName() string {
	return TagPrefix + v.raw
}

// TagRef returns the fully qualified tag reference.
func (v *Version) TagRef() string {
	return "refs/tags/" + v.TagName()
}

// TagMessage returns the annotated tag message.
func (v *Version) TagMessage() string {
	return "Version " + v.raw
}

// ReleaseName returns the release display name for the given project.
func (v *Version) ReleaseName(project string) string {
	return project + " " + v.raw
}

// ValidateTagName validates a git tag name.
func ValidateTagName(tag string) error {
	if tag == "" {
		return fmt.Errorf("tag name cannot be empty")
	}
	if len(tag) > 255 {
		return fmt.Errorf("tag name too long: %d characters (max: 255)", len(tag))
	}
	if strings.HasPrefix(tag, "/") || strings.HasSuffix(tag, "/") {
		return fmt.Errorf("tag name cannot start or end with slash: %s", tag)
	}
	if strings.Contains(tag, "..") {
		return fmt.Errorf("tag name cannot contain consecutive dots: %s", tag)
	}
	if strings.HasSuffix(tag, ".lock") || strings.HasSuffix(tag, ".") {
		return fmt.Errorf("tag name cannot end with .lock or a dot: %s", tag)
	}
	if !tagNameRegex.MatchString(tag) {
		return fmt.Errorf("invalid tag name format: %s", tag)
	}
	return nil
}
