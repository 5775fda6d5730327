package domain

import "time"

// TagObjectType is the object type of every tag this tool creates.
const TagObjectType = "commit"

const (
	taggerDateLayout = "2006-01-02T15:04:05"
	taggerUTCOffset  = "+00:00"
)

// Identity is the committer identity read from git configuration.
type Identity struct {
	Name  string
	Email string
}

// Tagger is the tagger block of an annotated tag.
type Tagger struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Date  string `json:"date"`
}

// TagPayload is the body sent to create an annotated tag object.
type TagPayload struct {
	Tag     string `json:"tag"`
	Message string `json:"message"`
	Object  string `json:"object"`
	Type    string `json:"type"`
	Tagger  Tagger `json:"tagger"`
}

// RefPayload is the body sent to create a tag reference.
type RefPayload struct {
	Ref string `json:"ref"`
	SHA string `json:"sha"`
}

// ReleasePayload is the body sent to create a release.
type ReleasePayload struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
}

// FormatTaggerDate formats t as YYYY-MM-DDTHH:MM:SS+00:00 in UTC.
func FormatTaggerDate(t time.Time) string {
	return t.UTC().Format(taggerDateLayout) + taggerUTCOffset
}

// NewTagPayload builds the annotated tag for version pointing at head.
func NewTagPayload(version *Version, head string, who Identity, now time.Time) TagPayload {
	return TagPayload{
		Tag:     version.TagName(),
		Message: version.TagMessage(),
		Object:  head,
		Type:    TagObjectType,
		Tagger: Tagger{
			Name:  who.Name,
			Email: who.Email,
			Date:  FormatTaggerDate(now),
		},
	}
}

// NewRefPayload builds the tag reference. tagSHA must be the sha the server
// assigned to the tag object.
func NewRefPayload(version *Version, tagSHA string) RefPayload {
	return RefPayload{
		Ref: version.TagRef(),
		SHA: tagSHA,
	}
}

// NewReleasePayload builds the release for version of project.
func NewReleasePayload(version *Version, project string) ReleasePayload {
	return ReleasePayload{
		TagName: version.TagName(),
		Name:    version.ReleaseName(project),
	}
}
