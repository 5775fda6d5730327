package repository

import (
	"context"
	"net/http"

	"github.com/labsyspharm/release-tagger/internal/domain"
)

// Result is the outcome of one hosting API call. Transport failures and
// non-2xx responses both yield OK == false; Status is 0 when no response arrived.
type Result struct {
	OK     bool
	Status int
	Body   []byte
	Err    error
}

// NotFound reports whether the server answered 404.
func (r Result) NotFound() bool {
	return r.Status == http.StatusNotFound
}

// GithubRepository defines the hosting API calls of a release, bound to one upstream project.

type GithubRepository interface {
	GetCommit(ctx context.Context, sha string) Result
	GetTagRef(ctx context.Context, tag string) Result
	CreateTag(ctx context.Context, tag domain.TagPayload) (string, Result)
	CreateRef(ctx context.Context, ref domain.RefPayload) Result
	CreateRelease(ctx context.Context, release domain.ReleasePayload) Result
	DeleteTagRef(ctx context.Context, tag string) Result
}
