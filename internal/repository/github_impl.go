package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v74/github"
	"github.com/labsyspharm/release-tagger/internal/config"
	"github.com/labsyspharm/release-tagger/internal/domain"
	"golang.org/x/oauth2"
)

// GithubOptions configures the hosting API client.
type GithubOptions struct {
	Owner    string
	Repo     string
	BaseURL  string
	AuthMode string
	Cred     domain.Credential
	Timeout  time.Duration
}

// githubRepository is the implementation of the GithubRepository interface.
type githubRepository struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGithubRepository creates a new GithubRepository with validation.
func NewGithubRepository(opts GithubOptions) (GithubRepository, error) {
	if err := config.ValidateGitHubOwnerRepo(opts.Owner, opts.Repo); err != nil {
		return nil, fmt.Errorf("invalid repository configuration: %w", err)
	}
	if strings.TrimSpace(opts.Cred.Token) == "" {
		return nil, fmt.Errorf("%w: access token is empty", domain.ErrCredential)
	}
	httpClient, err := newHTTPClient(opts)
	if err != nil {
		return nil, err
	}
	client := github.NewClient(httpClient)
	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid api url %q: %w", opts.BaseURL, err)
		}
		client.BaseURL = u
	}
	return &githubRepository{
		client: client,
		owner:  opts.Owner,
		repo:   opts.Repo,
	}, nil
}

func newHTTPClient(opts GithubOptions) (*http.Client, error) {
	token := strings.TrimSpace(opts.Cred.Token)
	switch opts.AuthMode {
	case config.AuthModeBasic, "":
		if opts.Cred.Username == "" {
			return nil, fmt.Errorf("%w: basic auth requires a username", domain.ErrCredential)
		}
		tp := &github.BasicAuthTransport{
			Username: opts.Cred.Username,
			Password: token,
		}
		return &http.Client{Transport: tp, Timeout: opts.Timeout}, nil
	case config.AuthModeBearer:
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		tc := oauth2.NewClient(context.Background(), ts)
		tc.Timeout = opts.Timeout
		return tc, nil
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", opts.AuthMode)
	}
}

// GetCommit looks up the commit on the upstream project.
func (r *githubRepository) GetCommit(ctx context.Context, sha string) Result {
	return r.do(ctx, http.MethodGet, r.path("commits", url.PathEscape(sha)), nil)
}

// GetTagRef looks up refs/tags/<tag>; a 404 means the tag is free.
func (r *githubRepository) GetTagRef(ctx context.Context, tag string) Result {
	return r.do(ctx, http.MethodGet, r.path("git/refs/tags", url.PathEscape(tag)), nil)
}

// CreateTag creates the annotated tag object and returns its server-assigned sha.
func (r *githubRepository) CreateTag(ctx context.Context, tag domain.TagPayload) (string, Result) {
	res := r.do(ctx, http.MethodPost, r.path("git/tags"), tag)
	if !res.OK {
		return "", res
	}
	var created github.Tag
	if err := json.Unmarshal(res.Body, &created); err != nil {
		res.OK = false
		res.Err = fmt.Errorf("failed to decode tag response: %w", err)
		return "", res
	}
	if created.GetSHA() == "" {
		res.OK = false
		res.Err = errors.New("tag response did not include a sha")
		return "", res
	}
	return created.GetSHA(), res
}

// CreateRef creates the reference that makes the tag object reachable.
func (r *githubRepository) CreateRef(ctx context.Context, ref domain.RefPayload) Result {
	return r.do(ctx, http.MethodPost, r.path("git/refs"), ref)
}

// CreateRelease creates the release for an existing tag.
func (r *githubRepository) CreateRelease(ctx context.Context, release domain.ReleasePayload) Result {
	return r.do(ctx, http.MethodPost, r.path("releases"), release)
}

// DeleteTagRef removes refs/tags/<tag>.
func (r *githubRepository) DeleteTagRef(ctx context.Context, tag string) Result {
	return r.do(ctx, http.MethodDelete, r.path("git/refs/tags", url.PathEscape(tag)), nil)
}

func (r *githubRepository) path(parts ...string) string {
	return fmt.Sprintf("repos/%s/%s/%s", r.owner, r.repo, strings.Join(parts, "/"))
}

// do sends one request and folds the go-github outcome into a Result.
func (r *githubRepository) do(ctx context.Context, method, path string, body any) Result {
	req, err := r.client.NewRequest(method, path, body)
	if err != nil {
		return Result{Err: fmt.Errorf("failed to build %s %s: %w", method, path, err)}
	}
	var buf bytes.Buffer
	resp, err := r.client.Do(ctx, req, &buf)
	res := Result{Body: buf.Bytes(), Err: err}
	if resp != nil {
		res.Status = resp.StatusCode
	}
	res.OK = err == nil && res.Status >= 200 && res.Status < 300
	return res
}
