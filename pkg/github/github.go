package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v35/github"
	"golang.org/x/oauth2"
)

type Client struct {
	client *github.Client
}

// APIURL returns the REST root for a GitHub host. Enterprise installations
// serve the API under /api/v3 of the host itself.
func APIURL(baseURL string, enterprise bool) string {
	if enterprise {
		return fmt.Sprintf("https://%s/api/v3/", baseURL)
	}
	return fmt.Sprintf("https://api.%s/", baseURL)
}

func NewClient(ctx context.Context, token, apiURL string) (*Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	if !strings.HasSuffix(apiURL, "/") {
		apiURL += "/"
	}
	u, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", apiURL, err)
	}

	c := github.NewClient(tc)
	c.BaseURL = u
	return &Client{client: c}, nil
}

// OrgRepositories returns an iterator over the pages of repository names of
// org. Nothing is requested until the first call to Next.
func (c *Client) OrgRepositories(org string) *RepositoryPages {
	return &RepositoryPages{
		client: c.client,
		org:    org,
		opts: &github.RepositoryListByOrgOptions{
			ListOptions: github.ListOptions{PerPage: perPage},
		},
	}
}

// RepositoryPages walks the Link pagination of /orgs/{org}/repos. It cannot
// be restarted.
type RepositoryPages struct {
	client *github.Client
	org    string
	opts   *github.RepositoryListByOrgOptions

	page []string
	done bool
	err  error
}

// Next fetches the following page. It returns false once the previous
// response carried no next link or a request failed; Err tells the two apart.
func (p *RepositoryPages) Next(ctx context.Context) bool {
	if p.done {
		return false
	}

	repos, resp, err := p.client.Repositories.ListByOrg(ctx, p.org, p.opts)
	if err != nil {
		p.fail(asAPIError(err))
		return false
	}
	if resp.StatusCode != http.StatusOK {
		p.fail(&APIError{StatusCode: resp.StatusCode, Body: responseBody(resp.Response)})
		return false
	}

	p.page = make([]string, 0, len(repos))
	for _, repo := range repos {
		p.page = append(p.page, repo.GetName())
	}

	if resp.NextPage == 0 {
		p.done = true
	} else {
		p.opts.Page = resp.NextPage
	}
	return true
}

func (p *RepositoryPages) Page() []string {
	return p.page
}

func (p *RepositoryPages) Err() error {
	return p.err
}

func (p *RepositoryPages) fail(err error) {
	p.page = nil
	p.done = true
	p.err = err
}

func asAPIError(err error) error {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return &APIError{StatusCode: errResp.Response.StatusCode, Body: responseBody(errResp.Response)}
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) && rateErr.Response != nil {
		return &APIError{StatusCode: rateErr.Response.StatusCode, Body: responseBody(rateErr.Response)}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) && abuseErr.Response != nil {
		return &APIError{StatusCode: abuseErr.Response.StatusCode, Body: responseBody(abuseErr.Response)}
	}

	var acceptedErr *github.AcceptedError
	if errors.As(err, &acceptedErr) {
		return &APIError{StatusCode: http.StatusAccepted, Body: string(acceptedErr.Raw)}
	}

	return fmt.Errorf("failed to list repositories: %w", err)
}

// responseBody returns what is left of the body. go-github puts the raw
// bytes back after decoding an error, so for failures this is the full body.
func responseBody(r *http.Response) string {
	if r == nil || r.Body == nil {
		return ""
	}
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return ""
	}
	return string(b)
}
