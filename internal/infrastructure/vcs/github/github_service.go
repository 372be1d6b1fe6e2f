package github

import (
	"context"
	"net/http"

	"github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	domainErrors "github.com/bingdu748/gitblog/internal/errors"
	"github.com/bingdu748/gitblog/internal/logger"
	"github.com/bingdu748/gitblog/internal/models"
)

// IssuesService is the slice of the go-github Issues API the fetcher needs.
// Narrowed for testability.
type IssuesService interface {
	ListByRepo(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error)
	Get(ctx context.Context, owner, repo string, number int) (*github.Issue, *github.Response, error)
	ListComments(ctx context.Context, owner, repo string, number int, opts *github.IssueListCommentsOptions) ([]*github.IssueComment, *github.Response, error)
}

// UsersService resolves the authenticated user for owner gating.
type UsersService interface {
	Get(ctx context.Context, user string) (*github.User, *github.Response, error)
}

// Client fetches issue records from one GitHub repository.
type Client struct {
	issuesService IssuesService
	usersService  UsersService
	owner         string
	repo          string
}

func NewClient(owner, repo, token string) *Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	return &Client{
		issuesService: client.Issues,
		usersService:  client.Users,
		owner:         owner,
		repo:          repo,
	}
}

func NewClientWithServices(issuesService IssuesService, usersService UsersService, owner, repo string) *Client {
	return &Client{
		issuesService: issuesService,
		usersService:  usersService,
		owner:         owner,
		repo:          repo,
	}
}

// FetchIssues retrieves every issue of the repository (open and closed),
// following pagination and skipping pull requests. Comments are fetched per
// issue so the records are self-contained.
func (c *Client) FetchIssues(ctx context.Context) ([]models.IssueRecord, error) {
	opts := &github.IssueListByRepoOptions{
		State:     "all",
		Sort:      "updated",
		Direction: "desc",
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	var records []models.IssueRecord
	for {
		issues, resp, err := c.issuesService.ListByRepo(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, c.classifyAPIError(err, resp, domainErrors.ErrFetchIssues)
		}

		for _, issue := range issues {
			if issue.PullRequestLinks != nil {
				continue
			}
			record, err := c.buildRecord(ctx, issue)
			if err != nil {
				return nil, err
			}
			records = append(records, record)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}

	logger.Debug(ctx, "fetched issue records", "count", len(records))
	return records, nil
}

// FetchIssue retrieves one issue by number, or nil when it is not an issue
// (e.g. a pull request).
func (c *Client) FetchIssue(ctx context.Context, number int) (*models.IssueRecord, error) {
	issue, resp, err := c.issuesService.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return nil, c.classifyAPIError(err, resp, domainErrors.ErrFetchIssue.WithContext("issue_number", number))
	}
	if issue.PullRequestLinks != nil {
		return nil, nil
	}

	record, err := c.buildRecord(ctx, issue)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// AuthenticatedUser returns the login of the token's user.
func (c *Client) AuthenticatedUser(ctx context.Context) (string, error) {
	user, resp, err := c.usersService.Get(ctx, "")
	if err != nil {
		return "", c.classifyAPIError(err, resp, domainErrors.ErrTokenInvalid)
	}
	return user.GetLogin(), nil
}

func (c *Client) buildRecord(ctx context.Context, issue *github.Issue) (models.IssueRecord, error) {
	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		if label.Name != nil {
			labels = append(labels, label.GetName())
		}
	}

	record := models.IssueRecord{
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		Body:      issue.GetBody(),
		Labels:    labels,
		Author:    issue.GetUser().GetLogin(),
		State:     issue.GetState(),
		CreatedAt: issue.GetCreatedAt().Time,
		UpdatedAt: issue.GetUpdatedAt().Time,
		URL:       issue.GetHTMLURL(),
	}

	if issue.GetComments() == 0 {
		return record, nil
	}

	comments, err := c.fetchComments(ctx, record.Number)
	if err != nil {
		return models.IssueRecord{}, err
	}
	record.Comments = comments
	return record, nil
}

func (c *Client) fetchComments(ctx context.Context, number int) ([]models.Comment, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var comments []models.Comment
	for {
		page, resp, err := c.issuesService.ListComments(ctx, c.owner, c.repo, number, opts)
		if err != nil {
			return nil, c.classifyAPIError(err, resp, domainErrors.ErrFetchComments.WithContext("issue_number", number))
		}

		for _, comment := range page {
			comments = append(comments, models.Comment{
				Author:    comment.GetUser().GetLogin(),
				Body:      comment.GetBody(),
				CreatedAt: comment.GetCreatedAt().Time,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}

	return comments, nil
}

func (c *Client) classifyAPIError(err error, resp *github.Response, fallback *domainErrors.AppError) error {
	if resp != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return domainErrors.ErrTokenInvalid.WithError(err)
		case http.StatusForbidden:
			return domainErrors.ErrRateLimit.WithError(err)
		}
	}
	return fallback.WithError(err)
}
