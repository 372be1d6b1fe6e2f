package github

import (
	"context"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/mock"
)

type MockIssuesService struct {
	mock.Mock
}

func (m *MockIssuesService) ListByRepo(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error) {
	args := m.Called(ctx, owner, repo, opts)
	if args.Get(0) == nil {
		return nil, args.Get(1).(*github.Response), args.Error(2)
	}
	return args.Get(0).([]*github.Issue), args.Get(1).(*github.Response), args.Error(2)
}

func (m *MockIssuesService) Get(ctx context.Context, owner, repo string, number int) (*github.Issue, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number)
	if args.Get(0) == nil {
		return nil, args.Get(1).(*github.Response), args.Error(2)
	}
	return args.Get(0).(*github.Issue), args.Get(1).(*github.Response), args.Error(2)
}

func (m *MockIssuesService) ListComments(ctx context.Context, owner, repo string, number int, opts *github.IssueListCommentsOptions) ([]*github.IssueComment, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, opts)
	if args.Get(0) == nil {
		return nil, args.Get(1).(*github.Response), args.Error(2)
	}
	return args.Get(0).([]*github.IssueComment), args.Get(1).(*github.Response), args.Error(2)
}

type MockUsersService struct {
	mock.Mock
}

func (m *MockUsersService) Get(ctx context.Context, user string) (*github.User, *github.Response, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Get(1).(*github.Response), args.Error(2)
	}
	return args.Get(0).(*github.User), args.Get(1).(*github.Response), args.Error(2)
}
