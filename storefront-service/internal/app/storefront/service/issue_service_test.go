package service

import (
	"context"
	"testing"

	"velora/storefront-service/internal/app/storefront/entity"
	"velora/storefront-service/internal/app/storefront/repository"
	"velora/storefront-service/internal/app/storefront/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateIssue_DefaultsApplied(t *testing.T) {
	issueRepo := new(mocks.MockIssueRepository)
	service := NewIssueService(issueRepo)
	ctx := context.Background()

	issueRepo.On("Create", ctx, mock.AnythingOfType("*entity.Issue")).Return(nil)

	result, err := service.CreateIssue(ctx, "", &entity.CreateIssueRequest{
		Name:    "Jordan",
		Email:   "jordan@example.com",
		Subject: "Missing parcel",
		Message: "My order never arrived.",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.IssueStatusOpen, result.Status)
	assert.Equal(t, "Other", result.Category)
	assert.Empty(t, result.UserID)
}

func TestCreateIssue_KeepsAuthenticatedUser(t *testing.T) {
	issueRepo := new(mocks.MockIssueRepository)
	service := NewIssueService(issueRepo)
	ctx := context.Background()

	issueRepo.On("Create", ctx, mock.Anything).Return(nil)

	result, err := service.CreateIssue(ctx, "user-42", &entity.CreateIssueRequest{
		Name:     "Jordan",
		Email:    "jordan@example.com",
		Subject:  "Refund",
		Category: "Payment",
		Message:  "Refund not received.",
	})

	assert.NoError(t, err)
	assert.Equal(t, "user-42", result.UserID)
	assert.Equal(t, "Payment", result.Category)
}

func TestListIssues_FilterPassedThrough(t *testing.T) {
	issueRepo := new(mocks.MockIssueRepository)
	service := NewIssueService(issueRepo)
	ctx := context.Background()

	filter := entity.IssueFilter{Status: entity.IssueStatusOpen, Email: "jordan@example.com"}
	issueRepo.On("Find", ctx, filter).Return([]entity.Issue{{ID: primitive.NewObjectID()}}, nil)

	result, err := service.ListIssues(ctx, filter)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestUpdateIssue_StatusAndNote(t *testing.T) {
	issueRepo := new(mocks.MockIssueRepository)
	service := NewIssueService(issueRepo)
	ctx := context.Background()

	issue := &entity.Issue{ID: primitive.NewObjectID(), Status: entity.IssueStatusOpen}
	issueRepo.On("GetByID", ctx, issue.ID.Hex()).Return(issue, nil)
	issueRepo.On("Update", ctx, mock.Anything).Return(nil)

	result, err := service.UpdateIssue(ctx, issue.ID.Hex(), &entity.UpdateIssueRequest{
		Status: entity.IssueStatusResolved,
		Note:   "Replacement shipped.",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.IssueStatusResolved, result.Status)
	assert.Len(t, result.AdminNotes, 1)
	assert.Equal(t, "Replacement shipped.", result.AdminNotes[0].Note)
}

func TestUpdateIssue_NotFound(t *testing.T) {
	issueRepo := new(mocks.MockIssueRepository)
	service := NewIssueService(issueRepo)
	ctx := context.Background()

	id := primitive.NewObjectID().Hex()
	issueRepo.On("GetByID", ctx, id).Return(nil, repository.ErrIssueNotFound)

	result, err := service.UpdateIssue(ctx, id, &entity.UpdateIssueRequest{Status: entity.IssueStatusResolved})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrIssueNotFound)
}
