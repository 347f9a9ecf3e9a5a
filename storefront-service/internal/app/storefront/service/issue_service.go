package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"velora/storefront-service/internal/app/storefront/entity"
	"velora/storefront-service/internal/app/storefront/repository"
)

// IssueService обрабатывает обращения в поддержку.
// Уведомления по email отправляет отдельный notification-сервис,
// здесь обращение только сохраняется
type IssueService struct {
	issueRepo repository.IssueRepository
}

func NewIssueService(issueRepo repository.IssueRepository) *IssueService {
	return &IssueService{
		issueRepo: issueRepo,
	}
}

// CreateIssue регистрирует новое обращение
// userID пустой для неаутентифицированных обращений
func (s *IssueService) CreateIssue(ctx context.Context, userID string, req *entity.CreateIssueRequest) (*entity.Issue, error) {
	category := req.Category
	if category == "" {
		category = "Other"
	}

	issue := &entity.Issue{
		UserID:   userID,
		Name:     req.Name,
		Email:    req.Email,
		Subject:  req.Subject,
		Category: category,
		OrderID:  req.OrderID,
		Message:  req.Message,
		Status:   entity.IssueStatusOpen,
	}

	if err := s.issueRepo.Create(ctx, issue); err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}

	return issue, nil
}

// ListIssues получает обращения по фильтрам администратора
func (s *IssueService) ListIssues(ctx context.Context, filter entity.IssueFilter) ([]entity.Issue, error) {
	issues, err := s.issueRepo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}

	return issues, nil
}

// UpdateIssue меняет статус обращения и/или добавляет заметку администратора
func (s *IssueService) UpdateIssue(ctx context.Context, id string, req *entity.UpdateIssueRequest) (*entity.Issue, error) {
	issue, err := s.issueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrIssueNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	if req.Status != "" {
		issue.Status = req.Status
	}
	if req.Note != "" {
		issue.AdminNotes = append(issue.AdminNotes, entity.IssueNote{
			Note:      req.Note,
			CreatedAt: time.Now(),
		})
	}

	if err := s.issueRepo.Update(ctx, issue); err != nil {
		if errors.Is(err, repository.ErrIssueNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to update issue: %w", err)
	}

	return issue, nil
}
