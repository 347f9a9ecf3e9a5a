package handler

import (
	"context"
	"errors"
	"net/http"

	"velora/storefront-service/internal/app/storefront/entity"
	"velora/storefront-service/internal/app/storefront/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type IssueServiceInterface interface {
	CreateIssue(ctx context.Context, userID string, req *entity.CreateIssueRequest) (*entity.Issue, error)
	ListIssues(ctx context.Context, filter entity.IssueFilter) ([]entity.Issue, error)
	UpdateIssue(ctx context.Context, id string, req *entity.UpdateIssueRequest) (*entity.Issue, error)
}

type IssueHandler struct {
	issueService IssueServiceInterface
	validator    *validator.Validate
}

func NewIssueHandler(issueService IssueServiceInterface) *IssueHandler {
	return &IssueHandler{
		issueService: issueService,
		validator:    validator.New(),
	}
}

// CreateIssue регистрирует обращение в поддержку.
// Маршрут публичный: user_id берется из контекста, если запрос
// пришел с валидным токеном, иначе обращение анонимное
func (h *IssueHandler) CreateIssue(c *gin.Context) {
	var req entity.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	userID := ""
	if v, exists := c.Get("user_id"); exists {
		if s, ok := v.(string); ok {
			userID = s
		}
	}

	issue, err := h.issueService.CreateIssue(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}

	c.JSON(http.StatusCreated, issue)
}

// ListIssues возвращает обращения по фильтрам администратора:
// ?status=, ?email=, ?order_id=, ?q= (поиск по subject/message/email)
func (h *IssueHandler) ListIssues(c *gin.Context) {
	filter := entity.IssueFilter{
		Status:  c.Query("status"),
		Email:   c.Query("email"),
		OrderID: c.Query("order_id"),
		Query:   c.Query("q"),
	}

	issues, err := h.issueService.ListIssues(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get issues"})
		return
	}

	c.JSON(http.StatusOK, entity.IssueListResponse{
		Issues: issues,
		Total:  len(issues),
	})
}

func (h *IssueHandler) UpdateIssue(c *gin.Context) {
	issueID := c.Param("issue_id")
	if issueID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Issue ID is required"})
		return
	}

	var req entity.UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	issue, err := h.issueService.UpdateIssue(c.Request.Context(), issueID, &req)
	if err != nil {
		if errors.Is(err, service.ErrIssueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		return
	}

	c.JSON(http.StatusOK, issue)
}
