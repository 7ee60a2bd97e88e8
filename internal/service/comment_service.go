package service

import (
	"context"
	"fmt"
	"time"

	"game-center/internal/domain"
	"game-center/internal/repository"

	"github.com/google/uuid"
)

// CommentService defines the business logic for product comments. Creation
// is open to any authenticated user; edit and delete are restricted to the
// comment's author.
type CommentService interface {
	Create(ctx context.Context, productID, authorID uuid.UUID, text string) (*domain.Comment, error)
	Update(ctx context.Context, commentID, requesterID uuid.UUID, text string) (*domain.Comment, error)
	Delete(ctx context.Context, commentID, requesterID uuid.UUID) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	productRepo repository.ProductRepository
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(commentRepo repository.CommentRepository, productRepo repository.ProductRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		productRepo: productRepo,
	}
}

// Create attaches a new comment to a product.
func (s *commentService) Create(ctx context.Context, productID, authorID uuid.UUID, text string) (*domain.Comment, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	now := time.Now()
	comment := &domain.Comment{
		ID:        uuid.New(),
		ProductID: productID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// Update replaces a comment's text. Fails with ErrPermissionDenied when the
// requester is not the author, leaving the comment unmodified.
func (s *commentService) Update(ctx context.Context, commentID, requesterID uuid.UUID, text string) (*domain.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if err := requireOwner(comment.AuthorID, requesterID); err != nil {
		return nil, err
	}

	if err := s.commentRepo.UpdateText(ctx, commentID, text); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	comment.Text = text
	return comment, nil
}

// Delete removes a comment. Same ownership rule as Update.
func (s *commentService) Delete(ctx context.Context, commentID, requesterID uuid.UUID) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}

	if err := requireOwner(comment.AuthorID, requesterID); err != nil {
		return err
	}

	return s.commentRepo.Delete(ctx, commentID)
}

// ListByProduct returns a product's comments, newest first.
func (s *commentService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Comment, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	return s.commentRepo.ListByProduct(ctx, productID)
}
