// internal/services/review_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/database"
	"github.com/javajoker/storefront-backend/internal/events"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/utils"
)

const DefaultReviewsPageLimit = 5

type ReviewService struct {
	uow       database.UnitOfWork
	publisher events.Publisher
	topic     string
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=5000"`
}

type ReviewPage struct {
	Reviews     []models.Review `json:"reviews"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
	TotalItems  int64           `json:"totalItems"`
}

// RatingSummary is the derived aggregate stored on a product.
type RatingSummary struct {
	AverageRating decimal.NullDecimal `json:"averageRating"`
	ReviewCount   int                 `json:"reviewCount"`
}

func NewReviewService(uow database.UnitOfWork, publisher events.Publisher, topic string) *ReviewService {
	return &ReviewService{
		uow:       uow,
		publisher: publisher,
		topic:     topic,
	}
}

func (s *ReviewService) CreateReview(ctx context.Context, userID, productID uint, req *ReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	review := &models.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	var summary RatingSummary

	err := s.uow.Transaction(ctx, func(tx *gorm.DB) error {
		if err := ensureProductExists(tx, productID); err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.Review{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		if existing > 0 {
			return fmt.Errorf("%w: you have already reviewed this product", ErrConflict)
		}

		if err := tx.Create(review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: you have already reviewed this product", ErrConflict)
			}
			return fmt.Errorf("failed to create review: %w", err)
		}

		var err error
		summary, err = recomputeProductRating(tx, productID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishRatingChanged(ctx, productID, summary)
	return review, nil
}

func (s *ReviewService) UpdateReview(ctx context.Context, actor Actor, reviewID uint, req *ReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	var review models.Review
	var summary RatingSummary

	err := s.uow.Transaction(ctx, func(tx *gorm.DB) error {
		if err := loadReviewFor(tx, actor, reviewID, &review); err != nil {
			return err
		}

		review.Rating = req.Rating
		review.Comment = req.Comment
		if err := tx.Model(&review).Updates(map[string]interface{}{
			"rating":  review.Rating,
			"comment": review.Comment,
		}).Error; err != nil {
			return fmt.Errorf("failed to update review: %w", err)
		}

		var err error
		summary, err = recomputeProductRating(tx, review.ProductID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishRatingChanged(ctx, review.ProductID, summary)
	return &review, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, actor Actor, reviewID uint) error {
	var review models.Review
	var summary RatingSummary

	err := s.uow.Transaction(ctx, func(tx *gorm.DB) error {
		if err := loadReviewFor(tx, actor, reviewID, &review); err != nil {
			return err
		}

		if err := tx.Delete(&review).Error; err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}

		var err error
		summary, err = recomputeProductRating(tx, review.ProductID)
		return err
	})
	if err != nil {
		return err
	}

	s.publishRatingChanged(ctx, review.ProductID, summary)
	return nil
}

func (s *ReviewService) ListProductReviews(ctx context.Context, productID uint, params utils.PaginationParams) (*ReviewPage, error) {
	if err := ensureProductExists(s.uow.DB(ctx), productID); err != nil {
		return nil, err
	}

	var total int64
	if err := s.uow.DB(ctx).Model(&models.Review{}).
		Where("product_id = ?", productID).
		Count(&total).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var reviews []models.Review
	query := s.uow.DB(ctx).
		Where("product_id = ?", productID).
		Preload("User").
		Order("created_at DESC, id DESC")
	if err := utils.ApplyPagination(query, params).Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &ReviewPage{
		Reviews:     reviews,
		TotalPages:  utils.TotalPages(total, params.Limit),
		CurrentPage: params.Page,
		TotalItems:  total,
	}, nil
}

func (s *ReviewService) publishRatingChanged(ctx context.Context, productID uint, summary RatingSummary) {
	publish(ctx, s.publisher, s.topic, strconv.FormatUint(uint64(productID), 10),
		events.New(events.TypeProductRatingChanged, events.ProductRatingChanged{
			ProductID:     productID,
			AverageRating: summary.AverageRating,
			ReviewCount:   summary.ReviewCount,
		}))
}

// loadReviewFor fetches the review and checks the actor may change it.
func loadReviewFor(tx *gorm.DB, actor Actor, reviewID uint, review *models.Review) error {
	if err := tx.First(review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("review %d: %w", reviewID, ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	if !actor.CanModify(review.UserID) {
		logrus.WithFields(logrus.Fields{
			"review_id": reviewID,
			"user_id":   actor.UserID,
		}).Warn("Review change denied")
		return fmt.Errorf("%w: only the author or an admin may change this review", ErrForbidden)
	}
	return nil
}

func ensureProductExists(db *gorm.DB, productID uint) error {
	var count int64
	if err := db.Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: id %d", ErrProductNotFound, productID)
	}
	return nil
}

// recomputeProductRating re-derives the product's rating aggregate from the
// full review set. It must run in the transaction that changed the reviews.
func recomputeProductRating(tx *gorm.DB, productID uint) (RatingSummary, error) {
	var agg struct {
		Count int64
		Sum   int64
	}
	if err := tx.Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(SUM(rating), 0) AS sum").
		Where("product_id = ?", productID).
		Scan(&agg).Error; err != nil {
		return RatingSummary{}, fmt.Errorf("failed to aggregate reviews: %w", err)
	}

	summary := RatingSummary{ReviewCount: int(agg.Count)}
	if agg.Count > 0 {
		mean := decimal.NewFromInt(agg.Sum).Div(decimal.NewFromInt(agg.Count))
		summary.AverageRating = decimal.NewNullDecimal(mean.Round(2))
	}

	if err := tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"average_rating": summary.AverageRating,
			"review_count":   summary.ReviewCount,
		}).Error; err != nil {
		return RatingSummary{}, fmt.Errorf("failed to update product rating: %w", err)
	}

	return summary, nil
}
