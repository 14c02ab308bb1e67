package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/database"
	"github.com/javajoker/storefront-backend/internal/events"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type ReviewServiceTestSuite struct {
	suite.Suite
	db        *gorm.DB
	publisher *recordingPublisher
	service   *ReviewService
	ctx       context.Context

	product *models.Product
	alice   *models.User
	bob     *models.User
	admin   *models.User
}

func (suite *ReviewServiceTestSuite) SetupTest() {
	t := suite.T()
	suite.db = newTestDB(t)
	suite.publisher = &recordingPublisher{}
	suite.service = NewReviewService(database.NewUnitOfWork(suite.db), suite.publisher, "review_events")
	suite.ctx = context.Background()

	suite.product = seedProduct(t, suite.db, "Chair", "10.00", 5)
	suite.alice = seedUser(t, suite.db, "alice", models.UserRoleClient)
	suite.bob = seedUser(t, suite.db, "bob", models.UserRoleClient)
	suite.admin = seedUser(t, suite.db, "admin", models.UserRoleAdmin)
}

// assertAggregate checks the stored aggregate against the stored reviews.
func (suite *ReviewServiceTestSuite) assertAggregate(wantAvg string, wantCount int) {
	t := suite.T()
	product := reloadProduct(t, suite.db, suite.product.ID)

	var reviews int64
	require.NoError(t, suite.db.Model(&models.Review{}).Where("product_id = ?", suite.product.ID).Count(&reviews).Error)
	assert.Equal(t, int(reviews), product.ReviewCount)
	assert.Equal(t, wantCount, product.ReviewCount)

	if wantAvg == "" {
		assert.False(t, product.AverageRating.Valid, "average rating should be null")
		return
	}
	require.True(t, product.AverageRating.Valid)
	assert.Equal(t, wantAvg, product.AverageRating.Decimal.StringFixed(2))
}

func (suite *ReviewServiceTestSuite) TestCreateReviewRecomputesAggregate() {
	t := suite.T()

	_, err := suite.service.CreateReview(suite.ctx, suite.alice.ID, suite.product.ID, &ReviewRequest{Rating: 5, Comment: "great"})
	require.NoError(t, err)
	suite.assertAggregate("5.00", 1)

	_, err = suite.service.CreateReview(suite.ctx, suite.bob.ID, suite.product.ID, &ReviewRequest{Rating: 4})
	require.NoError(t, err)
	suite.assertAggregate("4.50", 2)

	_, err = suite.service.CreateReview(suite.ctx, suite.admin.ID, suite.product.ID, &ReviewRequest{Rating: 4})
	require.NoError(t, err)
	suite.assertAggregate("4.33", 3)

	assert.Equal(t, []string{
		events.TypeProductRatingChanged,
		events.TypeProductRatingChanged,
		events.TypeProductRatingChanged,
	}, suite.publisher.types())
}

func (suite *ReviewServiceTestSuite) TestAverageRoundsHalfUp() {
	t := suite.T()
	carol := seedUser(t, suite.db, "carol", models.UserRoleClient)
	dave := seedUser(t, suite.db, "dave", models.UserRoleClient)
	erin := seedUser(t, suite.db, "erin", models.UserRoleClient)
	frank := seedUser(t, suite.db, "frank", models.UserRoleClient)
	gina := seedUser(t, suite.db, "gina", models.UserRoleClient)
	hank := seedUser(t, suite.db, "hank", models.UserRoleClient)

	// 5+5+5+5+5+4+2+2 = 33, 33/8 = 4.125
	users := []*models.User{suite.alice, suite.bob, suite.admin, carol, dave, erin, frank, gina}
	ratings := []int{5, 5, 5, 5, 5, 4, 2, 2}
	for i, u := range users {
		_, err := suite.service.CreateReview(suite.ctx, u.ID, suite.product.ID, &ReviewRequest{Rating: ratings[i]})
		require.NoError(t, err)
	}
	suite.assertAggregate("4.13", 8)

	// 34/9 = 3.777...
	_, err := suite.service.CreateReview(suite.ctx, hank.ID, suite.product.ID, &ReviewRequest{Rating: 1})
	require.NoError(t, err)
	suite.assertAggregate("3.78", 9)
}

func (suite *ReviewServiceTestSuite) TestDuplicateReviewConflicts() {
	t := suite.T()

	first, err := suite.service.CreateReview(suite.ctx, suite.alice.ID, suite.product.ID, &ReviewRequest{Rating: 2, Comment: "meh"})
	require.NoError(t, err)

	_, err = suite.service.CreateReview(suite.ctx, suite.alice.ID, suite.product.ID, &ReviewRequest{Rating: 5, Comment: "changed my mind"})
	assert.ErrorIs(t, err, ErrConflict)

	var stored models.Review
	require.NoError(t, suite.db.First(&stored, first.ID).Error)
	assert.Equal(t, 2, stored.Rating)
	assert.Equal(t, "meh", stored.Comment)
	suite.assertAggregate("2.00", 1)
}

func (suite *ReviewServiceTestSuite) TestCreateReviewValidation() {
	t := suite.T()

	_, err := suite.service.CreateReview(suite.ctx, suite.alice.ID, suite.product.ID, &ReviewRequest{Rating: 6})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = suite.service.CreateReview(suite.ctx, suite.alice.ID, suite.product.ID, &ReviewRequest{Rating: 0})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = suite.service.CreateReview(suite.ctx, suite.alice.ID, 9999, &ReviewRequest{Rating: 3})
	assert.ErrorIs(t, err, ErrNotFound)

	suite.assertAggregate("", 0)
}

func (suite *ReviewServiceTestSuite) TestUpdateReviewOwnership() {
	t := suite.T()

	review, err := suite.service.CreateReview(suite.ctx, suite.alice.ID, suite.product.ID, &ReviewRequest{Rating: 2})
	require.NoError(t, err)
	_, err = suite.service.CreateReview(suite.ctx, suite.bob.ID, suite.product.ID, &ReviewRequest{Rating: 4})
	require.NoError(t, err)
	suite.assertAggregate("3.00", 2)

	_, err = suite.service.UpdateReview(suite.ctx, Actor{UserID: suite.bob.ID, Role: "client"}, review.ID, &ReviewRequest{Rating: 1})
	assert.ErrorIs(t, err, ErrForbidden)
	suite.assertAggregate("3.00", 2)

	updated, err := suite.service.UpdateReview(suite.ctx, Actor{UserID: suite.alice.ID, Role: "client"}, review.ID, &ReviewRequest{Rating: 5, Comment: "better now"})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "better now", updated.Comment)
	suite.assertAggregate("4.50", 2)

	_, err = suite.service.UpdateReview(suite.ctx, Actor{UserID: suite.admin.ID, Role: "admin"}, review.ID, &ReviewRequest{Rating: 3})
	require.NoError(t, err)
	suite.assertAggregate("3.50", 2)

	_, err = suite.service.UpdateReview(suite.ctx, Actor{UserID: suite.alice.ID, Role: "client"}, 9999, &ReviewRequest{Rating: 3})
	assert.ErrorIs(t, err, ErrNotFound)
}

func (suite *ReviewServiceTestSuite) TestDeleteOnlyReviewResetsAggregate() {
	t := suite.T()

	review, err := suite.service.CreateReview(suite.ctx, suite.alice.ID, suite.product.ID, &ReviewRequest{Rating: 4})
	require.NoError(t, err)
	suite.assertAggregate("4.00", 1)

	err = suite.service.DeleteReview(suite.ctx, Actor{UserID: suite.bob.ID, Role: "client"}, review.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	suite.assertAggregate("4.00", 1)

	require.NoError(t, suite.service.DeleteReview(suite.ctx, Actor{UserID: suite.alice.ID, Role: "client"}, review.ID))
	suite.assertAggregate("", 0)

	err = suite.service.DeleteReview(suite.ctx, Actor{UserID: suite.alice.ID, Role: "client"}, review.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	last := suite.publisher.events[len(suite.publisher.events)-1].event.Data.(events.ProductRatingChanged)
	assert.False(t, last.AverageRating.Valid)
	assert.Zero(t, last.ReviewCount)
}

func (suite *ReviewServiceTestSuite) TestAdminCanDeleteAnyReview() {
	t := suite.T()

	review, err := suite.service.CreateReview(suite.ctx, suite.alice.ID, suite.product.ID, &ReviewRequest{Rating: 1})
	require.NoError(t, err)
	_, err = suite.service.CreateReview(suite.ctx, suite.bob.ID, suite.product.ID, &ReviewRequest{Rating: 5})
	require.NoError(t, err)

	require.NoError(t, suite.service.DeleteReview(suite.ctx, Actor{UserID: suite.admin.ID, Role: "admin"}, review.ID))
	suite.assertAggregate("5.00", 1)
}

func (suite *ReviewServiceTestSuite) TestListProductReviews() {
	t := suite.T()

	for _, u := range []*models.User{suite.alice, suite.bob, suite.admin} {
		_, err := suite.service.CreateReview(suite.ctx, u.ID, suite.product.ID, &ReviewRequest{Rating: 3})
		require.NoError(t, err)
	}

	page, err := suite.service.ListProductReviews(suite.ctx, suite.product.ID, utils.PaginationParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Reviews, 2)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, int64(3), page.TotalItems)
	require.NotNil(t, page.Reviews[0].User)
	assert.Equal(t, "admin", page.Reviews[0].User.Username)

	_, err = suite.service.ListProductReviews(suite.ctx, 9999, utils.PaginationParams{Page: 1, Limit: 5})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestReviewServiceSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceTestSuite))
}
