package routes

import (
	"net/http"
	"testing"

	"minimart/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReviewAndDuplicateConflict(t *testing.T) {
	app := setupTestApp(t)
	createTestUser(t, "reviewer", "reviewer@example.com", models.RoleUser)
	createTestProduct(t, "Speaker", 20.0, 0)

	resp := doJSON(t, app, "POST", "/api/reviews/", fiber.Map{
		"product_id": 1, "user_id": 1, "rating": 4, "comment": "Solid",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Second review by the same user for the same product
	resp = doJSON(t, app, "POST", "/api/reviews/", fiber.Map{
		"product_id": 1, "user_id": 1, "rating": 5, "comment": "Changed my mind",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestReviewSummaryAverage(t *testing.T) {
	app := setupTestApp(t)
	createTestUser(t, "reviewer", "reviewer@example.com", models.RoleUser)
	createTestProduct(t, "Speaker", 20.0, 0)

	// No reviews yet: average coalesces to zero
	resp := doJSON(t, app, "GET", "/api/reviews/product/1/summary", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary ReviewSummary
	decodeBody(t, resp, &summary)
	assert.Equal(t, 0.0, summary.AverageRating)
	assert.EqualValues(t, 0, summary.ReviewCount)

	resp = doJSON(t, app, "POST", "/api/reviews/", fiber.Map{
		"product_id": 1, "user_id": 1, "rating": 4,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, "GET", "/api/reviews/product/1/summary", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &summary)
	assert.Equal(t, 4.0, summary.AverageRating)
	assert.EqualValues(t, 1, summary.ReviewCount)
}

func TestCreateReviewUnknownProductOrUser(t *testing.T) {
	app := setupTestApp(t)
	createTestUser(t, "reviewer", "reviewer@example.com", models.RoleUser)

	resp := doJSON(t, app, "POST", "/api/reviews/", fiber.Map{
		"product_id": 9, "user_id": 1, "rating": 3,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	createTestProduct(t, "Speaker", 20.0, 0)
	resp = doJSON(t, app, "POST", "/api/reviews/", fiber.Map{
		"product_id": 1, "user_id": 9, "rating": 3,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestReviewRatingBounds(t *testing.T) {
	app := setupTestApp(t)
	createTestUser(t, "reviewer", "reviewer@example.com", models.RoleUser)
	createTestProduct(t, "Speaker", 20.0, 0)

	resp := doJSON(t, app, "POST", "/api/reviews/", fiber.Map{
		"product_id": 1, "user_id": 1, "rating": 6,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestUpdateAndDeleteReview(t *testing.T) {
	app := setupTestApp(t)
	createTestUser(t, "reviewer", "reviewer@example.com", models.RoleUser)
	createTestProduct(t, "Speaker", 20.0, 0)

	resp := doJSON(t, app, "POST", "/api/reviews/", fiber.Map{
		"product_id": 1, "user_id": 1, "rating": 2, "comment": "Meh",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, "PUT", "/api/reviews/1", fiber.Map{
		"rating": 5, "comment": "Grew on me",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var review models.Review
	decodeBody(t, resp, &review)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, "Grew on me", review.Comment)

	resp = doJSON(t, app, "DELETE", "/api/reviews/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, "DELETE", "/api/reviews/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
