package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewsStartUnapproved(t *testing.T) {
	s := newTestStore(t)
	acct := seedAccount(t, s, "reviewer@test.com")
	inv := seedVehicle(t, s, "Honda", "Accord", 20000)

	id, err := s.AddReview(inv, acct, 5, "Great car, smooth ride all around.")
	require.NoError(t, err)

	review, err := s.GetReviewByID(id)
	require.NoError(t, err)
	require.NotNil(t, review)
	assert.False(t, review.IsApproved)

	approved, err := s.GetApprovedReviews(inv)
	require.NoError(t, err)
	assert.Empty(t, approved, "unapproved reviews stay invisible")
}

func TestOneReviewPerAccountAndVehicle(t *testing.T) {
	s := newTestStore(t)
	acct := seedAccount(t, s, "reviewer@test.com")
	inv := seedVehicle(t, s, "Honda", "Accord", 20000)

	_, err := s.AddReview(inv, acct, 5, "Great car, smooth ride all around.")
	require.NoError(t, err)

	_, err = s.AddReview(inv, acct, 1, "Changed my mind, terrible actually.")
	assert.Error(t, err, "second insert for the same pair must hit the unique constraint")
}

func TestUpdateReviewResetsApproval(t *testing.T) {
	s := newTestStore(t)
	acct := seedAccount(t, s, "reviewer@test.com")
	inv := seedVehicle(t, s, "Honda", "Accord", 20000)

	id, err := s.AddReview(inv, acct, 5, "Great car, smooth ride all around.")
	require.NoError(t, err)
	require.NoError(t, s.ApproveReview(id))

	require.NoError(t, s.UpdateReview(id, 3, "After a month the transmission is rough."))

	review, err := s.GetReviewByID(id)
	require.NoError(t, err)
	assert.Equal(t, 3, review.Rating)
	assert.False(t, review.IsApproved, "editing sends the review back through moderation")
}

func TestRatingSummaryCountsApprovedOnly(t *testing.T) {
	s := newTestStore(t)
	inv := seedVehicle(t, s, "Honda", "Accord", 20000)
	a := seedAccount(t, s, "a@test.com")
	b := seedAccount(t, s, "b@test.com")
	c := seedAccount(t, s, "c@test.com")

	idA, err := s.AddReview(inv, a, 5, "Great car, smooth ride all around.")
	require.NoError(t, err)
	idB, err := s.AddReview(inv, b, 3, "Decent enough for the money I guess.")
	require.NoError(t, err)
	_, err = s.AddReview(inv, c, 1, "Still waiting on moderation, unseen.")
	require.NoError(t, err)

	require.NoError(t, s.ApproveReview(idA))
	require.NoError(t, s.ApproveReview(idB))

	avg, total, err := s.GetRatingSummary(inv)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.InDelta(t, 4.0, avg, 0.001)
}

func TestPendingReviewsAndModeration(t *testing.T) {
	s := newTestStore(t)
	inv := seedVehicle(t, s, "Honda", "Accord", 20000)
	a := seedAccount(t, s, "a@test.com")
	b := seedAccount(t, s, "b@test.com")

	idA, err := s.AddReview(inv, a, 4, "Pretty happy with this purchase so far.")
	require.NoError(t, err)
	idB, err := s.AddReview(inv, b, 2, "Not what I expected from the photos.")
	require.NoError(t, err)

	pending, err := s.GetPendingReviews()
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	require.NoError(t, s.ApproveReview(idA))
	require.NoError(t, s.DeleteReview(idB))

	pending, err = s.GetPendingReviews()
	require.NoError(t, err)
	assert.Empty(t, pending)

	approved, err := s.GetApprovedReviews(inv)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, idA, approved[0].ID)
}
