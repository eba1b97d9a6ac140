package services

import (
	"testing"

	"launchpit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleUpvoteRoundTrip(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewEngagementService(gdb)

	owner := createUser(t, gdb, "owner", false)
	voter := createUser(t, gdb, "voter", false)
	product := createProduct(t, gdb, owner, "widget", models.ProductStatusActive)

	upvoted, total, err := svc.ToggleUpvote(voter.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, upvoted)
	assert.Equal(t, int64(1), total)

	upvoted, total, err = svc.ToggleUpvote(voter.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, upvoted)
	assert.Equal(t, int64(0), total)

	var count int64
	require.NoError(t, gdb.Model(&models.Upvote{}).Where("product_id = ?", product.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestToggleUpvoteTotalIsAuthoritative(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewEngagementService(gdb)

	owner := createUser(t, gdb, "owner", false)
	others := []*models.User{
		createUser(t, gdb, "alice", false),
		createUser(t, gdb, "bob", false),
	}
	voter := createUser(t, gdb, "carol", false)
	product := createProduct(t, gdb, owner, "widget", models.ProductStatusActive)
	addUpvotes(t, gdb, product, others)

	_, total, err := svc.ToggleUpvote(voter.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestToggleUpvoteNotifiesOwnerOnUpvoteOnly(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewEngagementService(gdb)

	owner := createUser(t, gdb, "owner", false)
	voter := createUser(t, gdb, "voter", false)
	product := createProduct(t, gdb, owner, "widget", models.ProductStatusActive)

	_, _, err := svc.ToggleUpvote(voter.ID, product.ID)
	require.NoError(t, err)
	_, _, err = svc.ToggleUpvote(voter.ID, product.ID)
	require.NoError(t, err)

	var notifications []models.Notification
	require.NoError(t, gdb.Where("user_id = ?", owner.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTypeUpvote, notifications[0].Type)
	assert.Equal(t, "voter upvoted your product widget", notifications[0].Body)
	assert.Equal(t, voter.Image, notifications[0].ProfilePicture)
}

func TestToggleUpvoteNeverNotifiesSelf(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewEngagementService(gdb)

	owner := createUser(t, gdb, "owner", false)
	product := createProduct(t, gdb, owner, "widget", models.ProductStatusActive)

	upvoted, total, err := svc.ToggleUpvote(owner.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, upvoted)
	assert.Equal(t, int64(1), total)

	var count int64
	require.NoError(t, gdb.Model(&models.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestToggleUpvoteErrors(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewEngagementService(gdb)

	voter := createUser(t, gdb, "voter", false)

	_, _, err := svc.ToggleUpvote(0, 1)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = svc.ToggleUpvote(voter.ID, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

// The toggle's conflict path relies on a second insert of the same
// (user, product) pair failing with a unique violation the service can
// recognize.
func TestDuplicateUpvoteInsertIsUniqueViolation(t *testing.T) {
	gdb := newTestDB(t)

	owner := createUser(t, gdb, "owner", false)
	voter := createUser(t, gdb, "voter", false)
	product := createProduct(t, gdb, owner, "widget", models.ProductStatusActive)

	require.NoError(t, gdb.Create(&models.Upvote{UserID: voter.ID, ProductID: product.ID}).Error)
	err := gdb.Create(&models.Upvote{UserID: voter.ID, ProductID: product.ID}).Error
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))
}

func TestAddCommentSnapshotsAvatarAndNotifiesOwner(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewEngagementService(gdb)

	owner := createUser(t, gdb, "owner", false)
	commenter := createUser(t, gdb, "commenter", false)
	product := createProduct(t, gdb, owner, "widget", models.ProductStatusActive)

	comment, err := svc.AddComment(commenter.ID, product.ID, "Looks great!")
	require.NoError(t, err)
	assert.Equal(t, "Looks great!", comment.Body)
	assert.Equal(t, commenter.Image, comment.ProfilePicture)
	assert.Equal(t, commenter.Name, comment.User.Name)

	// Avatar stays frozen even after the user changes theirs.
	require.NoError(t, gdb.Model(commenter).Update("image", "https://cdn.example.com/new.png").Error)
	var stored models.Comment
	require.NoError(t, gdb.First(&stored, comment.ID).Error)
	assert.Equal(t, "https://cdn.example.com/commenter.png", stored.ProfilePicture)

	var notification models.Notification
	require.NoError(t, gdb.Where("user_id = ?", owner.ID).First(&notification).Error)
	assert.Equal(t, models.NotificationTypeComment, notification.Type)
	assert.Equal(t, "commenter commented on your product widget", notification.Body)
}

func TestAddCommentOnOwnProductSkipsNotification(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewEngagementService(gdb)

	owner := createUser(t, gdb, "owner", false)
	product := createProduct(t, gdb, owner, "widget", models.ProductStatusActive)

	_, err := svc.AddComment(owner.ID, product.ID, "Thanks everyone")
	require.NoError(t, err)

	var count int64
	require.NoError(t, gdb.Model(&models.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestAddCommentValidation(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewEngagementService(gdb)

	owner := createUser(t, gdb, "owner", false)
	product := createProduct(t, gdb, owner, "widget", models.ProductStatusActive)

	_, err := svc.AddComment(0, product.ID, "hi")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.AddComment(owner.ID, product.ID, "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "body")

	_, err = svc.AddComment(owner.ID, 999, "hi")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCommentByAuthor(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewEngagementService(gdb)

	owner := createUser(t, gdb, "owner", false)
	commenter := createUser(t, gdb, "commenter", false)
	product := createProduct(t, gdb, owner, "widget", models.ProductStatusActive)

	comment, err := svc.AddComment(commenter.ID, product.ID, "Nice")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteComment(commenter.ID, comment.ID))

	var count int64
	require.NoError(t, gdb.Model(&models.Comment{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDeleteCommentByProductOwner(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewEngagementService(gdb)

	owner := createUser(t, gdb, "owner", false)
	commenter := createUser(t, gdb, "commenter", false)
	product := createProduct(t, gdb, owner, "widget", models.ProductStatusActive)

	comment, err := svc.AddComment(commenter.ID, product.ID, "Spam spam spam")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteComment(owner.ID, comment.ID))
}

func TestDeleteCommentForbiddenForBystander(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewEngagementService(gdb)

	owner := createUser(t, gdb, "owner", false)
	commenter := createUser(t, gdb, "commenter", false)
	bystander := createUser(t, gdb, "bystander", false)
	product := createProduct(t, gdb, owner, "widget", models.ProductStatusActive)

	comment, err := svc.AddComment(commenter.ID, product.ID, "Nice")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteComment(bystander.ID, comment.ID), ErrForbidden)
	assert.ErrorIs(t, svc.DeleteComment(commenter.ID, 999), ErrNotFound)
}
