package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "budgetsmart/internal/errors"
	"budgetsmart/internal/logger"
	"budgetsmart/internal/models"
	"budgetsmart/internal/pagination"
	"budgetsmart/internal/stats"
)

const (
	maxTagsPerPost = 5
	maxTagLength   = 20
)

// postService handles the community tip feed. The store is only queried
// with equality filters and a single ordering; all cross-field filtering
// and sorting happens in memory via the stats package.
type postService struct {
	db *gorm.DB
}

// NewPostService creates a new PostServicer.
func NewPostService(db *gorm.DB) PostServicer {
	return &postService{db: db}
}

// SubmitPost creates a pending post and bumps the author's submission
// rollup.
func (s *postService) SubmitPost(
	authorID, authorName, title, content string,
	category models.PostCategory,
	tags []string,
) (*models.FinancePost, error) {
	if title == "" || content == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title and content are required")
	}
	if len(tags) > maxTagsPerPost {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "a post may carry at most 5 tags")
	}
	for _, tag := range tags {
		if tag == "" || len(tag) > maxTagLength {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "tags must be 1-20 characters")
		}
	}

	post := &models.FinancePost{
		Title:      title,
		Content:    content,
		Category:   category,
		Tags:       tags,
		AuthorID:   authorID,
		AuthorName: authorName,
		Status:     models.PostStatusPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return s.bumpContribution(tx, authorID, "total_submissions")
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return post, nil
}

// bumpContribution increments one rollup counter, creating the
// contribution row on first touch.
func (s *postService) bumpContribution(tx *gorm.DB, userID, column string) error {
	var contrib models.UserContribution
	err := tx.Where("user_id = ?", userID).First(&contrib).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		contrib = models.UserContribution{UserID: userID}
		if err := tx.Create(&contrib).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	return tx.Model(&contrib).UpdateColumn(column, gorm.Expr(column+" + 1")).Error
}

// GetPosts loads the full post set ordered by creation time, then applies
// the filter predicate set and sort spec in memory before paginating.
func (s *postService) GetPosts(
	filters stats.PostFilters,
	sortSpec stats.PostSort,
	page pagination.PageRequest,
) (*pagination.PageResponse[models.FinancePost], error) {
	page.Defaults()

	var posts []models.FinancePost
	if err := s.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	filtered := stats.FilterPosts(posts, filters, sortSpec)

	total := int64(len(filtered))
	start := page.Offset()
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + page.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	result := pagination.NewPageResponse(filtered[start:end], page.Page, page.PageSize, total)
	return &result, nil
}

func (s *postService) getPost(postID string) (*models.FinancePost, error) {
	var post models.FinancePost
	if err := s.db.Where("id = ?", postID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &post, nil
}

// GetPostByID returns a post, optionally counting a view. The view counter
// only ever increases.
func (s *postService) GetPostByID(postID string, countView bool) (*models.FinancePost, error) {
	post, err := s.getPost(postID)
	if err != nil {
		return nil, err
	}

	if countView {
		if err := s.db.Model(post).UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
			// A lost view count is not worth failing the read.
			logger.Get().Warnw("failed to count post view", "error", err, "post_id", postID)
		} else {
			post.Views++
		}
	}
	return post, nil
}

// LikePost increments a post's like counter and, unless the reader likes
// their own post, the author's like rollup.
func (s *postService) LikePost(userID, postID string) error {
	post, err := s.getPost(postID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(post).UpdateColumn("likes", gorm.Expr("likes + 1")).Error; err != nil {
			return err
		}
		if post.AuthorID != userID {
			return s.bumpContribution(tx, post.AuthorID, "total_likes")
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// DeletePost removes a post. The admin gate sits in the route middleware.
func (s *postService) DeletePost(postID string) error {
	post, err := s.getPost(postID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(post).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ApprovePost transitions a pending post to approved and bumps the
// author's approved rollup.
func (s *postService) ApprovePost(adminID, postID string) (*models.FinancePost, error) {
	post, err := s.getPost(postID)
	if err != nil {
		return nil, err
	}
	if post.Status != models.PostStatusPending {
		return nil, apperrors.ErrPostNotPending
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(post).Updates(map[string]interface{}{
			"status":      models.PostStatusApproved,
			"approved_at": now,
			"approved_by": adminID,
		}).Error; err != nil {
			return err
		}
		return s.bumpContribution(tx, post.AuthorID, "approved_posts")
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	post.Status = models.PostStatusApproved
	post.ApprovedAt = &now
	post.ApprovedBy = adminID
	return post, nil
}

// RejectPost transitions a pending post to rejected with a reason.
func (s *postService) RejectPost(adminID, postID, reason string) (*models.FinancePost, error) {
	if reason == "" {
		return nil, apperrors.ErrRejectionReason
	}

	post, err := s.getPost(postID)
	if err != nil {
		return nil, err
	}
	if post.Status != models.PostStatusPending {
		return nil, apperrors.ErrPostNotPending
	}

	if err := s.db.Model(post).Updates(map[string]interface{}{
		"status":           models.PostStatusRejected,
		"rejection_reason": reason,
	}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	post.Status = models.PostStatusRejected
	post.RejectionReason = reason
	return post, nil
}

// ToggleFeatured flips the featured flag of an approved post.
func (s *postService) ToggleFeatured(adminID, postID string) (*models.FinancePost, error) {
	post, err := s.getPost(postID)
	if err != nil {
		return nil, err
	}
	if post.Status != models.PostStatusApproved {
		return nil, apperrors.ErrPostNotApproved
	}

	if err := s.db.Model(post).Update("featured", !post.Featured).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	post.Featured = !post.Featured
	return post, nil
}

func (s *postService) allPosts() ([]models.FinancePost, error) {
	var posts []models.FinancePost
	if err := s.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return posts, nil
}

// GetPendingPosts returns the moderation queue.
func (s *postService) GetPendingPosts() ([]models.FinancePost, error) {
	posts, err := s.allPosts()
	if err != nil {
		return nil, err
	}
	return stats.PendingPosts(posts), nil
}

// GetFeaturedPosts returns approved posts flagged as featured.
func (s *postService) GetFeaturedPosts() ([]models.FinancePost, error) {
	posts, err := s.allPosts()
	if err != nil {
		return nil, err
	}
	return stats.FeaturedPosts(posts), nil
}

// GetPostsByAuthor returns the given author's posts.
func (s *postService) GetPostsByAuthor(authorID string) ([]models.FinancePost, error) {
	posts, err := s.allPosts()
	if err != nil {
		return nil, err
	}
	return stats.PostsByAuthor(posts, authorID), nil
}

// GetContribution returns a user's community rollup, zero-valued when the
// user has not interacted with the feed yet.
func (s *postService) GetContribution(userID string) (*models.UserContribution, error) {
	var contrib models.UserContribution
	err := s.db.Where("user_id = ?", userID).First(&contrib).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.UserContribution{UserID: userID}, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &contrib, nil
}

// GetAdminStats derives the moderation dashboard counters.
func (s *postService) GetAdminStats() (*stats.AdminStats, error) {
	posts, err := s.allPosts()
	if err != nil {
		return nil, err
	}
	result := stats.ComputeAdminStats(posts, time.Now())
	return &result, nil
}
