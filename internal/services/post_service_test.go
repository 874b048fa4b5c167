package services

import (
	"testing"

	"budgetsmart/internal/models"
	"budgetsmart/internal/pagination"
	"budgetsmart/internal/stats"
	"budgetsmart/internal/testutil"
)

func TestSubmitPost(t *testing.T) {
	t.Run("starts_pending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPostService(db)
		user := testutil.CreateTestUser(t, db)

		post, err := svc.SubmitPost(user.ID, "Author", "Tip title", "Useful content about money.", models.PostCategorySaving, []string{"frugal"})
		testutil.AssertNoError(t, err)

		if post.Status != models.PostStatusPending {
			t.Errorf("expected status pending, got %s", post.Status)
		}
		if post.Likes != 0 || post.Views != 0 {
			t.Error("expected zero counters on submission")
		}

		contrib, err := svc.GetContribution(user.ID)
		testutil.AssertNoError(t, err)
		if contrib.TotalSubmissions != 1 {
			t.Errorf("expected 1 submission recorded, got %d", contrib.TotalSubmissions)
		}
	})

	t.Run("missing_title", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPostService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SubmitPost(user.ID, "Author", "", "Content here.", models.PostCategoryGeneral, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("too_many_tags", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPostService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SubmitPost(user.ID, "Author", "Title", "Content here.", models.PostCategoryGeneral,
			[]string{"a", "b", "c", "d", "e", "f"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestModerationLifecycle(t *testing.T) {
	t.Run("approve", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPostService(db)
		author := testutil.CreateTestUser(t, db)
		admin := testutil.CreateTestAdmin(t, db)
		post := testutil.CreateTestPost(t, db, author.ID)

		approved, err := svc.ApprovePost(admin.ID, post.ID)
		testutil.AssertNoError(t, err)

		if approved.Status != models.PostStatusApproved {
			t.Errorf("expected status approved, got %s", approved.Status)
		}
		if approved.ApprovedAt == nil {
			t.Error("expected approval timestamp")
		}
		if approved.ApprovedBy != admin.ID {
			t.Errorf("expected approver %s, got %s", admin.ID, approved.ApprovedBy)
		}

		contrib, err := svc.GetContribution(author.ID)
		testutil.AssertNoError(t, err)
		if contrib.ApprovedPosts != 1 {
			t.Errorf("expected 1 approved post in rollup, got %d", contrib.ApprovedPosts)
		}

		// Approval is single-shot.
		_, err = svc.ApprovePost(admin.ID, post.ID)
		testutil.AssertAppError(t, err, "POST_NOT_PENDING")
	})

	t.Run("reject_requires_reason", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPostService(db)
		author := testutil.CreateTestUser(t, db)
		admin := testutil.CreateTestAdmin(t, db)
		post := testutil.CreateTestPost(t, db, author.ID)

		_, err := svc.RejectPost(admin.ID, post.ID, "")
		testutil.AssertAppError(t, err, "REJECTION_REASON_REQUIRED")

		rejected, err := svc.RejectPost(admin.ID, post.ID, "Off topic")
		testutil.AssertNoError(t, err)
		if rejected.Status != models.PostStatusRejected {
			t.Errorf("expected status rejected, got %s", rejected.Status)
		}
		if rejected.RejectionReason != "Off topic" {
			t.Errorf("expected reason recorded, got %q", rejected.RejectionReason)
		}
	})

	t.Run("feature_requires_approved", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPostService(db)
		author := testutil.CreateTestUser(t, db)
		admin := testutil.CreateTestAdmin(t, db)
		pending := testutil.CreateTestPost(t, db, author.ID)

		_, err := svc.ToggleFeatured(admin.ID, pending.ID)
		testutil.AssertAppError(t, err, "POST_NOT_APPROVED")

		approved := testutil.CreateTestPostWithStatus(t, db, author.ID, models.PostStatusApproved)
		featured, err := svc.ToggleFeatured(admin.ID, approved.ID)
		testutil.AssertNoError(t, err)
		if !featured.Featured {
			t.Error("expected featured flag set")
		}

		unfeatured, err := svc.ToggleFeatured(admin.ID, approved.ID)
		testutil.AssertNoError(t, err)
		if unfeatured.Featured {
			t.Error("expected featured flag cleared on second toggle")
		}
	})

	t.Run("missing_post", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPostService(db)
		admin := testutil.CreateTestAdmin(t, db)

		_, err := svc.ApprovePost(admin.ID, "nonexistent")
		testutil.AssertAppError(t, err, "POST_NOT_FOUND")
	})
}

func TestLikeAndView(t *testing.T) {
	t.Run("like_credits_author", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPostService(db)
		author := testutil.CreateTestUser(t, db)
		reader := testutil.CreateTestUser(t, db)
		post := testutil.CreateTestPostWithStatus(t, db, author.ID, models.PostStatusApproved)

		err := svc.LikePost(reader.ID, post.ID)
		testutil.AssertNoError(t, err)

		fetched, err := svc.GetPostByID(post.ID, false)
		testutil.AssertNoError(t, err)
		if fetched.Likes != 1 {
			t.Errorf("expected 1 like, got %d", fetched.Likes)
		}

		contrib, err := svc.GetContribution(author.ID)
		testutil.AssertNoError(t, err)
		if contrib.TotalLikes != 1 {
			t.Errorf("expected author credited with 1 like, got %d", contrib.TotalLikes)
		}
	})

	t.Run("self_like_not_credited", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPostService(db)
		author := testutil.CreateTestUser(t, db)
		post := testutil.CreateTestPostWithStatus(t, db, author.ID, models.PostStatusApproved)

		err := svc.LikePost(author.ID, post.ID)
		testutil.AssertNoError(t, err)

		fetched, err := svc.GetPostByID(post.ID, false)
		testutil.AssertNoError(t, err)
		if fetched.Likes != 1 {
			t.Errorf("expected like counted on the post, got %d", fetched.Likes)
		}

		contrib, err := svc.GetContribution(author.ID)
		testutil.AssertNoError(t, err)
		if contrib.TotalLikes != 0 {
			t.Errorf("expected no rollup credit for a self-like, got %d", contrib.TotalLikes)
		}
	})

	t.Run("view_counted_only_when_asked", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPostService(db)
		author := testutil.CreateTestUser(t, db)
		post := testutil.CreateTestPostWithStatus(t, db, author.ID, models.PostStatusApproved)

		viewed, err := svc.GetPostByID(post.ID, true)
		testutil.AssertNoError(t, err)
		if viewed.Views != 1 {
			t.Errorf("expected 1 view, got %d", viewed.Views)
		}

		unviewed, err := svc.GetPostByID(post.ID, false)
		testutil.AssertNoError(t, err)
		if unviewed.Views != 1 {
			t.Errorf("expected view count unchanged, got %d", unviewed.Views)
		}
	})
}

func TestGetPosts(t *testing.T) {
	t.Run("filters_and_paginates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPostService(db)
		author := testutil.CreateTestUser(t, db)

		for i := 0; i < 3; i++ {
			testutil.CreateTestPostWithStatus(t, db, author.ID, models.PostStatusApproved)
		}
		testutil.CreateTestPost(t, db, author.ID)

		approved := models.PostStatusApproved
		page := pagination.PageRequest{Page: 1, PageSize: 2}
		result, err := svc.GetPosts(stats.PostFilters{Status: &approved}, stats.PostSort{Field: stats.PostSortCreatedAt, Direction: stats.SortDesc}, page)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 3 {
			t.Errorf("expected 3 approved posts total, got %d", result.TotalItems)
		}
		if len(result.Data) != 2 {
			t.Errorf("expected page of 2, got %d", len(result.Data))
		}

		page2 := pagination.PageRequest{Page: 2, PageSize: 2}
		result, err = svc.GetPosts(stats.PostFilters{Status: &approved}, stats.PostSort{}, page2)
		testutil.AssertNoError(t, err)
		if len(result.Data) != 1 {
			t.Errorf("expected 1 item on last page, got %d", len(result.Data))
		}
	})
}

func TestQueues(t *testing.T) {
	t.Run("pending_and_featured", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPostService(db)
		author := testutil.CreateTestUser(t, db)
		admin := testutil.CreateTestAdmin(t, db)

		testutil.CreateTestPost(t, db, author.ID)
		approved := testutil.CreateTestPostWithStatus(t, db, author.ID, models.PostStatusApproved)
		_, err := svc.ToggleFeatured(admin.ID, approved.ID)
		testutil.AssertNoError(t, err)

		pending, err := svc.GetPendingPosts()
		testutil.AssertNoError(t, err)
		if len(pending) != 1 {
			t.Errorf("expected 1 pending post, got %d", len(pending))
		}

		featured, err := svc.GetFeaturedPosts()
		testutil.AssertNoError(t, err)
		if len(featured) != 1 {
			t.Errorf("expected 1 featured post, got %d", len(featured))
		}
	})
}

func TestGetAdminStats(t *testing.T) {
	t.Run("counts_by_status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPostService(db)
		author1 := testutil.CreateTestUser(t, db)
		author2 := testutil.CreateTestUser(t, db)

		testutil.CreateTestPost(t, db, author1.ID)
		testutil.CreateTestPostWithStatus(t, db, author1.ID, models.PostStatusApproved)
		testutil.CreateTestPostWithStatus(t, db, author2.ID, models.PostStatusRejected)

		adminStats, err := svc.GetAdminStats()
		testutil.AssertNoError(t, err)

		if adminStats.TotalPosts != 3 {
			t.Errorf("expected 3 posts, got %d", adminStats.TotalPosts)
		}
		if adminStats.PendingPosts != 1 || adminStats.ApprovedPosts != 1 || adminStats.RejectedPosts != 1 {
			t.Errorf("unexpected status counts: %+v", adminStats)
		}
		if adminStats.TotalUsers != 2 {
			t.Errorf("expected 2 distinct authors, got %d", adminStats.TotalUsers)
		}
		if adminStats.PostsToday != 3 {
			t.Errorf("expected 3 posts today, got %d", adminStats.PostsToday)
		}
	})
}

func TestDeletePost(t *testing.T) {
	t.Run("removes_post", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPostService(db)
		author := testutil.CreateTestUser(t, db)
		post := testutil.CreateTestPostWithStatus(t, db, author.ID, models.PostStatusApproved)

		err := svc.DeletePost(post.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.GetPostByID(post.ID, false)
		testutil.AssertAppError(t, err, "POST_NOT_FOUND")
	})
}
