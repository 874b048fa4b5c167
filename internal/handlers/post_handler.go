package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "budgetsmart/internal/errors"
	"budgetsmart/internal/models"
	"budgetsmart/internal/pagination"
	"budgetsmart/internal/services"
	"budgetsmart/internal/stats"
)

// PostHandler handles the community tip feed, readers and moderators alike
type PostHandler struct {
	postService  services.PostServicer
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService services.PostServicer, userService services.UserServicer, auditService services.AuditServicer) *PostHandler {
	return &PostHandler{postService: postService, userService: userService, auditService: auditService}
}

// SubmitPostRequest represents the post submission payload
type SubmitPostRequest struct {
	Title    string   `json:"title" binding:"required,min=5,max=200"`
	Content  string   `json:"content" binding:"required,min=20,max=5000"`
	Category string   `json:"category" binding:"required,post_category"`
	Tags     []string `json:"tags" binding:"max=5,dive,min=1,max=20"`
}

// RejectPostRequest represents the rejection payload
type RejectPostRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// ListPostsQuery represents the feed query parameters
type ListPostsQuery struct {
	Category string `form:"category" binding:"omitempty,post_category"`
	Tags     string `form:"tags"`
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,post_status"`
	Author   string `form:"author"`
	Featured *bool  `form:"featured"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=createdAt approvedAt likes views"`
	Order    string `form:"order" binding:"omitempty,oneof=asc desc"`
}

// SubmitPost submits a post to the moderation queue
// @Summary     Submit post
// @Description Submit a community tip; it stays pending until a moderator approves it
// @Tags        posts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SubmitPostRequest true "Post data"
// @Success     201 {object} models.FinancePost "Post submitted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /posts [post]
func (h *PostHandler) SubmitPost(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SubmitPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	authorName := user.DisplayName
	if authorName == "" {
		authorName = user.Email
	}

	post, err := h.postService.SubmitPost(userID, authorName, req.Title, req.Content, models.PostCategory(req.Category), req.Tags)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// GetPosts lists approved posts with filtering and sorting
// @Summary     List posts
// @Description List approved community posts; moderators may query other statuses
// @Tags        posts
// @Produce     json
// @Security    BearerAuth
// @Param       category  query string false "Filter by category"
// @Param       tags      query string false "Comma-separated tags, any match"
// @Param       search    query string false "Case-insensitive search over title and content"
// @Param       status    query string false "Filter by status (admin only for non-approved)"
// @Param       author    query string false "Filter by author ID"
// @Param       featured  query bool   false "Filter by featured flag"
// @Param       sort_by   query string false "Sort field: createdAt, approvedAt, likes, views"
// @Param       order     query string false "Sort direction: asc or desc"
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Page size"
// @Success     200 {object} pagination.PageResponse[models.FinancePost] "Posts"
// @Failure     400 {object} ErrorResponse "Invalid query"
// @Router      /posts [get]
func (h *PostHandler) GetPosts(c *gin.Context) {
	var query ListPostsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filters := stats.PostFilters{
		Search:   query.Search,
		AuthorID: query.Author,
		Featured: query.Featured,
	}
	if query.Category != "" {
		cat := models.PostCategory(query.Category)
		filters.Category = &cat
	}
	if query.Tags != "" {
		for _, tag := range strings.Split(query.Tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				filters.Tags = append(filters.Tags, tag)
			}
		}
	}

	// Non-admins only ever see the approved feed, whatever they ask for.
	isAdmin, _ := c.Get("isAdmin")
	approved := models.PostStatusApproved
	if isAdmin == true && query.Status != "" {
		status := models.PostStatus(query.Status)
		filters.Status = &status
	} else {
		filters.Status = &approved
	}

	sortSpec := stats.PostSort{Field: stats.PostSortCreatedAt, Direction: stats.SortDesc}
	if query.SortBy != "" {
		sortSpec.Field = stats.PostSortField(query.SortBy)
	}
	if query.Order != "" {
		sortSpec.Direction = stats.SortDirection(query.Order)
	}

	result, err := h.postService.GetPosts(filters, sortSpec, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPost returns one post and counts the view
// @Summary     Get post
// @Description Get a single post by ID, incrementing its view counter
// @Tags        posts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Post ID"
// @Success     200 {object} models.FinancePost "Post"
// @Failure     404 {object} ErrorResponse "Post not found"
// @Router      /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	post, err := h.postService.GetPostByID(postID, true)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// LikePost likes a post
// @Summary     Like post
// @Description Increment a post's like counter
// @Tags        posts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Post ID"
// @Success     204 "Post liked"
// @Failure     404 {object} ErrorResponse "Post not found"
// @Router      /posts/{id}/like [post]
func (h *PostHandler) LikePost(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	postID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.postService.LikePost(userID, postID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetFeaturedPosts lists featured posts
// @Summary     List featured posts
// @Description List approved posts flagged as featured
// @Tags        posts
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.FinancePost "Featured posts"
// @Router      /posts/featured [get]
func (h *PostHandler) GetFeaturedPosts(c *gin.Context) {
	posts, err := h.postService.GetFeaturedPosts()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetMyPosts lists the caller's own posts in every status
// @Summary     List own posts
// @Description List the authenticated user's posts, including pending and rejected ones
// @Tags        posts
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.FinancePost "Posts"
// @Router      /posts/mine [get]
func (h *PostHandler) GetMyPosts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	posts, err := h.postService.GetPostsByAuthor(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetContribution returns the caller's community rollup
// @Summary     Get contribution stats
// @Description Get the authenticated user's submission, approval and like counts
// @Tags        posts
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.UserContribution "Contribution rollup"
// @Router      /posts/contribution [get]
func (h *PostHandler) GetContribution(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	contrib, err := h.postService.GetContribution(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, contrib)
}

// GetPendingPosts lists the moderation queue
// @Summary     List pending posts
// @Description List posts awaiting moderation
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.FinancePost "Pending posts"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Router      /admin/posts/pending [get]
func (h *PostHandler) GetPendingPosts(c *gin.Context) {
	posts, err := h.postService.GetPendingPosts()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// ApprovePost approves a pending post
// @Summary     Approve post
// @Description Approve a pending post, publishing it to the feed
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Post ID"
// @Success     200 {object} models.FinancePost "Approved post"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Failure     404 {object} ErrorResponse "Post not found"
// @Failure     409 {object} ErrorResponse "Post is not pending"
// @Router      /admin/posts/{id}/approve [post]
func (h *PostHandler) ApprovePost(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	postID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	post, err := h.postService.ApprovePost(adminID, postID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(adminID, "post.approve", "finance_post", postID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, post)
}

// RejectPost rejects a pending post
// @Summary     Reject post
// @Description Reject a pending post with a reason shown to the author
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Post ID"
// @Param       request body RejectPostRequest true "Rejection reason"
// @Success     200 {object} models.FinancePost "Rejected post"
// @Failure     400 {object} ErrorResponse "Missing reason"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Failure     404 {object} ErrorResponse "Post not found"
// @Failure     409 {object} ErrorResponse "Post is not pending"
// @Router      /admin/posts/{id}/reject [post]
func (h *PostHandler) RejectPost(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	postID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RejectPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.ErrRejectionReason)
		return
	}

	post, err := h.postService.RejectPost(adminID, postID, req.Reason)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(adminID, "post.reject", "finance_post", postID, c.ClientIP(), map[string]interface{}{
		"reason": req.Reason,
	})

	c.JSON(http.StatusOK, post)
}

// ToggleFeatured toggles a post's featured flag
// @Summary     Toggle featured
// @Description Flip the featured flag of an approved post
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Post ID"
// @Success     200 {object} models.FinancePost "Updated post"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Failure     404 {object} ErrorResponse "Post not found"
// @Failure     409 {object} ErrorResponse "Post is not approved"
// @Router      /admin/posts/{id}/feature [post]
func (h *PostHandler) ToggleFeatured(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	postID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	post, err := h.postService.ToggleFeatured(adminID, postID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost removes a post
// @Summary     Delete post
// @Description Remove a post from the feed entirely
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Post ID"
// @Success     204 "Post deleted"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Failure     404 {object} ErrorResponse "Post not found"
// @Router      /admin/posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	postID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.postService.DeletePost(postID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(adminID, "post.delete", "finance_post", postID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// GetAdminStats returns the moderation dashboard counters
// @Summary     Get admin statistics
// @Description Get post totals by status plus today's submission and like activity
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} stats.AdminStats "Dashboard counters"
// @Failure     403 {object} ErrorResponse "Admin access required"
// @Router      /admin/stats [get]
func (h *PostHandler) GetAdminStats(c *gin.Context) {
	adminStats, err := h.postService.GetAdminStats()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, adminStats)
}
