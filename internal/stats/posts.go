package stats

import (
	"sort"
	"strings"
	"time"

	"budgetsmart/internal/models"
)

// PostSortField selects the comparator for post sorting.
type PostSortField string

const (
	PostSortCreatedAt  PostSortField = "createdAt"
	PostSortApprovedAt PostSortField = "approvedAt"
	PostSortLikes      PostSortField = "likes"
	PostSortViews      PostSortField = "views"
)

// SortDirection is ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// PostFilters is an AND-combined predicate set over community posts.
// Nil/empty fields do not filter.
type PostFilters struct {
	Category *models.PostCategory
	Tags     []string // any-match
	Search   string   // case-insensitive substring over title and content
	Status   *models.PostStatus
	AuthorID string
	Featured *bool
}

// PostSort is a sort specification for community posts.
type PostSort struct {
	Field     PostSortField
	Direction SortDirection
}

// FilterPosts returns a filtered, sorted copy of posts. The input slice is
// never mutated. The sort is stable so equal keys keep snapshot order.
func FilterPosts(posts []models.FinancePost, filters PostFilters, sortSpec PostSort) []models.FinancePost {
	filtered := make([]models.FinancePost, 0, len(posts))
	for _, p := range posts {
		if filters.Category != nil && p.Category != *filters.Category {
			continue
		}
		if len(filters.Tags) > 0 && !anyTagMatch(p.Tags, filters.Tags) {
			continue
		}
		if filters.Search != "" {
			needle := strings.ToLower(filters.Search)
			if !strings.Contains(strings.ToLower(p.Title), needle) &&
				!strings.Contains(strings.ToLower(p.Content), needle) {
				continue
			}
		}
		if filters.Status != nil && p.Status != *filters.Status {
			continue
		}
		if filters.AuthorID != "" && p.AuthorID != filters.AuthorID {
			continue
		}
		if filters.Featured != nil && p.Featured != *filters.Featured {
			continue
		}
		filtered = append(filtered, p)
	}

	desc := sortSpec.Direction == SortDesc
	sort.SliceStable(filtered, func(i, j int) bool {
		if desc {
			return postLess(filtered[j], filtered[i], sortSpec.Field)
		}
		return postLess(filtered[i], filtered[j], sortSpec.Field)
	})

	return filtered
}

func anyTagMatch(postTags models.Tags, wanted []string) bool {
	for _, t := range postTags {
		for _, w := range wanted {
			if t == w {
				return true
			}
		}
	}
	return false
}

func postLess(a, b models.FinancePost, field PostSortField) bool {
	switch field {
	case PostSortApprovedAt:
		return timeOrZero(a.ApprovedAt).Before(timeOrZero(b.ApprovedAt))
	case PostSortLikes:
		return a.Likes < b.Likes
	case PostSortViews:
		return a.Views < b.Views
	default: // createdAt
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// PendingPosts returns the posts awaiting moderation.
func PendingPosts(posts []models.FinancePost) []models.FinancePost {
	out := make([]models.FinancePost, 0)
	for _, p := range posts {
		if p.Status == models.PostStatusPending {
			out = append(out, p)
		}
	}
	return out
}

// FeaturedPosts returns approved posts flagged as featured.
func FeaturedPosts(posts []models.FinancePost) []models.FinancePost {
	out := make([]models.FinancePost, 0)
	for _, p := range posts {
		if p.Featured && p.Status == models.PostStatusApproved {
			out = append(out, p)
		}
	}
	return out
}

// PostsByAuthor returns the posts submitted by the given author.
func PostsByAuthor(posts []models.FinancePost, authorID string) []models.FinancePost {
	out := make([]models.FinancePost, 0)
	for _, p := range posts {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out
}

// AdminStats summarizes the community feed for the moderation dashboard.
type AdminStats struct {
	TotalPosts    int `json:"total_posts"`
	PendingPosts  int `json:"pending_posts"`
	ApprovedPosts int `json:"approved_posts"`
	RejectedPosts int `json:"rejected_posts"`
	TotalUsers    int `json:"total_users"`
	PostsToday    int `json:"posts_today"`
	LikesToday    int `json:"likes_today"`
}

// ComputeAdminStats derives moderation dashboard counters from the full
// post set. "Today" is the calendar day containing now.
func ComputeAdminStats(posts []models.FinancePost, now time.Time) AdminStats {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	s := AdminStats{TotalPosts: len(posts)}
	authors := make(map[string]struct{})
	for _, p := range posts {
		switch p.Status {
		case models.PostStatusPending:
			s.PendingPosts++
		case models.PostStatusApproved:
			s.ApprovedPosts++
		case models.PostStatusRejected:
			s.RejectedPosts++
		}
		authors[p.AuthorID] = struct{}{}
		if !p.CreatedAt.Before(dayStart) {
			s.PostsToday++
			s.LikesToday += int(p.Likes)
		}
	}
	s.TotalUsers = len(authors)
	return s
}
