package repository

// PostListFilter narrows post listing queries.
//
// ViewerID carries the authenticated user (0 for anonymous). When
// VisibleOnly is set the visibility rule applies: a post is returned
// when it is published, its publication date has passed and its
// category (if any) is published, or when the viewer authored it.
type PostListFilter struct {
	Page          int
	PageSize      int
	ViewerID      uint
	AuthorID      uint
	CategoryID    uint
	CategorySlug  string
	VisibleOnly   bool
	WithRelations bool
	OrderBy       string
}

// CommentListFilter narrows comment listing queries.
type CommentListFilter struct {
	Page     int
	PageSize int
	PostID   uint
	AuthorID uint
}

// CategoryListFilter narrows category listing queries.
type CategoryListFilter struct {
	Page          int
	PageSize      int
	OnlyPublished bool
	Search        string
}

// LocationListFilter narrows location listing queries.
type LocationListFilter struct {
	Page          int
	PageSize      int
	OnlyPublished bool
	Search        string
}

// UserListFilter narrows user listing queries.
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
}
