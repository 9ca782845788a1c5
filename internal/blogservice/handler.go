package blogservice

import (
	"context"
	"database/sql"

	"github.com/hazelko/inkpost/internal/common"
)

func NewBlogService(db *sql.DB, c *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c}
}

// CreateBlog inserts a new post. The title is checked for uniqueness before
// any mutation; a clash slipping through the pre-check still comes back as
// ErrDuplicateTitle via the unique constraint.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateDate(v, req.Date)
	validateTitle(v, req.Title)
	validateBody(v, req.Body)
	validateStatus(v, req.Status)
	validateInt(v, req.UserID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	exists, err := s.m.titleExists(ctx, req.Title)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateTitle
	}

	b := Blog{
		Date:     req.Date,
		Title:    req.Title,
		Body:     sanitizeMarkdown(req.Body),
		ImageURL: req.ImageURL,
		Status:   req.Status,
		UserID:   req.UserID,
	}

	if err := s.m.insert(ctx, &b); err != nil {
		return nil, err
	}

	s.c.Flush()

	return &b, nil
}

// GetBlogByID returns a single post, served from the cache when possible.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	key := common.CacheKeyBlog(id)
	if cached, ok := s.c.Get(key); ok {
		return cached.(*Blog), nil
	}

	blog, err := s.m.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, blog)

	return blog, nil
}

// GetBlogs returns every post, unfiltered and unpaginated.
func (s *BlogService) GetBlogs(ctx context.Context) ([]Blog, error) {
	return s.m.getAll(ctx)
}

// GetBlogsByStatus returns the posts whose status equals the given value.
// Status is free text, so any string is a valid filter.
func (s *BlogService) GetBlogsByStatus(ctx context.Context, status string) ([]Blog, error) {
	v := common.NewValidator()
	validateStatus(v, status)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	key := common.CacheKeyBlogsByStatus(status)
	if cached, ok := s.c.Get(key); ok {
		return cached.([]Blog), nil
	}

	blogs, err := s.m.getByStatus(ctx, status)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, blogs)

	return blogs, nil
}

// GetBlogsByUserID returns the posts owned by a user. An empty slice is a
// normal result: the caller nests it into the user serialization.
func (s *BlogService) GetBlogsByUserID(ctx context.Context, userID int) ([]Blog, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	key := common.CacheKeyBlogsByUserId(userID)
	if cached, ok := s.c.Get(key); ok {
		return cached.([]Blog), nil
	}

	blogs, err := s.m.getByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, blogs)

	return blogs, nil
}

// FlushCache drops every cached entry. Callers must invoke it when blog rows
// change outside this service, such as the cascade on a user delete.
func (s *BlogService) FlushCache() {
	s.c.Flush()
}

// UpdateBlog applies a partial update: only non-nil fields of req replace the
// stored values, everything else is left untouched.
func (s *BlogService) UpdateBlog(ctx context.Context, id int, req *UpdateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.m.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		blog.Title = *req.Title
	}
	if req.Body != nil {
		blog.Body = sanitizeMarkdown(*req.Body)
	}
	if req.ImageURL != nil {
		blog.ImageURL = req.ImageURL
	}

	validateTitle(v, blog.Title)
	validateBody(v, blog.Body)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if err := s.m.update(ctx, blog); err != nil {
		return nil, err
	}

	s.c.Flush()

	return blog, nil
}

// DeleteBlog removes a post and returns its last-known values, captured
// before the delete.
func (s *BlogService) DeleteBlog(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.m.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.m.delete(ctx, id); err != nil {
		return nil, err
	}

	s.c.Flush()

	return blog, nil
}
