package blogservice

import (
	"database/sql"
	"time"

	"github.com/hazelko/inkpost/internal/common"
)

type Blog struct {
	ID    int    `json:"id"`
	Date  string `json:"date"`
	Title string `json:"blog_title"`
	// Body is stored in Markdown format.
	Body      string    `json:"text_field"`
	ImageURL  *string   `json:"image_url"`
	Status    string    `json:"status"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type blogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *blogModel
	c *common.Cache
}

type CreateBlogRequest struct {
	Date     string  `json:"date"`
	Title    string  `json:"blog_title"`
	Body     string  `json:"text_field"`
	ImageURL *string `json:"image_url"`
	Status   string  `json:"status"`
	UserID   int     `json:"user_id"`
}

// UpdateBlogRequest carries partial update semantics: nil fields are left
// untouched on the stored record.
type UpdateBlogRequest struct {
	Title    *string `json:"blog_title"`
	Body     *string `json:"text_field"`
	ImageURL *string `json:"image_url"`
}
