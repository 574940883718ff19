package dto

type BlogRequest struct {
	Title         string   `json:"title"`
	Summary       string   `json:"summary"`
	Content       string   `json:"content"`
	ImageURL      string   `json:"imageUrl"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	IsPublished   *bool    `json:"isPublished"`
	IsFeatured    *bool    `json:"isFeatured"`
	FeaturedOrder int      `json:"featuredOrder"`
}

type BlogListQuery struct {
	Category string `query:"category"`
	Author   string `query:"author"`
	Featured bool   `query:"featured"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}
