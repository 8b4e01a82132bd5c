package models

import "time"

type Post struct {
	ID        int       `json:"id"`
	AuthorID  int       `json:"author_id"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Comment struct {
	ID        int       `json:"id"`
	PostID    int       `json:"post_id"`
	UserID    int       `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthorRef — короткая ссылка на автора в ленте.
type AuthorRef struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type CommentView struct {
	ID        int       `json:"id"`
	User      AuthorRef `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// PostView is the enriched feed projection. The raw liker id list is never
// exposed; clients only see the count and their own membership.
type PostView struct {
	ID                 int           `json:"id"`
	Author             AuthorRef     `json:"author"`
	Content            string        `json:"content"`
	Image              string        `json:"image,omitempty"`
	Comments           []CommentView `json:"comments"`
	TotalLikes         int           `json:"totalLikes"`
	LikedByCurrentUser bool          `json:"likedByCurrentUser"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}
