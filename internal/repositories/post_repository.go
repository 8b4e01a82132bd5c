package repositories

import (
	"database/sql"
	"fmt"

	"linkup/internal/models"
)

type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	ListAll() ([]*models.Post, error)
	ListByAuthor(authorID int) ([]*models.Post, error)
	Delete(id int) error

	// likes: membership in post_likes is the single source of truth
	CountLikes(postID int) (int, error)
	HasLike(postID, userID int) (bool, error)
	AddLike(postID, userID int) error
	RemoveLike(postID, userID int) error
}

type postRepository struct {
	DB *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{DB: db}
}

func (r *postRepository) Create(post *models.Post) error {
	const q = `
		INSERT INTO posts (author_id, content, image)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRow(q, post.AuthorID, post.Content, post.Image).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("post create: %w", err)
	}
	return nil
}

func (r *postRepository) GetByID(id int) (*models.Post, error) {
	const q = `
		SELECT id, author_id, content, image, created_at, updated_at
		FROM posts
		WHERE id = $1
	`
	p := &models.Post{}
	err := r.DB.QueryRow(q, id).Scan(&p.ID, &p.AuthorID, &p.Content, &p.Image, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("post get by id: %w", err)
	}
	return p, nil
}

func (r *postRepository) list(q string, args ...interface{}) ([]*models.Post, error) {
	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("post list: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		p := &models.Post{}
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Content, &p.Image, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("post scan: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *postRepository) ListAll() ([]*models.Post, error) {
	const q = `
		SELECT id, author_id, content, image, created_at, updated_at
		FROM posts
		ORDER BY created_at DESC
	`
	return r.list(q)
}

func (r *postRepository) ListByAuthor(authorID int) ([]*models.Post, error) {
	const q = `
		SELECT id, author_id, content, image, created_at, updated_at
		FROM posts
		WHERE author_id = $1
		ORDER BY created_at DESC
	`
	return r.list(q, authorID)
}

func (r *postRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("post delete: %w", err)
	}
	return nil
}

func (r *postRepository) CountLikes(postID int) (int, error) {
	var n int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM post_likes WHERE post_id = $1`, postID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("post count likes: %w", err)
	}
	return n, nil
}

func (r *postRepository) HasLike(postID, userID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = $2)`,
		postID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("post has like: %w", err)
	}
	return exists, nil
}

func (r *postRepository) AddLike(postID, userID int) error {
	const q = `
		INSERT INTO post_likes (post_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	if _, err := r.DB.Exec(q, postID, userID); err != nil {
		return fmt.Errorf("post add like: %w", err)
	}
	return nil
}

func (r *postRepository) RemoveLike(postID, userID int) error {
	_, err := r.DB.Exec(`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return fmt.Errorf("post remove like: %w", err)
	}
	return nil
}
