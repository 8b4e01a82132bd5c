package repositories

import (
	"database/sql"
	"fmt"

	"linkup/internal/models"
)

type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id int) (*models.Comment, error)
	Delete(id int) error
	ListByPost(postID int) ([]models.CommentView, error)
}

type commentRepository struct {
	DB *sql.DB
}

func NewCommentRepository(db *sql.DB) CommentRepository {
	return &commentRepository{DB: db}
}

func (r *commentRepository) Create(comment *models.Comment) error {
	const q = `
		INSERT INTO comments (post_id, user_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.DB.QueryRow(q, comment.PostID, comment.UserID, comment.Text).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("comment create: %w", err)
	}
	return nil
}

func (r *commentRepository) GetByID(id int) (*models.Comment, error) {
	const q = `
		SELECT id, post_id, user_id, text, created_at
		FROM comments
		WHERE id = $1
	`
	cm := &models.Comment{}
	err := r.DB.QueryRow(q, id).Scan(&cm.ID, &cm.PostID, &cm.UserID, &cm.Text, &cm.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("comment get by id: %w", err)
	}
	return cm, nil
}

func (r *commentRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("comment delete: %w", err)
	}
	return nil
}

// ListByPost returns comments joined with their author's name/avatar,
// oldest first.
func (r *commentRepository) ListByPost(postID int) ([]models.CommentView, error) {
	const q = `
		SELECT c.id, c.text, c.created_at, u.id, u.name, u.avatar
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC
	`
	rows, err := r.DB.Query(q, postID)
	if err != nil {
		return nil, fmt.Errorf("comment list by post: %w", err)
	}
	defer rows.Close()

	views := []models.CommentView{}
	for rows.Next() {
		var v models.CommentView
		if err := rows.Scan(&v.ID, &v.Text, &v.CreatedAt, &v.User.ID, &v.User.Name, &v.User.Avatar); err != nil {
			return nil, fmt.Errorf("comment scan: %w", err)
		}
		views = append(views, v)
	}
	return views, rows.Err()
}
