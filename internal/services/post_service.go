package services

import (
	"errors"

	"linkup/internal/models"
	"linkup/internal/repositories"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrForbidden       = errors.New("forbidden")
)

type PostService interface {
	CreatePost(authorID int, content, image string) (*models.Post, error)
	ListPosts(currentUserID int) ([]models.PostView, error)
	GetPost(id, currentUserID int) (*models.PostView, error)
	// UserPosts returns a user's profile header together with their posts.
	UserPosts(userID, currentUserID int) (*models.UserProfile, []models.PostView, error)
	DeletePost(id, callerID int) error
	// ToggleLike flips the caller's like on a post and reports the new state.
	ToggleLike(postID, userID int) (liked bool, likes int, err error)
	AddComment(postID, userID int, text string) ([]models.CommentView, error)
	DeleteComment(postID, commentID, callerID int) ([]models.CommentView, error)
}

type postService struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	users    repositories.UserRepository
}

func NewPostService(posts repositories.PostRepository, comments repositories.CommentRepository, users repositories.UserRepository) PostService {
	return &postService{
		posts:    posts,
		comments: comments,
		users:    users,
	}
}

func (s *postService) CreatePost(authorID int, content, image string) (*models.Post, error) {
	post := &models.Post{
		AuthorID: authorID,
		Content:  content,
		Image:    image,
	}
	if err := s.posts.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) enrich(post *models.Post, currentUserID int) (*models.PostView, error) {
	author, err := s.users.GetByID(post.AuthorID)
	if err != nil {
		return nil, err
	}
	view := &models.PostView{
		ID:        post.ID,
		Content:   post.Content,
		Image:     post.Image,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
	if author != nil {
		view.Author = models.AuthorRef{ID: author.ID, Name: author.Name, Avatar: author.Avatar}
	}

	view.Comments, err = s.comments.ListByPost(post.ID)
	if err != nil {
		return nil, err
	}
	view.TotalLikes, err = s.posts.CountLikes(post.ID)
	if err != nil {
		return nil, err
	}
	view.LikedByCurrentUser, err = s.posts.HasLike(post.ID, currentUserID)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *postService) enrichAll(posts []*models.Post, currentUserID int) ([]models.PostView, error) {
	views := []models.PostView{}
	for _, p := range posts {
		v, err := s.enrich(p, currentUserID)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

func (s *postService) ListPosts(currentUserID int) ([]models.PostView, error) {
	posts, err := s.posts.ListAll()
	if err != nil {
		return nil, err
	}
	return s.enrichAll(posts, currentUserID)
}

func (s *postService) GetPost(id, currentUserID int) (*models.PostView, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return s.enrich(post, currentUserID)
}

func (s *postService) UserPosts(userID, currentUserID int) (*models.UserProfile, []models.PostView, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}
	posts, err := s.posts.ListByAuthor(userID)
	if err != nil {
		return nil, nil, err
	}
	views, err := s.enrichAll(posts, currentUserID)
	if err != nil {
		return nil, nil, err
	}
	profile := user.Profile()
	return &profile, views, nil
}

func (s *postService) DeletePost(id, callerID int) error {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.AuthorID != callerID {
		return ErrForbidden
	}
	return s.posts.Delete(id)
}

func (s *postService) ToggleLike(postID, userID int) (bool, int, error) {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		return false, 0, err
	}
	if post == nil {
		return false, 0, ErrPostNotFound
	}

	liked, err := s.posts.HasLike(postID, userID)
	if err != nil {
		return false, 0, err
	}
	if liked {
		err = s.posts.RemoveLike(postID, userID)
	} else {
		err = s.posts.AddLike(postID, userID)
	}
	if err != nil {
		return false, 0, err
	}

	likes, err := s.posts.CountLikes(postID)
	if err != nil {
		return false, 0, err
	}
	return !liked, likes, nil
}

func (s *postService) AddComment(postID, userID int, text string) ([]models.CommentView, error) {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comment := &models.Comment{PostID: postID, UserID: userID, Text: text}
	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(postID)
}

// DeleteComment allows the comment author or the post author to remove it.
func (s *postService) DeleteComment(postID, commentID, callerID int) ([]models.CommentView, error) {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	comment, err := s.comments.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil || comment.PostID != postID {
		return nil, ErrCommentNotFound
	}
	if comment.UserID != callerID && post.AuthorID != callerID {
		return nil, ErrForbidden
	}
	if err := s.comments.Delete(commentID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(postID)
}
