package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"linkup/internal/services"
)

type PostHandler struct {
	posts services.PostService
}

func NewPostHandler(posts services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

func postIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return 0, false
	}
	return id, true
}

type createPostRequest struct {
	Content string `json:"content" binding:"required"`
	Image   string `json:"image"`
}

// @Summary      Create a post
// @Tags         Posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post  body      createPostRequest  true  "Post content"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.posts.CreatePost(currentUserID(c), req.Content, req.Image)
	if err != nil {
		log.Printf("[posts][create] failed for userID=%d: %v", currentUserID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Post created successfully", "post": post})
}

// @Summary      Feed of all posts, newest first
// @Tags         Posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.PostView
// @Router       /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	views, err := h.posts.ListPosts(currentUserID(c))
	if err != nil {
		log.Printf("[posts][list] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary      Single post
// @Tags         Posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  models.PostView
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	view, err := h.posts.GetPost(id, currentUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		log.Printf("[posts][get] failed for id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load post"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary      Current user's posts with profile header
// @Tags         Posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /posts/user/me [get]
func (h *PostHandler) MyPosts(c *gin.Context) {
	h.userPosts(c, currentUserID(c))
}

// @Summary      A user's posts with profile header
// @Tags         Posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /posts/user/{id} [get]
func (h *PostHandler) UserPosts(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	h.userPosts(c, id)
}

func (h *PostHandler) userPosts(c *gin.Context, userID int) {
	profile, views, err := h.posts.UserPosts(userID, currentUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("[posts][user] failed for userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile, "posts": views})
}

// @Summary      Delete a post (author only)
// @Tags         Posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	switch err := h.posts.DeletePost(id, currentUserID(c)); {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
	case errors.Is(err, services.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
	default:
		log.Printf("[posts][delete] failed for id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
	}
}

// @Summary      Toggle a like on a post
// @Tags         Posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/like [put]
func (h *PostHandler) Like(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	liked, likes, err := h.posts.ToggleLike(id, currentUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		log.Printf("[posts][like] failed for id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		return
	}

	message := "Post unliked"
	if liked {
		message = "Post liked"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "likes": likes})
}

// @Summary      Add a comment
// @Tags         Posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                   true  "Post ID"
// @Param        comment  body      object{text=string}  true  "Comment text"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /posts/{id}/comment [post]
func (h *PostHandler) Comment(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment text is required"})
		return
	}

	comments, err := h.posts.AddComment(id, currentUserID(c), req.Text)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		log.Printf("[posts][comment] failed for id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Comment added", "comments": comments})
}

// @Summary      Delete a comment (comment author or post author)
// @Tags         Posts
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      int  true  "Post ID"
// @Param        commentId  path      int  true  "Comment ID"
// @Success      200        {object}  map[string]interface{}
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /posts/{id}/comment/{commentId} [delete]
func (h *PostHandler) DeleteComment(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	commentID, err := strconv.Atoi(c.Param("commentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	comments, err := h.posts.DeleteComment(id, commentID, currentUserID(c))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Comment deleted", "comments": comments})
	case errors.Is(err, services.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	case errors.Is(err, services.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
	default:
		log.Printf("[posts][comment-delete] failed for id=%d comment=%d: %v", id, commentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
	}
}
