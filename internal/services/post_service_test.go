package services

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkup/internal/models"
)

type likeKey struct{ postID, userID int }

type fakePostRepo struct {
	mu    sync.Mutex
	seq   int
	posts map[int]*models.Post
	likes map[likeKey]bool
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[int]*models.Post), likes: make(map[likeKey]bool)}
}

func (f *fakePostRepo) Create(post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	post.ID = f.seq
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	cp := *post
	f.posts[post.ID] = &cp
	return nil
}

func (f *fakePostRepo) GetByID(id int) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePostRepo) listLocked(filter func(*models.Post) bool) []*models.Post {
	var out []*models.Post
	for _, p := range f.posts {
		if filter(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakePostRepo) ListAll() ([]*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listLocked(func(*models.Post) bool { return true }), nil
}

func (f *fakePostRepo) ListByAuthor(authorID int) ([]*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listLocked(func(p *models.Post) bool { return p.AuthorID == authorID }), nil
}

func (f *fakePostRepo) Delete(id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) CountLikes(postID int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for k := range f.likes {
		if k.postID == postID {
			n++
		}
	}
	return n, nil
}

func (f *fakePostRepo) HasLike(postID, userID int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.likes[likeKey{postID, userID}], nil
}

func (f *fakePostRepo) AddLike(postID, userID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.likes[likeKey{postID, userID}] = true
	return nil
}

func (f *fakePostRepo) RemoveLike(postID, userID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.likes, likeKey{postID, userID})
	return nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	seq      int
	comments map[int]*models.Comment
	users    *fakeUserRepo
}

func newFakeCommentRepo(users *fakeUserRepo) *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[int]*models.Comment), users: users}
}

func (f *fakeCommentRepo) Create(comment *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	comment.ID = f.seq
	comment.CreatedAt = time.Now()
	cp := *comment
	f.comments[comment.ID] = &cp
	return nil
}

func (f *fakeCommentRepo) GetByID(id int) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cm, ok := f.comments[id]
	if !ok {
		return nil, nil
	}
	cp := *cm
	return &cp, nil
}

func (f *fakeCommentRepo) Delete(id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepo) ListByPost(postID int) ([]models.CommentView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	views := []models.CommentView{}
	for _, cm := range f.comments {
		if cm.PostID != postID {
			continue
		}
		v := models.CommentView{ID: cm.ID, Text: cm.Text, CreatedAt: cm.CreatedAt}
		if u, _ := f.users.GetByID(cm.UserID); u != nil {
			v.User = models.AuthorRef{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
		}
		views = append(views, v)
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views, nil
}

func newPostServiceForTest(t *testing.T) (PostService, *fakePostRepo, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	posts := newFakePostRepo()
	comments := newFakeCommentRepo(users)
	return NewPostService(posts, comments, users), posts, users
}

func seedUser(t *testing.T, users *fakeUserRepo, name, email string) int {
	t.Helper()
	u := &models.User{Name: name, Email: email, Verified: true}
	require.NoError(t, users.Create(u))
	return u.ID
}

func TestToggleLike_Involution(t *testing.T) {
	svc, _, users := newPostServiceForTest(t)
	alice := seedUser(t, users, "Alice", "a@x.com")
	bob := seedUser(t, users, "Bob", "b@x.com")

	post, err := svc.CreatePost(alice, "hello", "")
	require.NoError(t, err)

	liked, likes, err := svc.ToggleLike(post.ID, bob)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, likes)

	liked, likes, err = svc.ToggleLike(post.ID, bob)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, likes)
}

func TestToggleLike_PostNotFound(t *testing.T) {
	svc, _, users := newPostServiceForTest(t)
	bob := seedUser(t, users, "Bob", "b@x.com")

	_, _, err := svc.ToggleLike(999, bob)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestListPosts_EnrichedProjection(t *testing.T) {
	svc, _, users := newPostServiceForTest(t)
	alice := seedUser(t, users, "Alice", "a@x.com")
	bob := seedUser(t, users, "Bob", "b@x.com")

	post, err := svc.CreatePost(alice, "first!", "https://img.example.com/x.png")
	require.NoError(t, err)
	_, _, err = svc.ToggleLike(post.ID, bob)
	require.NoError(t, err)
	_, err = svc.AddComment(post.ID, bob, "nice")
	require.NoError(t, err)

	views, err := svc.ListPosts(bob)
	require.NoError(t, err)
	require.Len(t, views, 1)

	v := views[0]
	assert.Equal(t, "Alice", v.Author.Name)
	assert.Equal(t, 1, v.TotalLikes)
	assert.True(t, v.LikedByCurrentUser)
	require.Len(t, v.Comments, 1)
	assert.Equal(t, "nice", v.Comments[0].Text)
	assert.Equal(t, "Bob", v.Comments[0].User.Name)

	// для Алисы тот же пост — не лайкнут
	views, err = svc.ListPosts(alice)
	require.NoError(t, err)
	assert.False(t, views[0].LikedByCurrentUser)
	assert.Equal(t, 1, views[0].TotalLikes)
}

func TestDeletePost_AuthorOnly(t *testing.T) {
	svc, posts, users := newPostServiceForTest(t)
	alice := seedUser(t, users, "Alice", "a@x.com")
	bob := seedUser(t, users, "Bob", "b@x.com")

	post, err := svc.CreatePost(alice, "mine", "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeletePost(post.ID, bob), ErrForbidden)
	require.NoError(t, svc.DeletePost(post.ID, alice))

	p, _ := posts.GetByID(post.ID)
	assert.Nil(t, p)

	assert.ErrorIs(t, svc.DeletePost(post.ID, alice), ErrPostNotFound)
}

func TestDeleteComment_Authorization(t *testing.T) {
	svc, _, users := newPostServiceForTest(t)
	alice := seedUser(t, users, "Alice", "a@x.com")
	bob := seedUser(t, users, "Bob", "b@x.com")
	carol := seedUser(t, users, "Carol", "c@x.com")

	post, err := svc.CreatePost(alice, "thread", "")
	require.NoError(t, err)
	comments, err := svc.AddComment(post.ID, bob, "from bob")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	commentID := comments[0].ID

	// посторонний — нельзя
	_, err = svc.DeleteComment(post.ID, commentID, carol)
	assert.ErrorIs(t, err, ErrForbidden)

	// автор поста — можно
	comments, err = svc.DeleteComment(post.ID, commentID, alice)
	require.NoError(t, err)
	assert.Empty(t, comments)

	// автор комментария может удалить свой
	comments, err = svc.AddComment(post.ID, bob, "again")
	require.NoError(t, err)
	comments, err = svc.DeleteComment(post.ID, comments[0].ID, bob)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestDeleteComment_WrongPost(t *testing.T) {
	svc, _, users := newPostServiceForTest(t)
	alice := seedUser(t, users, "Alice", "a@x.com")

	p1, err := svc.CreatePost(alice, "one", "")
	require.NoError(t, err)
	p2, err := svc.CreatePost(alice, "two", "")
	require.NoError(t, err)

	comments, err := svc.AddComment(p1.ID, alice, "on p1")
	require.NoError(t, err)

	_, err = svc.DeleteComment(p2.ID, comments[0].ID, alice)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestUserPosts_ProfileHeader(t *testing.T) {
	svc, _, users := newPostServiceForTest(t)
	alice := seedUser(t, users, "Alice", "a@x.com")

	_, err := svc.CreatePost(alice, "p1", "")
	require.NoError(t, err)
	_, err = svc.CreatePost(alice, "p2", "")
	require.NoError(t, err)

	profile, views, err := svc.UserPosts(alice, alice)
	require.NoError(t, err)
	assert.Equal(t, "Alice", profile.Name)
	assert.Len(t, views, 2)

	_, _, err = svc.UserPosts(999, alice)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
