package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/amanjaiswal-07/youtube-backend/composer"
	"github.com/amanjaiswal-07/youtube-backend/helpers"
	"github.com/amanjaiswal-07/youtube-backend/middleware"
	"github.com/amanjaiswal-07/youtube-backend/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memStore is an in-memory stand-in for database.Store.
type memStore struct {
	mu sync.Mutex

	users     map[primitive.ObjectID]*models.User
	videos    map[primitive.ObjectID]*models.Video
	comments  map[primitive.ObjectID]*models.Comment
	tweets    map[primitive.ObjectID]*models.Tweet
	playlists map[primitive.ObjectID]*models.Playlist
	likes     map[string]bool
	subs      map[[2]primitive.ObjectID]bool

	viewCounts map[primitive.ObjectID]int
	createErr  error
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[primitive.ObjectID]*models.User{},
		videos:     map[primitive.ObjectID]*models.Video{},
		comments:   map[primitive.ObjectID]*models.Comment{},
		tweets:     map[primitive.ObjectID]*models.Tweet{},
		playlists:  map[primitive.ObjectID]*models.Playlist{},
		likes:      map[string]bool{},
		subs:       map[[2]primitive.ObjectID]bool{},
		viewCounts: map[primitive.ObjectID]int{},
	}
}

func (s *memStore) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	u.ID = primitive.NewObjectID()
	s.users[u.ID] = u
	return nil
}

func (s *memStore) UserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *u
	return &cp, nil
}

func (s *memStore) UserByLogin(_ context.Context, username, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *memStore) UserTaken(ctx context.Context, username, email string) (bool, error) {
	_, err := s.UserByLogin(ctx, username, email)
	return err == nil, nil
}

func (s *memStore) UpdateUser(_ context.Context, id primitive.ObjectID, fields bson.D) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	for _, f := range fields {
		switch f.Key {
		case "fullname":
			u.Fullname = f.Value.(string)
		case "email":
			u.Email = f.Value.(string)
		case "password":
			u.Password = f.Value.(string)
		case "avatar":
			u.Avatar = f.Value.(models.Asset)
		case "coverimage":
			a := f.Value.(models.Asset)
			u.Coverimage = &a
		}
	}
	cp := *u
	return &cp, nil
}

func (s *memStore) SetRefreshToken(_ context.Context, id primitive.ObjectID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.RefreshToken = token
	return nil
}

func (s *memStore) AddToWatchHistory(_ context.Context, userID, videoID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for _, v := range u.WatchHistory {
		if v == videoID {
			return nil
		}
	}
	u.WatchHistory = append(u.WatchHistory, videoID)
	return nil
}

func (s *memStore) ClearWatchHistory(_ context.Context, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.WatchHistory = []primitive.ObjectID{}
	return nil
}

func (s *memStore) CreateVideo(_ context.Context, v *models.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	v.ID = primitive.NewObjectID()
	s.videos[v.ID] = v
	return nil
}

func (s *memStore) VideoByID(_ context.Context, id primitive.ObjectID) (*models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *v
	return &cp, nil
}

func (s *memStore) UpdateVideo(_ context.Context, id primitive.ObjectID, fields bson.D) (*models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	for _, f := range fields {
		switch f.Key {
		case "title":
			v.Title = f.Value.(string)
		case "description":
			v.Description = f.Value.(string)
		case "thumbnail":
			v.Thumbnail = f.Value.(models.Asset)
		case "isPublished":
			v.IsPublished = f.Value.(bool)
		}
	}
	cp := *v
	return &cp, nil
}

func (s *memStore) DeleteVideo(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.videos[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(s.videos, id)
	return nil
}

func (s *memStore) IncrementViews(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewCounts[id]++
	return nil
}

func (s *memStore) CreateComment(_ context.Context, parent models.Parent, owner primitive.ObjectID, content string) (*models.Comment, error) {
	c, err := models.NewComment(parent, owner, content, time.Now())
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = primitive.NewObjectID()
	s.comments[c.ID] = c
	return c, nil
}

func (s *memStore) CommentByID(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *c
	return &cp, nil
}

func (s *memStore) UpdateComment(_ context.Context, id primitive.ObjectID, content string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	c.Content = content
	cp := *c
	return &cp, nil
}

func (s *memStore) DeleteComment(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(s.comments, id)
	return nil
}

func (s *memStore) ParentExists(_ context.Context, parent models.Parent) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	switch parent.Kind {
	case models.ParentVideo:
		_, ok = s.videos[parent.ID]
	case models.ParentComment:
		_, ok = s.comments[parent.ID]
	case models.ParentTweet:
		_, ok = s.tweets[parent.ID]
	}
	return ok, nil
}

func likeKey(parent models.Parent, userID primitive.ObjectID) string {
	return fmt.Sprintf("%s:%s:%s", parent.Kind, parent.ID.Hex(), userID.Hex())
}

func (s *memStore) ToggleLike(_ context.Context, parent models.Parent, userID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := likeKey(parent, userID)
	if s.likes[k] {
		delete(s.likes, k)
		return false, nil
	}
	s.likes[k] = true
	return true, nil
}

func (s *memStore) CreateTweet(_ context.Context, t *models.Tweet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	t.ID = primitive.NewObjectID()
	s.tweets[t.ID] = t
	return nil
}

func (s *memStore) TweetByID(_ context.Context, id primitive.ObjectID) (*models.Tweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tweets[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *t
	return &cp, nil
}

func (s *memStore) UpdateTweet(_ context.Context, id primitive.ObjectID, fields bson.D) (*models.Tweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tweets[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	for _, f := range fields {
		if f.Key == "content" {
			t.Content = f.Value.(string)
		}
	}
	cp := *t
	return &cp, nil
}

func (s *memStore) DeleteTweet(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tweets[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(s.tweets, id)
	return nil
}

func (s *memStore) ToggleSubscription(_ context.Context, subscriber, channel primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := [2]primitive.ObjectID{subscriber, channel}
	if s.subs[k] {
		delete(s.subs, k)
		return false, nil
	}
	s.subs[k] = true
	return true, nil
}

func (s *memStore) CreatePlaylist(_ context.Context, p *models.Playlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = primitive.NewObjectID()
	if p.Videos == nil {
		p.Videos = []primitive.ObjectID{}
	}
	s.playlists[p.ID] = p
	return nil
}

func (s *memStore) PlaylistByID(_ context.Context, id primitive.ObjectID) (*models.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.playlists[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *p
	cp.Videos = append([]primitive.ObjectID{}, p.Videos...)
	return &cp, nil
}

func (s *memStore) UpdatePlaylist(_ context.Context, id primitive.ObjectID, fields bson.D) (*models.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.playlists[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	for _, f := range fields {
		switch f.Key {
		case "name":
			p.Name = f.Value.(string)
		case "description":
			p.Description = f.Value.(string)
		}
	}
	cp := *p
	return &cp, nil
}

func (s *memStore) DeletePlaylist(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.playlists[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(s.playlists, id)
	return nil
}

func (s *memStore) AddVideoToPlaylist(_ context.Context, playlistID, videoID primitive.ObjectID) (*models.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.playlists[playlistID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if !containsID(p.Videos, videoID) {
		p.Videos = append(p.Videos, videoID)
	}
	cp := *p
	return &cp, nil
}

func (s *memStore) RemoveVideoFromPlaylist(_ context.Context, playlistID, videoID primitive.ObjectID) (*models.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.playlists[playlistID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	kept := p.Videos[:0]
	for _, v := range p.Videos {
		if v != videoID {
			kept = append(kept, v)
		}
	}
	p.Videos = kept
	cp := *p
	return &cp, nil
}

func (s *memStore) Ping(context.Context) error { return nil }

// fakeAssets records every call made to the asset host.
type fakeAssets struct {
	mu        sync.Mutex
	uploads   []string
	kinds     []models.ResourceKind
	destroyed []models.Asset
	failOn    string // folder whose uploads fail
}

func (a *fakeAssets) Upload(_ context.Context, localPath, folder string, kind models.ResourceKind) (models.Asset, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if folder == a.failOn {
		return models.Asset{}, errors.New("provider unavailable")
	}
	a.uploads = append(a.uploads, localPath)
	a.kinds = append(a.kinds, kind)
	id := fmt.Sprintf("%s/%d", folder, len(a.uploads))
	return models.Asset{URL: "https://cdn.test/" + id, PublicID: id, ResourceType: kind}, nil
}

func (a *fakeAssets) Destroy(_ context.Context, asset models.Asset) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.destroyed = append(a.destroyed, asset)
	return nil
}

// fakeSource serves canned rows to the composer.
type fakeSource struct {
	rows      []interface{}
	total     int64
	pipelines []mongo.Pipeline
	filters   []interface{}
}

func (f *fakeSource) Aggregate(_ context.Context, pipeline interface{}, _ ...*options.AggregateOptions) (*mongo.Cursor, error) {
	f.pipelines = append(f.pipelines, pipeline.(mongo.Pipeline))
	return mongo.NewCursorFromDocuments(f.rows, nil, nil)
}

func (f *fakeSource) CountDocuments(_ context.Context, filter interface{}, _ ...*options.CountOptions) (int64, error) {
	f.filters = append(f.filters, filter)
	return f.total, nil
}

// fakeViews hands out one fakeSource per collection.
type fakeViews map[string]*fakeSource

func (v fakeViews) Source(name string) composer.Source {
	src, ok := v[name]
	if !ok {
		src = &fakeSource{}
		v[name] = src
	}
	return src
}

// newRouter returns an engine that authenticates every request as actor,
// or leaves it anonymous for the zero id.
func newRouter(actor primitive.ObjectID) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if !actor.IsZero() {
			middleware.SetUserID(c, actor)
		}
		c.Next()
	})
	return r
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Errors     []string        `json:"errors"`
	Success    bool            `json:"success"`
}

func serve(t *testing.T, r http.Handler, method, path string, body io.Reader, contentType string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func serveJSON(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	return serve(t, r, method, path, rd, "application/json")
}

// multipartBody builds a form with the given fields and files (field name to
// file contents).
func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, content := range files {
		fw, err := w.CreateFormFile(field, field+".bin")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func spooler(t *testing.T) *helpers.Spooler {
	return helpers.NewSpooler(t.TempDir(), 5)
}

// inline runs background work before the handler returns.
func inline(fn func()) { fn() }
