package handlers

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/postcraft/backend/internal/generation"
	"github.com/anonto42/postcraft/backend/internal/middleware"
	"github.com/anonto42/postcraft/backend/internal/models"
	"github.com/anonto42/postcraft/backend/internal/repositories"
	"github.com/anonto42/postcraft/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

const testUserID uint = 7

func newTestContext(t *testing.T, method, target, body string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = validators.NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set(middleware.UserContextKey, &models.JwtCustomClaims{UserID: userID})
	}
	return c, rec
}

// requireHTTPError asserts err is an *echo.HTTPError with the given status and returns it
func requireHTTPError(t *testing.T, err error, status int) *echo.HTTPError {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he), "expected *echo.HTTPError, got %v", err)
	require.Equal(t, status, he.Code)
	return he
}

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByFirebaseUID(uid string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.FirebaseUID != nil && *u.FirebaseUID == uid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

type fakePreferenceRepo struct {
	prefs map[uint]*models.Preference
	err   error
}

func newFakePreferenceRepo() *fakePreferenceRepo {
	return &fakePreferenceRepo{prefs: map[uint]*models.Preference{}}
}

func (r *fakePreferenceRepo) GetByUserID(userID uint) (*models.Preference, error) {
	if r.err != nil {
		return nil, r.err
	}
	if p, ok := r.prefs[userID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePreferenceRepo) Save(pref *models.Preference) error {
	if r.err != nil {
		return r.err
	}
	r.prefs[pref.UserID] = pref
	return nil
}

type fakeGenerator struct {
	genReq    generation.GenerationRequest
	regenReq  generation.RegenerationRequest
	genResult *generation.GenerationResult
	regenText string
	err       error
	deadline  bool
}

func (g *fakeGenerator) GenerateInitialPosts(ctx context.Context, req generation.GenerationRequest) (*generation.GenerationResult, error) {
	g.genReq = req
	_, g.deadline = ctx.Deadline()
	if g.err != nil {
		return nil, g.err
	}
	return g.genResult, nil
}

func (g *fakeGenerator) RegeneratePostWithEdits(ctx context.Context, req generation.RegenerationRequest) (*generation.RegenerationResult, error) {
	g.regenReq = req
	_, g.deadline = ctx.Deadline()
	if g.err != nil {
		return nil, g.err
	}
	return &generation.RegenerationResult{RegeneratedPost: g.regenText}, nil
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[string]*models.Post
	order []string

	creates      int
	failOnCreate int // 1-based insert that fails; 0 never fails
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[string]*models.Post{}}
}

func (r *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.creates == r.failOnCreate {
		return errors.New("insert failed")
	}
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	cp := *post
	r.posts[post.ID.Hex()] = &cp
	r.order = append(r.order, post.ID.Hex())
	return nil
}

func (r *fakePostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repositories.ErrInvalidPostID
	}
	if p, ok := r.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, repositories.ErrPostNotFound
}

func (r *fakePostRepo) GetPostsByUserID(_ context.Context, userID uint, platform string, skip, limit int64) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Post{}
	for i := len(r.order) - 1; i >= 0; i-- {
		p, ok := r.posts[r.order[i]]
		if !ok || p.UserID != userID || (platform != "" && string(p.Platform) != platform) {
			continue
		}
		out = append(out, *p)
	}
	if skip >= int64(len(out)) {
		return []models.Post{}, nil
	}
	out = out[skip:]
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePostRepo) UpdateStatus(_ context.Context, id, status, externalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return repositories.ErrPostNotFound
	}
	p.Status = status
	p.ExternalID = externalID
	return nil
}

func (r *fakePostRepo) DeletePost(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return repositories.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

type fakePublicationRepo struct {
	mu      sync.Mutex
	records []models.PublishRecord
	counts  []models.PlatformStatusCount
	page    int
	limit   int
}

func (r *fakePublicationRepo) CreateRecord(_ context.Context, record *models.PublishRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record.ID = uint(len(r.records) + 1)
	r.records = append(r.records, *record)
	return nil
}

func (r *fakePublicationRepo) GetByUserID(_ context.Context, userID uint, platform string, page, limit int) ([]models.PublishRecord, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.page, r.limit = page, limit
	var out []models.PublishRecord
	for _, rec := range r.records {
		if rec.UserID == userID && (platform == "" || rec.Platform == platform) {
			out = append(out, rec)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakePublicationRepo) CountByPlatformAndStatus(context.Context, uint) ([]models.PlatformStatusCount, error) {
	return r.counts, nil
}

type fakeVerifier struct {
	token *auth.Token
	err   error
}

func (v fakeVerifier) VerifyIDToken(context.Context, string) (*auth.Token, error) {
	return v.token, v.err
}

