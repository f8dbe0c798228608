package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cluedeck/trivia-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser(t *testing.T, email, password string, admin bool) *models.User {
	t.Helper()
	u := &models.User{ID: 1, FirstName: "Pat", LastName: "Doe", Email: email, Admin: admin}
	require.NoError(t, u.SetPassword(password))
	return u
}

// mapFinder matches the UserFinder contract: case-insensitive email,
// (nil, nil) on miss.
func mapFinder(users ...*models.User) UserFinder {
	return func(email string) (*models.User, error) {
		for _, u := range users {
			if strings.EqualFold(u.Email, email) {
				return u, nil
			}
		}
		return nil, nil
	}
}

func authRouter(find UserFinder, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{BasicAuth(find)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUser(c).ID})
	})
	r.GET("/probe", handlers...)
	return r
}

func TestBasicAuthAcceptsValidCredentials(t *testing.T) {
	r := authRouter(mapFinder(testUser(t, "pat@example.com", "s3cret!pw", false)))

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.SetBasicAuth("pat@example.com", "s3cret!pw")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1}`, w.Body.String())
}

func TestBasicAuthEmailIsCaseInsensitive(t *testing.T) {
	r := authRouter(mapFinder(testUser(t, "pat@example.com", "s3cret!pw", false)))

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.SetBasicAuth("PAT@Example.COM", "s3cret!pw")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBasicAuthRejections(t *testing.T) {
	r := authRouter(mapFinder(testUser(t, "pat@example.com", "s3cret!pw", false)))

	tests := []struct {
		name  string
		setup func(req *http.Request)
	}{
		{"missing header", func(req *http.Request) {}},
		{"unknown user", func(req *http.Request) { req.SetBasicAuth("ghost@example.com", "s3cret!pw") }},
		{"wrong password", func(req *http.Request) { req.SetBasicAuth("pat@example.com", "nope") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			// Same status and body for every failure mode.
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"message":"Access Denied"}`, w.Body.String())
		})
	}
}

func TestAdminRequired(t *testing.T) {
	member := testUser(t, "pat@example.com", "s3cret!pw", false)
	admin := testUser(t, "root@example.com", "s3cret!pw", true)
	admin.ID = 2
	r := authRouter(mapFinder(member, admin), AdminRequired())

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.SetBasicAuth("pat@example.com", "s3cret!pw")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.SetBasicAuth("root@example.com", "s3cret!pw")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthNeverRejects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	user := testUser(t, "pat@example.com", "s3cret!pw", false)
	r := gin.New()
	r.GET("/probe", OptionalAuth(mapFinder(user)), func(c *gin.Context) {
		if u := CurrentUser(c); u != nil {
			c.JSON(http.StatusOK, gin.H{"id": u.ID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": nil})
	})

	// Anonymous goes through.
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":null}`, w.Body.String())

	// Bad credentials still go through, just unlinked.
	req = httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.SetBasicAuth("pat@example.com", "wrong")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":null}`, w.Body.String())

	// Valid credentials resolve the caller.
	req = httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.SetBasicAuth("pat@example.com", "s3cret!pw")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1}`, w.Body.String())
}
