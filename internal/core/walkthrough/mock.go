package walkthrough

// Mock returns a five-step demo walkthrough over a small session
// management change.
func Mock() *Walkthrough {
	steps := []Step{
		{
			ID:    "1",
			Title: "Add UserSession model",
			Summary: "Introduces a new **UserSession** type to track authenticated user sessions. " +
				"This is the foundation for session management, storing the user ID, " +
				"creation time and expiration details.",
			Priority: PriorityCritical,
			Hunks: []Hunk{{
				FilePath:  "internal/session/session.go",
				StartLine: 1,
				EndLine:   24,
				Content: `@@ -0,0 +1,24 @@
+package session
+
+import (
+	"time"
+
+	"github.com/google/uuid"
+)
+
+type UserSession struct {
+	ID        uuid.UUID
+	UserID    uuid.UUID
+	CreatedAt time.Time
+	ExpiresAt time.Time
+	Active    bool
+}
+
+func New(userID uuid.UUID, ttl time.Duration) *UserSession {
+	now := time.Now()
+	return &UserSession{
+		ID: uuid.New(), UserID: userID,
+		CreatedAt: now, ExpiresAt: now.Add(ttl), Active: true,
+	}
+}`,
			}},
		},
		{
			ID:    "2",
			Title: "Implement session validation",
			Summary: "Adds validation to check whether a session is still usable. " +
				"Sessions are invalid once they expire or are explicitly deactivated. " +
				"This is **critical for security**.",
			Priority: PriorityCritical,
			Hunks: []Hunk{{
				FilePath:  "internal/session/session.go",
				StartLine: 25,
				EndLine:   45,
				Content: `@@ -24,0 +25,21 @@
+
+func (s *UserSession) Valid() bool {
+	return s.Active && time.Now().Before(s.ExpiresAt)
+}
+
+func (s *UserSession) Invalidate() {
+	s.Active = false
+}
+
+func (s *UserSession) Refresh(ttl time.Duration) {
+	if s.Valid() {
+		s.ExpiresAt = time.Now().Add(ttl)
+	}
+}
+
+func (s *UserSession) Remaining() (time.Duration, bool) {
+	if !s.Valid() {
+		return 0, false
+	}
+	return time.Until(s.ExpiresAt), true
+}`,
			}},
		},
		{
			ID:    "3",
			Title: "Update API handlers",
			Summary: "Integrates session validation into the API middleware. " +
				"Protected endpoints now check for a valid session before handling a request; " +
				"invalid sessions get a `401 Unauthorized` response.",
			Priority: PriorityNormal,
			Hunks: []Hunk{{
				FilePath:  "internal/api/middleware.go",
				StartLine: 15,
				EndLine:   33,
				Content: `@@ -15,7 +15,19 @@
 func RequireAuth(next http.Handler) http.Handler {
 	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
-		// TODO: check auth
-		next.ServeHTTP(w, r)
+		s, ok := session.FromContext(r.Context())
+		switch {
+		case !ok:
+			writeError(w, http.StatusUnauthorized, "unauthorized")
+			return
+		case !s.Valid():
+			writeError(w, http.StatusUnauthorized, "session_expired")
+			return
+		}
+
+		next.ServeHTTP(w, r)
 	})
 }`,
			}},
		},
		{
			ID:       "4",
			Title:    "Add unit tests",
			Summary:  "Test coverage for the session model: validation, expiry and refresh.",
			Priority: PriorityMinor,
			Hunks: []Hunk{{
				FilePath:  "internal/session/session_test.go",
				StartLine: 1,
				EndLine:   28,
				Content: `@@ -0,0 +1,28 @@
+package session
+
+import (
+	"testing"
+	"time"
+
+	"github.com/google/uuid"
+	"github.com/stretchr/testify/assert"
+)
+
+func TestNew_IsValid(t *testing.T) {
+	s := New(uuid.New(), time.Hour)
+	assert.True(t, s.Valid())
+}
+
+func TestInvalidate(t *testing.T) {
+	s := New(uuid.New(), time.Hour)
+	s.Invalidate()
+	assert.False(t, s.Valid())
+}
+
+func TestRefresh(t *testing.T) {
+	s := New(uuid.New(), time.Second)
+	before := s.ExpiresAt
+	s.Refresh(time.Hour)
+	assert.True(t, s.ExpiresAt.After(before))
+}`,
			}},
		},
		{
			ID:       "5",
			Title:    "Update documentation",
			Summary:  "Documents the session authentication requirements and the new error responses.",
			Priority: PriorityMinor,
			Hunks: []Hunk{{
				FilePath:  "docs/API.md",
				StartLine: 45,
				EndLine:   60,
				Content: `@@ -45,3 +45,16 @@
 ## Authentication

-All endpoints require authentication.
+All endpoints require a valid session token.
+
+### Session Management
+
+Sessions are created on login and expire after a configurable
+duration (default: 24 hours).
+
+### Error Responses
+
+| Status | Code              | Description               |
+|--------|-------------------|---------------------------|
+| 401    | ` + "`unauthorized`" + `    | No session token provided |
+| 401    | ` + "`session_expired`" + ` | Session has expired       |`,
			}},
		},
	}

	w, err := New(steps)
	if err != nil {
		panic("walkthrough: invalid mock data: " + err.Error())
	}
	return w
}
