package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"placement-portal/internal/delivery/http/middleware"
	"placement-portal/internal/domain/scoring"
	"placement-portal/internal/domain/user"
	"placement-portal/internal/pkg/jwt"
	"placement-portal/internal/usecase"
	ucauth "placement-portal/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	app   *fiber.App
	jwt   *jwt.HMACService
	auth  *fakeAuth
	prof  *fakeProfiles
	opps  *fakeOpportunities
	mat   *fakeMatching
	apps  *fakeApplications
	comp  *fakeCompanies
	admin *fakeAdmin
	notif *fakeNotifications
	ext   *fakeExternalJobs
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	s := &testServer{
		jwt:   jwt.NewHMACService("access", "refresh", time.Minute, time.Hour),
		auth:  &fakeAuth{},
		prof:  &fakeProfiles{},
		opps:  &fakeOpportunities{},
		mat:   &fakeMatching{},
		apps:  &fakeApplications{},
		comp:  &fakeCompanies{},
		admin: &fakeAdmin{},
		notif: &fakeNotifications{},
		ext:   &fakeExternalJobs{},
	}

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	authMw := middleware.NewAuthMiddleware(s.jwt)

	NewHealthHandler(fakePinger{}, fakePinger{err: errors.New("redis down")}).RegisterRoutes(app)

	v1 := app.Group("/api/v1")
	NewAuthHandler(s.auth).RegisterRoutes(v1.Group("/auth"))
	NewStudentHandler(s.prof, s.mat, s.apps, s.ext).RegisterRoutes(v1, authMw)
	NewOpportunityHandler(s.opps, s.mat, s.apps).RegisterRoutes(v1, authMw)
	NewApplicationHandler(s.apps).RegisterRoutes(v1, authMw)
	NewAnalyticsHandler(fakeAnalytics{}).RegisterRoutes(v1, authMw)
	NewCompanyHandler(s.comp).RegisterRoutes(v1, authMw)
	NewAdminHandler(s.admin).RegisterRoutes(v1, authMw)
	NewNotificationHandler(s.notif).RegisterRoutes(v1, authMw)

	s.app = app
	return s
}

func (s *testServer) token(t *testing.T, role user.Role) string {
	t.Helper()
	tok, err := s.jwt.GenerateAccessToken(uuid.New(), "u@uni.edu", string(role))
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (int, envelope) {
	t.Helper()

	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestRegister_ValidationUsesJSONFieldNames(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodPost, "/api/v1/auth/register", "", `{"email":"x@uni.edu","password":"longenough","role":"company"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Contains(t, string(env.Data), "company_name")
}

func TestRegister_Created(t *testing.T) {
	s := newTestServer(t)
	s.auth.register = func(in ucauth.RegisterInput) (user.User, string, string, error) {
		return user.User{ID: uuid.New(), Email: in.Email, Role: user.RoleStudent}, "acc", "ref", nil
	}

	status, env := s.do(t, http.MethodPost, "/api/v1/auth/register", "", `{"email":"s@uni.edu","password":"longenough"}`)
	require.Equal(t, http.StatusCreated, status)

	var data struct {
		AccessToken string `json:"access_token"`
		User        struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "acc", data.AccessToken)
	assert.Equal(t, "student", data.User.Role)
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	s := newTestServer(t)
	s.auth.register = func(ucauth.RegisterInput) (user.User, string, string, error) {
		return user.User{}, "", "", ucauth.ErrEmailAlreadyRegistered
	}

	status, _ := s.do(t, http.MethodPost, "/api/v1/auth/register", "", `{"email":"s@uni.edu","password":"longenough"}`)
	assert.Equal(t, http.StatusConflict, status)
}

func TestStudentRoutes_RequireStudentRole(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodGet, "/api/v1/students/me/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(t, http.MethodGet, "/api/v1/students/me/profile", s.token(t, user.RoleCompany), "")
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.do(t, http.MethodGet, "/api/v1/students/me/profile", s.token(t, user.RoleStudent), "")
	assert.Equal(t, http.StatusOK, status)
}

func TestUpdateProfile_PassesParsedInput(t *testing.T) {
	s := newTestServer(t)
	s.prof.comp = usecase.Completeness{Assessment: scoring.AssessCompleteness(45)}

	body := `{"first_name":"Ada","date_of_birth":"2001-04-09","skills":["Go","SQL"]}`
	status, env := s.do(t, http.MethodPut, "/api/v1/students/me/profile", s.token(t, user.RoleStudent), body)
	require.Equal(t, http.StatusOK, status)

	require.NotNil(t, s.prof.lastIn.DateOfBirth)
	assert.Equal(t, 2001, s.prof.lastIn.DateOfBirth.Year())
	assert.Equal(t, []string{"Go", "SQL"}, s.prof.lastIn.Skills)

	var data struct {
		Completeness struct {
			Score    int  `json:"score"`
			CanApply bool `json:"can_apply"`
		} `json:"completeness"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 45, data.Completeness.Score)
	assert.False(t, data.Completeness.CanApply)
}

func TestUpdateProfile_OmittedFieldsStayUnset(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodPut, "/api/v1/students/me/profile", s.token(t, user.RoleStudent), `{"bio":"Likes Go","date_of_birth":""}`)
	require.Equal(t, http.StatusOK, status)

	in := s.prof.lastIn
	require.NotNil(t, in.Bio)
	assert.Nil(t, in.FirstName)
	assert.Nil(t, in.Skills)
	assert.Nil(t, in.Education)
	assert.Nil(t, in.DateOfBirth)
	assert.True(t, in.ClearDateOfBirth)
}

func TestUpdateProfile_RejectsBadDate(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodPut, "/api/v1/students/me/profile", s.token(t, user.RoleStudent), `{"date_of_birth":"09/04/2001"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestListOpportunities_OptionalAuthAndPagination(t *testing.T) {
	s := newTestServer(t)
	s.opps.page = usecase.OpportunityPage{Page: 2, PerPage: 5, Total: 11, Pages: 3}

	status, env := s.do(t, http.MethodGet, "/api/v1/opportunities?page=2&per_page=5&domain=Backend", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Backend", s.opps.lastParams.Domain)
	assert.Equal(t, 2, s.opps.lastParams.Page)
	assert.Equal(t, uuid.Nil, s.opps.lastViewer.UserID)

	var data struct {
		Pagination struct {
			Total int `json:"total"`
			Pages int `json:"pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 11, data.Pagination.Total)
	assert.Equal(t, 3, data.Pagination.Pages)

	_, _ = s.do(t, http.MethodGet, "/api/v1/opportunities", s.token(t, user.RoleStudent), "")
	assert.Equal(t, user.RoleStudent, s.opps.lastViewer.Role)
}

func TestListOpportunities_BadPage(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodGet, "/api/v1/opportunities?page=abc", "", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestDomainsRouteIsNotShadowedByID(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodGet, "/api/v1/opportunities/domains", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `["Backend","Data"]`, string(env.Data))
}

func TestGetOpportunity_NotFound(t *testing.T) {
	s := newTestServer(t)
	s.opps.err = usecase.ErrOpportunityNotFound

	status, _ := s.do(t, http.MethodGet, "/api/v1/opportunities/"+uuid.NewString(), "", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(t, http.MethodGet, "/api/v1/opportunities/not-a-uuid", "", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestApproval_StaffOnly(t *testing.T) {
	s := newTestServer(t)
	path := "/api/v1/opportunities/" + uuid.NewString() + "/approval"

	status, _ := s.do(t, http.MethodPatch, path, s.token(t, user.RoleCompany), `{"approved":true}`)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.do(t, http.MethodPatch, path, s.token(t, user.RoleFaculty), `{}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodPatch, path, s.token(t, user.RoleFaculty), `{"approved":false}`)
	assert.Equal(t, http.StatusOK, status)
}

func TestRecommendations_QueryParams(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodGet, "/api/v1/students/me/recommendations?limit=5&min_match=70", s.token(t, user.RoleStudent), "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, usecase.RecommendationParams{Limit: 5, MinMatch: 70}, s.mat.lastParams)

	s.mat.err = usecase.ErrInvalidInput
	status, _ = s.do(t, http.MethodGet, "/api/v1/students/me/recommendations?min_match=150", s.token(t, user.RoleStudent), "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSubmitApplication_IncompleteProfileCarriesCompleteness(t *testing.T) {
	s := newTestServer(t)
	a := scoring.AssessCompleteness(40)
	s.apps.submitErr = &usecase.IncompleteProfileError{Completeness: usecase.Completeness{Assessment: a}}

	body := `{"opportunity_id":"` + uuid.NewString() + `"}`
	status, env := s.do(t, http.MethodPost, "/api/v1/applications", s.token(t, user.RoleStudent), body)
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, a.Tip, env.Message)

	var data struct {
		Score int `json:"score"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 40, data.Score)
}

func TestSubmitApplication_Outcomes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"created", nil, http.StatusCreated},
		{"duplicate", usecase.ErrAlreadyApplied, http.StatusConflict},
		{"in flight", usecase.ErrSubmissionInProgress, http.StatusConflict},
		{"closed", usecase.ErrOpportunityClosed, http.StatusBadRequest},
		{"deadline", usecase.ErrDeadlinePassed, http.StatusBadRequest},
		{"no profile", usecase.ErrProfileNotFound, http.StatusNotFound},
		{"unexpected", errors.New("db gone"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t)
			s.apps.submitErr = tc.err

			body := `{"opportunity_id":"` + uuid.NewString() + `","cover_letter":"hi"}`
			status, _ := s.do(t, http.MethodPost, "/api/v1/applications", s.token(t, user.RoleStudent), body)
			assert.Equal(t, tc.want, status)
		})
	}
}

func TestSubmitApplication_RejectsNonUUID(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodPost, "/api/v1/applications", s.token(t, user.RoleStudent), `{"opportunity_id":"42"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUpdateStatus_ValidatesAndMapsWithdrawn(t *testing.T) {
	s := newTestServer(t)
	path := "/api/v1/applications/" + uuid.NewString() + "/status"
	tok := s.token(t, user.RoleCompany)

	status, _ := s.do(t, http.MethodPatch, path, tok, `{"status":"pending"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodPatch, path, tok, `{"status":"shortlisted"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "shortlisted", s.apps.lastState)

	s.apps.err = usecase.ErrApplicationWithdrawn
	status, _ = s.do(t, http.MethodPatch, path, tok, `{"status":"accepted"}`)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = s.do(t, http.MethodPatch, path, s.token(t, user.RoleStudent), `{"status":"accepted"}`)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestWithdraw_CannotWithdraw(t *testing.T) {
	s := newTestServer(t)
	s.apps.err = usecase.ErrCannotWithdraw

	status, _ := s.do(t, http.MethodDelete, "/api/v1/applications/"+uuid.NewString(), s.token(t, user.RoleStudent), "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestPlacements_StaffOnly(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodGet, "/api/v1/analytics/placements", s.token(t, user.RoleStudent), "")
	assert.Equal(t, http.StatusForbidden, status)

	status, env := s.do(t, http.MethodGet, "/api/v1/analytics/placements", s.token(t, user.RoleFaculty), "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"pending":3`)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, status)

	status, env := s.do(t, http.MethodGet, "/health/ready", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"database":"ok","cache":"degraded"}`, string(env.Data))
}

func TestHealth_DatabaseDown(t *testing.T) {
	app := fiber.New()
	NewHealthHandler(fakePinger{err: errors.New("refused")}, nil).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestCompanyProfile_CompanyOnly(t *testing.T) {
	s := newTestServer(t)
	s.comp.profile.Name = "Initech"

	status, _ := s.do(t, http.MethodGet, "/api/v1/companies/me/profile", s.token(t, user.RoleStudent), "")
	assert.Equal(t, http.StatusForbidden, status)

	status, env := s.do(t, http.MethodPut, "/api/v1/companies/me/profile", s.token(t, user.RoleCompany), `{"phone":"+91 20 5555"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, s.comp.lastIn.Name)
	require.NotNil(t, s.comp.lastIn.Phone)
	assert.Contains(t, string(env.Data), `"name":"Initech"`)

	status, _ = s.do(t, http.MethodPut, "/api/v1/companies/me/profile", s.token(t, user.RoleCompany), `{"website":"not a url"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCompanyOpportunities_UpdateAndClose(t *testing.T) {
	s := newTestServer(t)
	id := uuid.NewString()
	path := "/api/v1/companies/me/opportunities/" + id
	tok := s.token(t, user.RoleCompany)

	status, env := s.do(t, http.MethodPatch, path, tok, `{"title":"Senior Go Intern"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), "Senior Go Intern")
	assert.Nil(t, s.opps.lastPatch.Description)

	status, _ = s.do(t, http.MethodPatch, path, tok, `{"work_type":"moon"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodDelete, path, tok, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, id, s.opps.closed.String())

	s.opps.err = usecase.ErrForbidden
	status, _ = s.do(t, http.MethodDelete, path, tok, "")
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.do(t, http.MethodDelete, path, s.token(t, user.RoleStudent), "")
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAdminUsers_ListAndDeactivate(t *testing.T) {
	s := newTestServer(t)
	tok := s.token(t, user.RoleAdmin)
	s.admin.page = usecase.UserPage{Page: 2, PerPage: 10, Total: 11, Pages: 2}

	status, env := s.do(t, http.MethodGet, "/api/v1/admin/users?page=2&per_page=10&role=company&is_active=false", tok, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "company", s.admin.lastParams.Role)
	require.NotNil(t, s.admin.lastParams.Active)
	assert.False(t, *s.admin.lastParams.Active)
	assert.Contains(t, string(env.Data), `"pages":2`)

	status, _ = s.do(t, http.MethodGet, "/api/v1/admin/users?is_active=maybe", tok, "")
	assert.Equal(t, http.StatusBadRequest, status)

	path := "/api/v1/admin/users/" + uuid.NewString()
	status, _ = s.do(t, http.MethodPatch, path, tok, `{}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = s.do(t, http.MethodPatch, path, tok, `{"is_active":false}`)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, s.admin.lastActive)
	assert.False(t, *s.admin.lastActive)
	assert.Contains(t, string(env.Data), `"is_active":false`)

	s.admin.err = usecase.ErrSelfDeactivation
	status, _ = s.do(t, http.MethodPatch, path, tok, `{"is_active":false}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodGet, "/api/v1/admin/users", s.token(t, user.RoleFaculty), "")
	assert.Equal(t, http.StatusForbidden, status)
}

func TestNotifications_Routes(t *testing.T) {
	s := newTestServer(t)
	tok := s.token(t, user.RoleStudent)
	s.notif.unread = 3

	status, _ := s.do(t, http.MethodGet, "/api/v1/notifications", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(t, http.MethodGet, "/api/v1/notifications?unread_only=true&limit=5", tok, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, usecase.NotificationListParams{UnreadOnly: true, Limit: 5}, s.notif.lastParams)

	status, env := s.do(t, http.MethodGet, "/api/v1/notifications/unread-count", tok, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"unread_count":3}`, string(env.Data))

	status, env = s.do(t, http.MethodPut, "/api/v1/notifications/read-all", s.token(t, user.RoleCompany), "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"updated":3}`, string(env.Data))

	id := uuid.New()
	status, _ = s.do(t, http.MethodPut, "/api/v1/notifications/"+id.String()+"/read", tok, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, id, s.notif.marked)

	s.notif.err = usecase.ErrNotificationNotFound
	status, _ = s.do(t, http.MethodPut, "/api/v1/notifications/"+id.String()+"/read", tok, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestExternalJobs_StudentRoutes(t *testing.T) {
	s := newTestServer(t)
	tok := s.token(t, user.RoleStudent)

	status, _ := s.do(t, http.MethodGet, "/api/v1/students/me/external-jobs?limit=10&min_match=80", tok, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, usecase.ExternalJobParams{Limit: 10, MinMatch: 80}, s.ext.lastParams)

	status, env := s.do(t, http.MethodGet, "/api/v1/students/me/external-jobs/"+uuid.NewString()+"/match", tok, "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), "Go Intern")

	status, _ = s.do(t, http.MethodGet, "/api/v1/students/me/external-jobs", s.token(t, user.RoleCompany), "")
	assert.Equal(t, http.StatusForbidden, status)

	s.ext.err = usecase.ErrExternalJobNotFound
	status, _ = s.do(t, http.MethodGet, "/api/v1/students/me/external-jobs/"+uuid.NewString()+"/match", tok, "")
	assert.Equal(t, http.StatusNotFound, status)
}
