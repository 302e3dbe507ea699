package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/medbook/booking-api/internal/handler"
	appointmentHandler "github.com/medbook/booking-api/internal/handler/appointment"
	authHandler "github.com/medbook/booking-api/internal/handler/auth"
	doctorHandler "github.com/medbook/booking-api/internal/handler/doctor"
	pagesHandler "github.com/medbook/booking-api/internal/handler/pages"
	"github.com/medbook/booking-api/internal/middleware"
	"github.com/medbook/booking-api/internal/model"
	appointmentService "github.com/medbook/booking-api/internal/service/appointment"
	doctorService "github.com/medbook/booking-api/internal/service/doctor"
	userService "github.com/medbook/booking-api/internal/service/user"
	"github.com/medbook/booking-api/internal/session"
	"github.com/medbook/booking-api/pkg/apperrors"
	"github.com/medbook/booking-api/pkg/metrics"
	"github.com/medbook/booking-api/pkg/security"
)

// fakeDB backs all three repositories for handler-level tests.
type fakeDB struct {
	users        map[string]*model.User
	doctors      []*model.Doctor
	appointments []*model.Appointment
	nextID       int64
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users: make(map[string]*model.User),
		doctors: []*model.Doctor{
			{ID: 1, Name: "Dr. Adams", Specialty: "Cardiology"},
			{ID: 2, Name: "Dr. Brown", Specialty: "Dermatology"},
		},
		nextID: 1,
	}
}

func (f *fakeDB) Create(_ context.Context, user *model.User) error {
	if _, exists := f.users[user.Email]; exists {
		return apperrors.ErrEmailTaken
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.Email] = user
	return nil
}

func (f *fakeDB) GetByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func (f *fakeDB) List(_ context.Context) ([]*model.Doctor, error) {
	return f.doctors, nil
}

func (f *fakeDB) CreateAppointment(_ context.Context, a *model.Appointment) error {
	a.ID = f.nextID
	f.nextID++
	f.appointments = append(f.appointments, a)
	return nil
}

func (f *fakeDB) ListForUser(_ context.Context, userID int64) ([]*model.AppointmentDetail, error) {
	out := make([]*model.AppointmentDetail, 0)
	for _, a := range f.appointments {
		if a.UserID != userID {
			continue
		}
		detail := &model.AppointmentDetail{
			ID:              a.ID,
			AppointmentTime: a.AppointmentTime,
			Status:          a.Status,
		}
		for _, d := range f.doctors {
			if d.ID == a.DoctorID {
				detail.DoctorName = d.Name
				detail.Specialty = d.Specialty
			}
		}
		out = append(out, detail)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AppointmentTime.After(out[j].AppointmentTime)
	})
	return out, nil
}

func (f *fakeDB) Cancel(_ context.Context, appointmentID, userID int64) (int64, error) {
	for i, a := range f.appointments {
		if a.ID == appointmentID && a.UserID == userID {
			f.appointments = append(f.appointments[:i], f.appointments[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeDB) MarkCompletedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

// appointmentRepo adapts fakeDB's CreateAppointment to the repository
// interface (Create is taken by the user side of the fake).
type appointmentRepo struct{ *fakeDB }

func (r appointmentRepo) Create(ctx context.Context, a *model.Appointment) error {
	return r.CreateAppointment(ctx, a)
}

var testMetrics = metrics.New("router_test")

func newTestRouter(t *testing.T) (*gin.Engine, *fakeDB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	viewsDir := t.TempDir()
	for _, name := range []string{"home.html", "login.html", "register.html", "book.html", "manage.html"} {
		err := os.WriteFile(filepath.Join(viewsDir, name), []byte("<html>"+name+"</html>"), 0o644)
		require.NoError(t, err)
	}

	db := newFakeDB()
	store := session.NewMemoryStore(time.Hour)
	codec := session.NewCodec("test-secret")

	userSvc := userService.NewService(db, security.NewBcryptHasher(bcrypt.MinCost))
	appointmentSvc := appointmentService.NewService(appointmentRepo{db})
	doctorSvc := doctorService.NewService(db)

	r := NewRouter(
		middleware.NewAuthMiddleware(store, codec),
		pagesHandler.NewHandler(viewsDir),
		authHandler.NewHandler(userSvc, store, codec, time.Hour, testMetrics),
		appointmentHandler.NewHandler(appointmentSvc),
		doctorHandler.NewHandler(doctorSvc),
		handler.NewHandler(),
		testMetrics,
	)
	return r.Engine(), db
}

func doForm(engine *gin.Engine, method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func register(t *testing.T, engine *gin.Engine, name, email, password string) {
	t.Helper()
	w := doForm(engine, http.MethodPost, "/register", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {password},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
}

func login(t *testing.T, engine *gin.Engine, email, password string) *http.Cookie {
	t.Helper()
	w := doForm(engine, http.MethodPost, "/login", url.Values{
		"email":    {email},
		"password": {password},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/book", w.Header().Get("Location"))
	return sessionCookie(t, w)
}

func TestProtectedRoutesRedirectAnonymous(t *testing.T) {
	engine, _ := newTestRouter(t)

	for _, path := range []string{"/book", "/manage", "/api/appointments"} {
		w := doForm(engine, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"), path)
	}
}

func TestPublicPages(t *testing.T) {
	engine, _ := newTestRouter(t)

	for _, path := range []string{"/", "/login", "/register"} {
		w := doForm(engine, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRegisterLoginEstablishesSession(t *testing.T) {
	engine, _ := newTestRouter(t)

	register(t, engine, "Alice", "alice@x.com", "pw123")
	cookie := login(t, engine, "alice@x.com", "pw123")

	w := doForm(engine, http.MethodGet, "/book", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	engine, db := newTestRouter(t)

	register(t, engine, "Alice", "alice@x.com", "pw123")

	w := doForm(engine, http.MethodPost, "/register", url.Values{
		"name":     {"Imposter"},
		"email":    {"alice@x.com"},
		"password": {"other"},
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Error registering user")
	assert.Len(t, db.users, 1)
}

func TestLoginWrongPassword(t *testing.T) {
	engine, _ := newTestRouter(t)

	register(t, engine, "Alice", "alice@x.com", "pw123")

	for i := 0; i < 3; i++ {
		w := doForm(engine, http.MethodPost, "/login", url.Values{
			"email":    {"alice@x.com"},
			"password": {"wrong"},
		}, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Invalid email or password", w.Body.String())
	}
}

func TestBookAndListAppointments(t *testing.T) {
	engine, db := newTestRouter(t)

	register(t, engine, "Alice", "alice@x.com", "pw123")
	cookie := login(t, engine, "alice@x.com", "pw123")

	w := doForm(engine, http.MethodPost, "/book", url.Values{
		"doctor_id":        {"1"},
		"appointment_time": {"2024-06-01T10:00"},
	}, cookie)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/manage", w.Header().Get("Location"))
	require.Len(t, db.appointments, 1)
	assert.Equal(t, int64(1), db.appointments[0].UserID)

	// a later booking must come back first
	w = doForm(engine, http.MethodPost, "/book", url.Values{
		"doctor_id":        {"2"},
		"appointment_time": {"2024-06-02T09:00"},
	}, cookie)
	require.Equal(t, http.StatusFound, w.Code)

	w = doForm(engine, http.MethodGet, "/api/appointments", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var list []model.AppointmentDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Dr. Brown", list[0].DoctorName)
	assert.Equal(t, "Dr. Adams", list[1].DoctorName)
	assert.Equal(t, model.AppointmentStatusScheduled, list[0].Status)
}

func TestCancelIsScopedToOwner(t *testing.T) {
	engine, db := newTestRouter(t)

	register(t, engine, "Alice", "alice@x.com", "pw123")
	register(t, engine, "Bob", "bob@x.com", "pw456")

	aliceCookie := login(t, engine, "alice@x.com", "pw123")
	w := doForm(engine, http.MethodPost, "/book", url.Values{
		"doctor_id":        {"1"},
		"appointment_time": {"2024-06-01T10:00"},
	}, aliceCookie)
	require.Equal(t, http.StatusFound, w.Code)
	require.Len(t, db.appointments, 1)
	appointmentID := db.appointments[0].ID

	// Bob cannot remove Alice's appointment; he still gets the redirect
	// even though nothing was deleted.
	bobCookie := login(t, engine, "bob@x.com", "pw456")
	w = doForm(engine, http.MethodPost, "/manage/cancel", url.Values{
		"appointment_id": {formatID(appointmentID)},
	}, bobCookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Len(t, db.appointments, 1)

	w = doForm(engine, http.MethodPost, "/manage/cancel", url.Values{
		"appointment_id": {formatID(appointmentID)},
	}, aliceCookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Empty(t, db.appointments)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	engine, _ := newTestRouter(t)

	register(t, engine, "Alice", "alice@x.com", "pw123")
	cookie := login(t, engine, "alice@x.com", "pw123")

	w := doForm(engine, http.MethodGet, "/logout", nil, cookie)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))

	// the old cookie no longer opens protected routes
	w = doForm(engine, http.MethodGet, "/manage", nil, cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestForgedCookieIsAnonymous(t *testing.T) {
	engine, _ := newTestRouter(t)

	forged := &http.Cookie{Name: middleware.CookieName, Value: "some-id.bogus-signature"}
	w := doForm(engine, http.MethodGet, "/manage", nil, forged)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestListDoctors(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doForm(engine, http.MethodGet, "/api/doctors", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var doctors []model.Doctor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doctors))
	require.Len(t, doctors, 2)
	assert.Equal(t, "Cardiology", doctors[0].Specialty)
}

func TestHealthCheck(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doForm(engine, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
