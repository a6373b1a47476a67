package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stemsi/coursehub-backend/internal/config"
	"github.com/stemsi/coursehub-backend/internal/handler"
	"github.com/stemsi/coursehub-backend/internal/middleware"
	"github.com/stemsi/coursehub-backend/internal/model"
	"github.com/stemsi/coursehub-backend/internal/payment"
	"github.com/stemsi/coursehub-backend/internal/repository"
	"github.com/stemsi/coursehub-backend/internal/router"
	"github.com/stemsi/coursehub-backend/internal/service"
	"github.com/stemsi/coursehub-backend/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "email", "name", "photo_url", "role", "created_at", "updated_at"}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validator.Setup()
	os.Exit(m.Run())
}

type fakeGateway struct {
	requests []payment.IntentRequest
	err      error
}

func (g *fakeGateway) CreateIntent(_ context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	return &payment.Intent{ID: "pi_test", ClientSecret: "pi_test_secret", Amount: req.Amount, Currency: req.Currency}, nil
}

type testEnv struct {
	router  *gin.Engine
	db      pgxmock.PgxPoolIface
	gateway *fakeGateway
	auth    *service.AuthService
}

func newTestEnv(t *testing.T, ratePerMinute int) *testEnv {
	t.Helper()

	db, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(db.Close)

	cfg := &config.Config{
		GinMode:         gin.TestMode,
		JWTSecret:       "test-secret",
		JWTExpiry:       time.Hour,
		PaymentCurrency: "usd",
		BrotliMinLength: 1024,
	}
	log := zerolog.Nop()
	gw := &fakeGateway{}

	authService := service.NewAuthService(cfg)
	userService := service.NewUserService(repository.NewUserRepository(db))
	classService := service.NewClassService(repository.NewClassRepository(db))
	cartService := service.NewCartService(repository.NewCartRepository(db))
	paymentService := service.NewPaymentService(repository.NewPaymentRepository(db), gw, cfg.PaymentCurrency, log)
	feedbackService := service.NewFeedbackService(repository.NewFeedbackRepository(db))

	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService, log),
		User:     handler.NewUserHandler(userService, log),
		Class:    handler.NewClassHandler(classService, log),
		Cart:     handler.NewCartHandler(cartService, log),
		Payment:  handler.NewPaymentHandler(paymentService, log),
		Feedback: handler.NewFeedbackHandler(feedbackService, log),
		System:   handler.NewSystemHandler(db, nil, log),
	}

	r := router.SetupRouter(router.Guards{
		Auth:    authService,
		Roles:   userService,
		Limiter: middleware.NewMemoryLimiter(ratePerMinute, time.Minute),
	}, handlers, cfg, log)

	return &testEnv{router: r, db: db, gateway: gw, auth: authService}
}

func (e *testEnv) token(t *testing.T, email string) string {
	t.Helper()
	tok, err := e.auth.IssueToken(service.TokenIdentity{Email: email})
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) expectUser(email string, role model.Role) {
	now := time.Now()
	e.db.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
		WithArgs(email).
		WillReturnRows(e.db.NewRows(userCols).AddRow(uuid.New(), email, "", "", role, now, now))
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestRootAndHealth(t *testing.T) {
	env := newTestEnv(t, 30)

	w := env.do(http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Course Enrollment Server Is Running", w.Body.String())

	env.db.ExpectPing()
	w = env.do(http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestIssueToken(t *testing.T) {
	t.Run("Should return a plain-text token usable on protected routes", func(t *testing.T) {
		env := newTestEnv(t, 30)

		w := env.do(http.MethodPost, "/jwt", map[string]string{"email": "a@x.com", "name": "Ann"}, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

		claims, err := env.auth.ValidateToken(w.Body.String())
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", claims.Email)
	})

	t.Run("Should validate the identity payload", func(t *testing.T) {
		env := newTestEnv(t, 30)

		w := env.do(http.MethodPost, "/jwt", map[string]string{"name": "Ann"}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, "VALIDATION_ERROR", body["code"])
		assert.Contains(t, body["fields"], "email")
	})

	t.Run("Should rate limit per client", func(t *testing.T) {
		env := newTestEnv(t, 1)

		assert.Equal(t, http.StatusOK, env.do(http.MethodPost, "/jwt", map[string]string{"email": "a@x.com"}, "").Code)
		w := env.do(http.MethodPost, "/jwt", map[string]string{"email": "a@x.com"}, "")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "RATE_LIMIT_EXCEEDED", decode(t, w)["code"])
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t, 30)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/users"},
		{http.MethodGet, "/users/admin/a@x.com"},
		{http.MethodGet, "/users/instructor/a@x.com"},
		{http.MethodPatch, "/users/admin/" + uuid.NewString()},
		{http.MethodGet, "/admin/classes"},
		{http.MethodPatch, "/classes/admin/" + uuid.NewString()},
		{http.MethodPatch, "/classe/admin/" + uuid.NewString()},
		{http.MethodGet, "/classes/instructor/a@x.com"},
		{http.MethodPost, "/create-payment-intent"},
		{http.MethodPost, "/payments"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := env.do(rt.method, rt.path, nil, "")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			body := decode(t, w)
			assert.Equal(t, true, body["error"])
			assert.Equal(t, "unauthorized access", body["message"])

			w = env.do(rt.method, rt.path, nil, "not.a.token")
			assert.Equal(t, http.StatusForbidden, w.Code)
		})
	}
	assert.NoError(t, env.db.ExpectationsWereMet())
}

func TestRoleChecks(t *testing.T) {
	t.Run("Should answer for the caller", func(t *testing.T) {
		env := newTestEnv(t, 30)
		env.expectUser("boss@x.com", model.RoleAdmin)

		w := env.do(http.MethodGet, "/users/admin/boss@x.com", nil, env.token(t, "boss@x.com"))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]any{"admin": true}, decode(t, w))
		assert.NoError(t, env.db.ExpectationsWereMet())
	})

	t.Run("Should reject questions about someone else without touching storage", func(t *testing.T) {
		env := newTestEnv(t, 30)

		w := env.do(http.MethodGet, "/users/instructor/other@x.com", nil, env.token(t, "me@x.com"))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "FORBIDDEN", decode(t, w)["code"])
		assert.NoError(t, env.db.ExpectationsWereMet())
	})

	t.Run("Should keep non-admins out of admin routes", func(t *testing.T) {
		env := newTestEnv(t, 30)
		env.expectUser("kid@x.com", model.RoleStudent)

		w := env.do(http.MethodGet, "/users", nil, env.token(t, "kid@x.com"))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "ADMIN_ACCESS_ONLY", decode(t, w)["code"])
		assert.NoError(t, env.db.ExpectationsWereMet())
	})
}

func TestCreateUserTwice(t *testing.T) {
	env := newTestEnv(t, 30)
	id := uuid.New()
	now := time.Now()

	env.db.ExpectQuery("INSERT INTO users").
		WithArgs("a@x.com", "", "").
		WillReturnRows(env.db.NewRows([]string{"id", "role", "created_at", "updated_at"}).
			AddRow(id, model.RoleStudent, now, now))
	env.db.ExpectQuery("INSERT INTO users").
		WithArgs("a@x.com", "", "").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	w := env.do(http.MethodPost, "/users", map[string]string{"email": "a@x.com", "role": "admin"}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	first := decode(t, w)
	assert.Equal(t, id.String(), first["insertedId"])
	assert.Equal(t, true, first["acknowledged"])

	w = env.do(http.MethodPost, "/users", map[string]string{"email": "A@x.com"}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "user already exist", decode(t, w)["message"])
	assert.NoError(t, env.db.ExpectationsWereMet())
}

func TestAddCartItemDuplicate(t *testing.T) {
	env := newTestEnv(t, 30)
	itemID := uuid.New()
	classID := uuid.New()

	env.db.ExpectQuery("INSERT INTO selected_classes").
		WithArgs(itemID, classID, "s@x.com", "Go 101", "", "", 49.99, 3).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	w := env.do(http.MethodPost, "/new-selected-class", map[string]any{
		"_id":      itemID,
		"class_id": classID,
		"my_email": "s@x.com",
		"name":     "Go 101",
		"price":    49.99,
		"seats":    3,
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "CART_ITEM_EXISTS", body["code"])
	assert.Equal(t, "Data already exists", body["message"])
	assert.NoError(t, env.db.ExpectationsWereMet())
}

func TestNumericBounds(t *testing.T) {
	validClass := func(overrides map[string]any) map[string]any {
		body := map[string]any{
			"name":            "Go 101",
			"instructor_name": "Ina",
			"email":           "i@x.com",
			"seats":           10,
			"price":           49.99,
		}
		for k, v := range overrides {
			body[k] = v
		}
		return body
	}

	cases := []struct {
		name  string
		path  string
		body  map[string]any
		field string
	}{
		{"class price above the column size", "/classes", validClass(map[string]any{"price": 1e9}), "price"},
		{"class seats above INT", "/classes", validClass(map[string]any{"seats": int64(3000000000)}), "seats"},
		{"cart seats above INT", "/new-selected-class", map[string]any{
			"class_id": uuid.New(),
			"my_email": "s@x.com",
			"seats":    int64(3000000000),
		}, "seats"},
	}
	for _, tc := range cases {
		t.Run("Should reject "+tc.name+" before touching storage", func(t *testing.T) {
			env := newTestEnv(t, 30)

			w := env.do(http.MethodPost, tc.path, tc.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			body := decode(t, w)
			assert.Equal(t, "VALIDATION_ERROR", body["code"])
			require.IsType(t, map[string]any{}, body["fields"])
			assert.Contains(t, body["fields"], tc.field)
			assert.NoError(t, env.db.ExpectationsWereMet())
		})
	}

	t.Run("Should report a numeric overflow from storage as a validation error", func(t *testing.T) {
		env := newTestEnv(t, 30)
		env.db.ExpectQuery("INSERT INTO classes").
			WillReturnError(&pgconn.PgError{Code: "22003"})

		w := env.do(http.MethodPost, "/classes", validClass(nil), "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, "VALIDATION_ERROR", body["code"])
		assert.NotEmpty(t, body["fields"])
		assert.NoError(t, env.db.ExpectationsWereMet())
	})
}

func TestReserveSeatUntilFull(t *testing.T) {
	env := newTestEnv(t, 30)
	id := uuid.New()

	reserve := `(?s)UPDATE classes\s+SET seats = seats - 1, selected = TRUE.+WHERE id = \$1 AND seats > 0`
	env.db.ExpectExec(reserve).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	env.db.ExpectExec(reserve).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	env.db.ExpectQuery("SELECT EXISTS").
		WithArgs(id).
		WillReturnRows(env.db.NewRows([]string{"exists"}).AddRow(true))

	w := env.do(http.MethodPatch, "/select-course/"+id.String(), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["modifiedCount"])

	w = env.do(http.MethodPatch, "/select-course/"+id.String(), nil, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "NO_SEATS_LEFT", decode(t, w)["code"])
	assert.NoError(t, env.db.ExpectationsWereMet())
}

func TestReserveSeatInvalidID(t *testing.T) {
	env := newTestEnv(t, 30)

	w := env.do(http.MethodPatch, "/select-course/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decode(t, w)["code"])
}

func TestApproveThenDeny(t *testing.T) {
	env := newTestEnv(t, 30)
	id := uuid.New()
	token := env.token(t, "boss@x.com")

	env.expectUser("boss@x.com", model.RoleAdmin)
	env.db.ExpectExec("UPDATE classes SET status = \\$1").
		WithArgs(model.ClassStatusApproved, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	env.expectUser("boss@x.com", model.RoleAdmin)
	env.db.ExpectExec("UPDATE classes SET status = \\$1").
		WithArgs(model.ClassStatusDenied, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.Equal(t, http.StatusOK, env.do(http.MethodPatch, "/classes/admin/"+id.String(), nil, token).Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodPatch, "/classe/admin/"+id.String(), nil, token).Code)
	assert.NoError(t, env.db.ExpectationsWereMet())
}

func TestCreatePaymentIntent(t *testing.T) {
	t.Run("Should convert the price to minor units", func(t *testing.T) {
		env := newTestEnv(t, 30)

		w := env.do(http.MethodPost, "/create-payment-intent", map[string]any{"price": 49.99}, env.token(t, "s@x.com"))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pi_test_secret", decode(t, w)["clientSecret"])
		require.Len(t, env.gateway.requests, 1)
		assert.Equal(t, int64(4999), env.gateway.requests[0].Amount)
		assert.Equal(t, "usd", env.gateway.requests[0].Currency)
	})

	t.Run("Should reject a non-positive price", func(t *testing.T) {
		env := newTestEnv(t, 30)

		w := env.do(http.MethodPost, "/create-payment-intent", map[string]any{"price": -5}, env.token(t, "s@x.com"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, env.gateway.requests)
	})

	t.Run("Should report gateway failures as 502", func(t *testing.T) {
		env := newTestEnv(t, 30)
		env.gateway.err = payment.ErrGateway

		w := env.do(http.MethodPost, "/create-payment-intent", map[string]any{"price": 10}, env.token(t, "s@x.com"))
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "PAYMENT_GATEWAY_ERROR", decode(t, w)["code"])
	})
}

func TestRecordPayment(t *testing.T) {
	t.Run("Should not touch a cart item owned by someone else", func(t *testing.T) {
		env := newTestEnv(t, 30)
		cartID := uuid.New()

		env.db.ExpectBegin()
		env.db.ExpectExec("DELETE FROM selected_classes WHERE id = \\$1 AND owner_email = \\$2").
			WithArgs(cartID, "me@x.com").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		env.db.ExpectRollback()

		w := env.do(http.MethodPost, "/payments", map[string]any{
			"email":          "me@x.com",
			"transaction_id": "pi_1",
			"price":          49.99,
			"product_id":     cartID,
		}, env.token(t, "me@x.com"))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.NoError(t, env.db.ExpectationsWereMet())
	})

	t.Run("Should refuse a body email other than the caller", func(t *testing.T) {
		env := newTestEnv(t, 30)

		w := env.do(http.MethodPost, "/payments", map[string]any{
			"email":          "victim@x.com",
			"transaction_id": "pi_1",
			"product_id":     uuid.New(),
		}, env.token(t, "me@x.com"))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.NoError(t, env.db.ExpectationsWereMet())
	})

	t.Run("Should return both results on success", func(t *testing.T) {
		env := newTestEnv(t, 30)
		cartID := uuid.New()
		paymentID := uuid.New()

		env.db.ExpectBegin()
		env.db.ExpectExec("DELETE FROM selected_classes").
			WithArgs(cartID, "me@x.com").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		env.db.ExpectQuery("INSERT INTO payments").
			WithArgs("me@x.com", "pi_1", 49.99, "usd", (*uuid.UUID)(nil), cartID, "Go 101").
			WillReturnRows(env.db.NewRows([]string{"id", "created_at"}).AddRow(paymentID, time.Now()))
		env.db.ExpectCommit()

		w := env.do(http.MethodPost, "/payments", map[string]any{
			"email":          "me@x.com",
			"transaction_id": "pi_1",
			"price":          49.99,
			"product_id":     cartID,
			"class_name":     "Go 101",
		}, env.token(t, "me@x.com"))
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.Equal(t, paymentID.String(), body["result"].(map[string]any)["insertedId"])
		assert.Equal(t, float64(1), body["deleteResult"].(map[string]any)["deletedCount"])
		assert.NoError(t, env.db.ExpectationsWereMet())
	})
}

func TestListPaymentsRequiresEmail(t *testing.T) {
	env := newTestEnv(t, 30)

	w := env.do(http.MethodGet, "/payments", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["fields"], "email")
}

func TestCurrentUserNotFound(t *testing.T) {
	env := newTestEnv(t, 30)
	env.db.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
		WithArgs("ghost@x.com").
		WillReturnRows(env.db.NewRows(userCols))

	w := env.do(http.MethodGet, "/current-user/ghost@x.com", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, w)["code"])
}

func TestSubmitFeedback(t *testing.T) {
	env := newTestEnv(t, 30)
	classID := uuid.New()

	env.db.ExpectQuery("INSERT INTO feedback").
		WithArgs(&classID, "boss@x.com", "Needs a syllabus").
		WillReturnRows(env.db.NewRows([]string{"id", "created_at"}).AddRow(uuid.New(), time.Now()))

	w := env.do(http.MethodPost, "/admin/feedback", map[string]any{
		"class_id": classID,
		"email":    "boss@x.com",
		"message":  "Needs a syllabus",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, decode(t, w)["acknowledged"])
	assert.NoError(t, env.db.ExpectationsWereMet())
}
