package integration

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	fakeSigningKey  = "integration-test-secret"
	slotDurationMin = 20
)

type fakeUser struct {
	ID       string
	Email    string
	Name     string
	Phone    string
	Role     string
	Password string
}

// fakeBackend is an in-process stand-in for the care platform API. It speaks
// the same wire contract the client expects: bearer auth, {"detail": ...}
// error bodies, and the booked-slot conflict rule.
type fakeBackend struct {
	mu           sync.Mutex
	users        map[string]*fakeUser // by email
	doctors      []map[string]interface{}
	appointments []map[string]interface{}
	bloodRecords []map[string]interface{}
	medicines    []map[string]interface{}
	orders       []map[string]interface{}
	chatLog      []map[string]interface{}
	chatSessions map[string]bool
	chatDown     bool
}

func newFakeBackend() *fakeBackend {
	b := &fakeBackend{
		users:        map[string]*fakeUser{},
		chatSessions: map[string]bool{},
	}
	b.users["alice@example.com"] = &fakeUser{
		ID: uuid.NewString(), Email: "alice@example.com", Name: "Alice",
		Phone: "555-0100", Role: "user", Password: "pw-alice",
	}
	b.users["root@example.com"] = &fakeUser{
		ID: uuid.NewString(), Email: "root@example.com", Name: "Root",
		Phone: "555-0199", Role: "super_admin", Password: "pw-root",
	}
	b.doctors = []map[string]interface{}{
		{"id": uuid.NewString(), "name": "Dr. Rao", "specialization": "Cardiologist", "experience": "12", "fees": 150.0},
		{"id": uuid.NewString(), "name": "Dr. Iyer", "specialization": "Dermatologist", "experience": "7", "fees": 90.0},
	}
	b.medicines = []map[string]interface{}{
		{"id": "m1", "name": "Paracetamol", "price": 10.0, "stock": 100, "category": "Analgesic"},
		{"id": "m2", "name": "Ibuprofen", "price": 5.0, "stock": 50, "category": "Analgesic"},
	}
	return b
}

func detail(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"detail": msg})
}

func (b *fakeBackend) issueToken(u *fakeUser) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  u.Email,
		"role": u.Role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, _ := token.SignedString([]byte(fakeSigningKey))
	return signed
}

// currentUser resolves the bearer token, nil when missing or invalid.
func (b *fakeBackend) currentUser(c echo.Context) *fakeUser {
	header := c.Request().Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return nil
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(fakeSigningKey), nil
	})
	if err != nil {
		return nil
	}
	sub, _ := claims["sub"].(string)
	return b.users[sub]
}

func (b *fakeBackend) userJSON(u *fakeUser) map[string]interface{} {
	return map[string]interface{}{
		"id": u.ID, "email": u.Email, "name": u.Name, "phone": u.Phone, "role": u.Role,
	}
}

// requireAuth wraps a handler with the bearer check.
func (b *fakeBackend) requireAuth(next func(echo.Context, *fakeUser) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		u := b.currentUser(c)
		if u == nil {
			return detail(c, http.StatusUnauthorized, "Could not validate credentials")
		}
		return next(c, u)
	}
}

func (b *fakeBackend) requireAdmin(next func(echo.Context, *fakeUser) error) echo.HandlerFunc {
	return b.requireAuth(func(c echo.Context, u *fakeUser) error {
		if u.Role != "admin" && u.Role != "super_admin" {
			return detail(c, http.StatusForbidden, "Admin access required")
		}
		return next(c, u)
	})
}

func (b *fakeBackend) handler() http.Handler {
	e := echo.New()
	e.HideBanner = true

	e.POST("/auth/login", func(c echo.Context) error {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.Bind(&req); err != nil {
			return detail(c, http.StatusBadRequest, "Invalid request")
		}
		b.mu.Lock()
		u := b.users[req.Email]
		b.mu.Unlock()
		if u == nil || u.Password != req.Password {
			return detail(c, http.StatusUnauthorized, "Invalid credentials")
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"access_token": b.issueToken(u),
			"token_type":   "bearer",
			"user":         b.userJSON(u),
		})
	})

	e.POST("/auth/register", func(c echo.Context) error {
		var req struct {
			Email    string `json:"email"`
			Name     string `json:"name"`
			Phone    string `json:"phone"`
			Password string `json:"password"`
		}
		if err := c.Bind(&req); err != nil {
			return detail(c, http.StatusBadRequest, "Invalid request")
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, exists := b.users[req.Email]; exists {
			return detail(c, http.StatusBadRequest, "Email already registered")
		}
		u := &fakeUser{
			ID: uuid.NewString(), Email: req.Email, Name: req.Name,
			Phone: req.Phone, Role: "user", Password: req.Password,
		}
		b.users[req.Email] = u
		return c.JSON(http.StatusOK, map[string]interface{}{
			"access_token": b.issueToken(u),
			"token_type":   "bearer",
			"user":         b.userJSON(u),
		})
	})

	e.GET("/auth/me", b.requireAuth(func(c echo.Context, u *fakeUser) error {
		return c.JSON(http.StatusOK, b.userJSON(u))
	}))

	e.GET("/doctors", b.requireAuth(func(c echo.Context, u *fakeUser) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		return c.JSON(http.StatusOK, b.doctors)
	}))

	e.GET("/appointments", b.requireAuth(func(c echo.Context, u *fakeUser) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		out := []map[string]interface{}{}
		for _, a := range b.appointments {
			if u.Role != "user" || a["user_id"] == u.ID {
				out = append(out, a)
			}
		}
		return c.JSON(http.StatusOK, out)
	}))

	e.POST("/appointments", b.requireAuth(func(c echo.Context, u *fakeUser) error {
		var req map[string]interface{}
		if err := c.Bind(&req); err != nil {
			return detail(c, http.StatusBadRequest, "Invalid request")
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		doctor, _ := req["doctor_name"].(string)
		date, _ := req["appointment_date"].(string)
		when, _ := req["appointment_time"].(string)
		for _, a := range b.appointments {
			if a["doctor_name"] == doctor && a["appointment_date"] == date &&
				a["status"] != "cancelled" && clockConflict(a["appointment_time"].(string), when) {
				return detail(c, http.StatusBadRequest,
					"This time slot is not available. The doctor needs at least 20 minutes per patient. Please choose a different time.")
			}
		}
		appt := map[string]interface{}{
			"id": uuid.NewString(), "user_id": u.ID,
			"patient_name": req["patient_name"], "patient_email": req["patient_email"],
			"patient_phone": req["patient_phone"], "doctor_name": doctor,
			"appointment_date": date, "appointment_time": when,
			"reason": req["reason"], "status": "pending",
		}
		b.appointments = append(b.appointments, appt)
		return c.JSON(http.StatusOK, appt)
	}))

	e.GET("/appointments/booked-slots", b.requireAuth(func(c echo.Context, u *fakeUser) error {
		doctor := c.QueryParam("doctor_name")
		date := c.QueryParam("appointment_date")
		b.mu.Lock()
		defer b.mu.Unlock()
		times := []string{}
		for _, a := range b.appointments {
			if a["doctor_name"] == doctor && a["appointment_date"] == date && a["status"] != "cancelled" {
				times = append(times, a["appointment_time"].(string))
			}
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"booked_times": times, "duration_minutes": slotDurationMin,
		})
	}))

	e.PATCH("/appointments/:id", b.requireAdmin(func(c echo.Context, u *fakeUser) error {
		var req map[string]interface{}
		if err := c.Bind(&req); err != nil {
			return detail(c, http.StatusBadRequest, "Invalid request")
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		for _, a := range b.appointments {
			if a["id"] == c.Param("id") {
				if s, ok := req["status"].(string); ok {
					a["status"] = s
				}
				return c.JSON(http.StatusOK, a)
			}
		}
		return detail(c, http.StatusNotFound, "Appointment not found")
	}))

	e.GET("/blood-bank", b.requireAuth(func(c echo.Context, u *fakeUser) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		return c.JSON(http.StatusOK, b.bloodRecords)
	}))

	e.POST("/blood-bank", b.requireAdmin(func(c echo.Context, u *fakeUser) error {
		var req map[string]interface{}
		if err := c.Bind(&req); err != nil {
			return detail(c, http.StatusBadRequest, "Invalid request")
		}
		req["id"] = uuid.NewString()
		b.mu.Lock()
		defer b.mu.Unlock()
		b.bloodRecords = append(b.bloodRecords, req)
		return c.JSON(http.StatusOK, req)
	}))

	e.PATCH("/blood-bank/:id", b.requireAdmin(func(c echo.Context, u *fakeUser) error {
		var req map[string]interface{}
		if err := c.Bind(&req); err != nil {
			return detail(c, http.StatusBadRequest, "Invalid request")
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		for _, r := range b.bloodRecords {
			if r["id"] == c.Param("id") {
				// Bind also captures the :id path param; copy only the
				// patchable fields.
				for _, k := range []string{"units_available", "contact", "address"} {
					if v, ok := req[k]; ok {
						r[k] = v
					}
				}
				return c.JSON(http.StatusOK, r)
			}
		}
		return detail(c, http.StatusNotFound, "Record not found")
	}))

	e.GET("/medicines", b.requireAuth(func(c echo.Context, u *fakeUser) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		return c.JSON(http.StatusOK, b.medicines)
	}))

	e.GET("/orders", b.requireAuth(func(c echo.Context, u *fakeUser) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		out := []map[string]interface{}{}
		for _, o := range b.orders {
			if u.Role != "user" || o["user_id"] == u.ID {
				out = append(out, o)
			}
		}
		return c.JSON(http.StatusOK, out)
	}))

	e.POST("/orders", b.requireAuth(func(c echo.Context, u *fakeUser) error {
		var req map[string]interface{}
		if err := c.Bind(&req); err != nil {
			return detail(c, http.StatusBadRequest, "Invalid request")
		}
		order := map[string]interface{}{
			"id": uuid.NewString(), "user_id": u.ID, "user_name": u.Name,
			"items": req["items"], "total_amount": req["total_amount"],
			"status": "pending",
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		b.orders = append(b.orders, order)
		return c.JSON(http.StatusOK, order)
	}))

	e.POST("/chat/message", b.requireAuth(func(c echo.Context, u *fakeUser) error {
		var req struct {
			Message   string `json:"message"`
			Image     string `json:"image"`
			SessionID string `json:"session_id"`
		}
		if err := c.Bind(&req); err != nil {
			return detail(c, http.StatusBadRequest, "Invalid request")
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.chatDown {
			return detail(c, http.StatusServiceUnavailable, "AI service unavailable")
		}
		sid := req.SessionID
		if sid == "" {
			sid = uuid.NewString()
		}
		b.chatSessions[sid] = true
		b.chatLog = append(b.chatLog,
			map[string]interface{}{"role": "user", "content": req.Message},
			map[string]interface{}{"role": "assistant", "content": "Echo: " + req.Message},
		)
		return c.JSON(http.StatusOK, map[string]string{
			"response": "Echo: " + req.Message, "session_id": sid,
		})
	}))

	e.GET("/chat/history", b.requireAuth(func(c echo.Context, u *fakeUser) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		return c.JSON(http.StatusOK, b.chatLog)
	}))

	e.GET("/admin/list", b.requireAdmin(func(c echo.Context, u *fakeUser) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		out := []map[string]interface{}{}
		for _, usr := range b.users {
			if usr.Role == "admin" || usr.Role == "super_admin" {
				out = append(out, b.userJSON(usr))
			}
		}
		return c.JSON(http.StatusOK, out)
	}))

	e.POST("/admin/create", b.requireAuth(func(c echo.Context, u *fakeUser) error {
		if u.Role != "super_admin" {
			return detail(c, http.StatusForbidden, "Super admin access required")
		}
		var req struct {
			Email    string `json:"email"`
			Name     string `json:"name"`
			Phone    string `json:"phone"`
			Password string `json:"password"`
		}
		if err := c.Bind(&req); err != nil {
			return detail(c, http.StatusBadRequest, "Invalid request")
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, exists := b.users[req.Email]; exists {
			return detail(c, http.StatusBadRequest, "Email already registered")
		}
		nu := &fakeUser{
			ID: uuid.NewString(), Email: req.Email, Name: req.Name,
			Phone: req.Phone, Role: "admin", Password: req.Password,
		}
		b.users[req.Email] = nu
		return c.JSON(http.StatusOK, b.userJSON(nu))
	}))

	return e
}

// clockConflict mirrors the backend rule: two same-duration slots conflict
// when their starts are closer than one window.
func clockConflict(a, b string) bool {
	am := clockMinutes(a)
	bm := clockMinutes(b)
	if am < 0 || bm < 0 {
		return false
	}
	diff := am - bm
	if diff < 0 {
		diff = -diff
	}
	return diff < slotDurationMin
}

func clockMinutes(s string) int {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return -1
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return -1
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return -1
	}
	return h*60 + m
}
