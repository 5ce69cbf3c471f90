// Package fakebackend serves an in-memory imitation of the clinic REST API.
// It backs the integration tests and cmd/clinic-mock.
package fakebackend

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/wolfman30/dental-clinic-client/internal/clinic"
	"github.com/wolfman30/dental-clinic-client/internal/http/middleware"
	"github.com/wolfman30/dental-clinic-client/internal/observability/metrics"
	"github.com/wolfman30/dental-clinic-client/pkg/logging"
)

// DefaultGoogleAuthURL is where /auth/google redirects when no URL is configured.
const DefaultGoogleAuthURL = "https://accounts.google.com/o/oauth2/v2/auth?client_id=clinic-mock&response_type=code&scope=openid%20email%20profile"

// Options configures a Backend.
type Options struct {
	// Secret signs session tokens. Required.
	Secret   string
	TokenTTL time.Duration
	// Seed loads demo users, patients, appointments and stock.
	Seed bool
	// Now anchors seeded dates. Session tokens always use the wall clock.
	Now func() time.Time
	// HashCost is the bcrypt cost for stored passwords.
	HashCost int

	Logger             *logging.Logger
	Metrics            *metrics.BackendMetrics
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
	// AuthRateLimitRPS throttles signup, login and password reset per client
	// IP; zero disables it.
	AuthRateLimitRPS float64
	AuthRateBurst    int
	GoogleAuthURL    string
}

type account struct {
	clinic.User
	PasswordHash string `json:"-"`
}

type resetToken struct {
	userID  clinic.ID
	expires time.Time
}

// Backend holds all state. Every table is guarded by mu.
type Backend struct {
	opts   Options
	logger *logging.Logger

	mu             sync.RWMutex
	lastID         int64
	accounts       *table[account]
	doctors        *table[clinic.Doctor]
	patients       *table[clinic.Patient]
	apptTypes      *table[clinic.AppointmentType]
	appointments   *table[clinic.Appointment]
	actions        *table[clinic.Action]
	payments       *table[clinic.Payment]
	categories     *table[clinic.Category]
	units          *table[clinic.Unit]
	inventory      *table[clinic.InventoryItem]
	taskStatuses   *table[clinic.TaskStatus]
	taskPriorities *table[clinic.TaskPriority]
	tasks          *table[clinic.Task]
	resets         map[string]resetToken
}

// New builds a backend. Seeding failures only happen when hashing fails and
// are returned.
func New(opts Options) (*Backend, error) {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 12 * time.Hour
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.HashCost == 0 {
		opts.HashCost = bcrypt.DefaultCost
	}
	if opts.GoogleAuthURL == "" {
		opts.GoogleAuthURL = DefaultGoogleAuthURL
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	b := &Backend{
		opts:           opts,
		logger:         logger,
		accounts:       newTable("User", func(a *account) *clinic.ID { return &a.ID }),
		doctors:        newTable("Doctor", func(d *clinic.Doctor) *clinic.ID { return &d.ID }),
		patients:       newTable("Patient", func(p *clinic.Patient) *clinic.ID { return &p.ID }),
		apptTypes:      newTable("Appointment type", func(t *clinic.AppointmentType) *clinic.ID { return &t.ID }),
		appointments:   newTable("Appointment", func(a *clinic.Appointment) *clinic.ID { return &a.ID }),
		actions:        newTable("Action", func(a *clinic.Action) *clinic.ID { return &a.ID }),
		payments:       newTable("Payment", func(p *clinic.Payment) *clinic.ID { return &p.ID }),
		categories:     newTable("Category", func(c *clinic.Category) *clinic.ID { return &c.ID }),
		units:          newTable("Unit", func(u *clinic.Unit) *clinic.ID { return &u.ID }),
		inventory:      newTable("Inventory item", func(i *clinic.InventoryItem) *clinic.ID { return &i.ID }),
		taskStatuses:   newTable("Task status", func(s *clinic.TaskStatus) *clinic.ID { return &s.ID }),
		taskPriorities: newTable("Task priority", func(p *clinic.TaskPriority) *clinic.ID { return &p.ID }),
		tasks:          newTable("Task", func(t *clinic.Task) *clinic.ID { return &t.ID }),
		resets:         make(map[string]resetToken),
	}
	if opts.Seed {
		if err := b.seed(); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// newID allocates the next numeric id. Callers hold mu.
func (b *Backend) newID() clinic.ID {
	b.lastID++
	return clinic.IDFromInt(b.lastID)
}

func (b *Backend) today() string {
	return b.opts.Now().Format(clinic.DateLayout)
}

// Handler returns the routed API.
func (b *Backend) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if len(b.opts.CORSAllowedOrigins) > 0 {
		r.Use(middleware.CORS(b.opts.CORSAllowedOrigins))
	}
	r.Use(middleware.RequestLogger(b.logger, b.opts.Metrics))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		if b.opts.MetricsHandler != nil {
			public.Handle("/metrics", b.opts.MetricsHandler)
		}
		public.Get(clinic.GoogleAuthPath, b.googleStart)

		public.Group(func(limited chi.Router) {
			if b.opts.AuthRateLimitRPS > 0 {
				limited.Use(middleware.RateLimit(middleware.NewRateLimiter(b.opts.AuthRateLimitRPS, b.opts.AuthRateBurst)))
			}
			limited.Post("/auth/signup", b.signup)
			limited.Post("/auth/login", b.login)
			limited.Post("/auth/forgot-password", b.forgotPassword)
			limited.Post("/auth/reset-password", b.resetPassword)
		})
	})

	// Everything else needs a session
	r.Group(func(private chi.Router) {
		private.Use(middleware.SessionJWT(b.opts.Secret))

		private.Post("/auth/logout", b.logout)
		private.Get("/auth/me", b.me)
		private.Put("/auth/complete-profile", b.completeProfile)

		b.mountPeople(private)
		b.mountScheduling(private)
		b.mountBilling(private)
		b.mountInventory(private)
		b.mountTasks(private)

		private.Route("/admin", func(admin chi.Router) {
			admin.Use(middleware.RequireRole(clinic.RoleAdmin))
			b.mountAdmin(admin)
		})
	})

	return r
}
