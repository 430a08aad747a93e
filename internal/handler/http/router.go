package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/hrms-backend-go/internal/config"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Payroll    PayrollHandler
	Leave      LeaveHandler
}

func NewRouter(cfg *config.Config, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-cmlabs"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)
		r.Use(middleware.AdminOnly)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.Employee.List)
			r.Post("/", h.Employee.Create)
			r.Get("/{id}", h.Employee.Get)
			r.Put("/{id}", h.Employee.Update)
			r.Delete("/{id}", h.Employee.Delete)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", h.Attendance.List)
			r.Get("/full", h.Attendance.Roster)
			r.Post("/", h.Attendance.Mark)
			r.Post("/bulk", h.Attendance.BulkMark)
			r.Get("/stats", h.Attendance.Stats)
			r.Delete("/{id}", h.Attendance.Delete)
		})

		r.Route("/payroll-settings/{employeeId}", func(r chi.Router) {
			r.Get("/", h.Payroll.GetSettings)
			r.Put("/", h.Payroll.UpdateSettings)
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Post("/calculate", h.Payroll.Calculate)
			r.Post("/process", h.Payroll.Process)
			r.Get("/", h.Payroll.List)
			r.Get("/stats", h.Payroll.Stats)
			r.Get("/export", h.Payroll.Export)
			r.Get("/{id}", h.Payroll.Get)
			r.Put("/{id}/status", h.Payroll.UpdateStatus)
			r.Delete("/{id}", h.Payroll.Delete)
		})

		r.Route("/leave-requests", func(r chi.Router) {
			r.Get("/", h.Leave.ListRequests)
			r.Post("/", h.Leave.CreateRequest)
			r.Get("/stats", h.Leave.Stats)
			r.Get("/{id}", h.Leave.GetRequest)
			r.Put("/{id}/status", h.Leave.ReviewRequest)
			r.Delete("/{id}", h.Leave.DeleteRequest)
		})

		r.Get("/leave-balances/{employeeId}", h.Leave.GetBalances)
	})
	return r
}
