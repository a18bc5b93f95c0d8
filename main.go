package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"

	"taskdeck/internal/auth"
	"taskdeck/internal/config"
	"taskdeck/internal/handler"
	"taskdeck/internal/repository"
	"taskdeck/internal/suggest"
)

func setupSlog() {
	//Json handler that writes to standard out
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug, //log debug and above
	})

	logger := slog.New(h)
	slog.SetDefault(logger)
}

func loggerMW(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		//logging completion of a request
		slog.Info("http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"ip", r.RemoteAddr,
			"duration", time.Since(start).String(),
		)
	})
}

/*
gothic keeps a temp cookie during the oauth dance and compares it when the
user comes back, so the login can only be completed from this app.
Protection from cross site request forgery.
*/
func setupGothic(cfg config.Config) {
	goth.UseProviders(
		google.New(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.CallbackURL, "email", "profile"),
	)

	maxAge := 86400 * 30 //30 days
	isProd := false      //set to true for https

	store := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	store.MaxAge(maxAge)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = isProd

	gothic.Store = store
}

func routing(h *handler.Handler, gate *auth.Gate) http.Handler {
	r := chi.NewRouter()
	r.Use(loggerMW)
	//the gate classifies every path and redirects before anything renders
	r.Use(gate.Middleware)

	//redirect any root hit toward the dashboard; the gate takes it from there
	r.Get("/", handler.DashboardRedirect)

	//auth-only pages: the gate sends visitors with a valid session away
	r.Get("/login", h.LoginPage)
	r.Post("/login", h.LoginSubmit)
	r.Get("/signup", h.SignupPage)
	r.Post("/signup", h.SignupSubmit)

	r.Get("/auth/google", handler.BeginGoogleAuth)
	r.Get("/auth/google/callback", h.GoogleCallback)
	r.Post("/logout", h.Logout)

	//everything under /dashboard, /profile and /admin is protected
	r.Get("/dashboard", h.Dashboard)
	r.Get("/dashboard/tasks/new", h.NewTaskForm)
	r.Post("/dashboard/tasks", h.CreateTask)
	r.Get("/dashboard/tasks/{id}/edit", h.EditTaskForm)
	r.Post("/dashboard/tasks/{id}", h.UpdateTask)
	r.Post("/dashboard/tasks/{id}/delete", h.DeleteTask)
	r.Post("/dashboard/suggest-titles", h.SuggestTitles)

	r.Get("/profile", h.ProfilePage)
	r.Post("/profile", h.ProfileSubmit)

	r.Get("/admin", h.AdminPage)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	return r
}

func startServer(addr string, mux http.Handler) {
	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		slog.Info("server_start", "addr", addr)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server_start_failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("server_shutting_down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server_shutdown_failed", "error", err)
	}
}

func main() {

	//structured logging
	setupSlog()

	//load env variables; a missing .env just means the real environment is used
	if err := godotenv.Load(); err != nil {
		slog.Debug("dotenv_not_loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_load_failed", "error", err)
		os.Exit(1)
	}

	db, err := repository.InitDB(cfg.DatabaseURL)
	if err != nil {
		slog.Error("database_initialization_failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database_initialization_success")

	taskRepo, err := repository.NewTaskRepo(db)
	if err != nil {
		slog.Error("repository_creation_failed", "error", err)
		os.Exit(1)
	}
	userRepo, err := repository.NewUserRepo(db)
	if err != nil {
		slog.Error("repository_creation_failed", "error", err)
		os.Exit(1)
	}

	tokens := auth.NewTokenManager(cfg.Session)
	gate := auth.NewGate(tokens)
	suggester := suggest.NewClient(cfg.Suggest)
	h := handler.New(taskRepo, userRepo, suggester, tokens, cfg.TemplatesDir)

	//authentication provider
	setupGothic(cfg)

	startServer(cfg.Addr, routing(h, gate))
}
