// internal/wire/wire.go
package wire

import (
	"net/http"

	"tour-booking/internal/adaptor"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/mailer"
	"tour-booking/internal/payment"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/middleware"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies.
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and the router.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	loader *payment.Loader,
	orders payment.OrderService,
	mail mailer.Mailer,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, orders, mail, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, loader, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router.
func setupRouter(
	handler *adaptor.Handler,
	loader *payment.Loader,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.AllowedOrigins))

	// Apply routes
	wireTour(r, handler.Tour)
	wireWizard(r, handler.Wizard)
	wireBooking(r, handler.Booking, config, logger)
	wireContact(r, handler.Contact)

	// A failed credential load is terminal until an operator asks for a
	// reload; this is that switch.
	r.Route("/api/admin/payment", func(r chi.Router) {
		r.Use(middleware.APIKey(config.App.AdminAPIKey, logger))
		r.Post("/reload", func(w http.ResponseWriter, r *http.Request) {
			loader.Reload()
			utils.ResponseSuccess(w, "success", map[string]string{"state": string(loader.State())})
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
