package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teerapatch/rodhai/config"
	"github.com/teerapatch/rodhai/db"
	"github.com/teerapatch/rodhai/fallback"
	"github.com/teerapatch/rodhai/services"
)

// Server wires the HTTP layer to every service. Registry and Roster are only
// set in demo mode; the demo routes are not registered without them.
type Server struct {
	Config         *config.Config
	AuthRepository db.AuthRepository
	AuthService    services.AuthService
	LostCarService services.LostCarService
	TipService     services.TipService
	PointsService  services.PointsService
	PlanService    services.PlanService
	MediaService   services.MediaService
	Mail           services.Mailer
	Hub            *Hub
	Registry       *fallback.Registry
	Roster         *fallback.Roster
	DB             db.GormDB
}

func (s *Server) Start() {
	r := s.setupRouter()

	port := s.Config.Port
	if port == 0 {
		port = 8080
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		log.Printf("listening on :%d", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exiting")
}

// decode binds the JSON body into v.
func decode(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return err
	}
	return nil
}
