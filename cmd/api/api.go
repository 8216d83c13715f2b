package api

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/spartaclub/newsfeed-server/service/comment"
	"github.com/spartaclub/newsfeed-server/service/feed"
	"github.com/spartaclub/newsfeed-server/service/user"
	"gorm.io/gorm"
)

type APIServer struct {
	address string
	db      *gorm.DB
}

func NewApiServer(address string, db *gorm.DB) *APIServer {
	return &APIServer{
		address: address,
		db:      db,
	}
}

func (s *APIServer) Run() error {
	router := mux.NewRouter()
	subrouter := router.PathPrefix("/api/v1").Subrouter()

	userHandler := user.NewHandler(s.db)
	userHandler.RegisterRoutes(subrouter)

	feedHandler := feed.NewHandler(s.db)
	feedHandler.RegisterRoutes(subrouter)

	commentHandler := comment.NewHandler(s.db)
	commentHandler.RegisterRoutes(subrouter)

	// Request logging, panic recovery and CORS around the whole router.
	chain := handlers.LoggingHandler(os.Stdout, router)
	chain = handlers.RecoveryHandler()(chain)
	chain = handlers.CORS(
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(chain)

	log.Println("Server running at", s.address)
	return http.ListenAndServe(s.address, chain)
}
