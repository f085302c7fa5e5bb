package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"tripcart/currency"
	"tripcart/genai"
	"tripcart/group"
	"tripcart/guides"
	"tripcart/itinerary"
	"tripcart/live"
	"tripcart/mq"
	"tripcart/planner"
	"tripcart/plans"
	"tripcart/ratelim"
	"tripcart/routes"
	"tripcart/trips"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// XSS, content sniffing, framing
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		// HSTS (must be on HTTPS)
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		// Referrer and permissions
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		// Prevent caching
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, duration)
	})
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	// read port
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	// guide reference data
	guidePath := os.Getenv("GUIDE_DATA_PATH")
	if guidePath == "" {
		guidePath = "data/guide_recommendations.json"
	}
	guideStore, err := guides.Load(guidePath)
	if err != nil {
		log.Printf("No guide data loaded from %s: %v", guidePath, err)
		guideStore = guides.NewStore(nil)
	}

	aiClient := genai.NewClient()
	plannerSvc := planner.NewService(guideStore, aiClient)
	rates := currency.NewProvider()

	// write-behind mirror for the remote store
	mirror := trips.NewMirror()
	go mirror.Run()

	// realtime item-change feed
	hub := live.NewHub()
	go hub.Run()
	go mq.StartFeedWorker(hub)

	// rate limiters: plan generation is expensive, everything else is cheap
	rateLimiter := ratelim.NewRateLimiter(5, 10)
	genLimiter := ratelim.NewRateLimiter(rate.Every(20*time.Second), 3)

	router := httprouter.New()
	routes.RoutesWrapper(router, rateLimiter, genLimiter, routes.Deps{
		Plans:     plans.NewHandlers(plannerSvc, rates, mirror),
		Itinerary: itinerary.NewHandlers(aiClient),
		Group:     group.NewHandlers(hub),
		Hub:       hub,
	})

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	// create HTTP server
	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	// on shutdown: stop the hub and drain the mirror queue
	server.RegisterOnShutdown(func() {
		log.Println("🛑 Shutting down live feed hub...")
		hub.Stop()
		mirror.Stop()
	})

	// start server
	go func() {
		log.Printf("🚀 Server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	// initiate graceful shutdown
	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}
