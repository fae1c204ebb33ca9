package main

import (
	auth "Facade/internal/auth"
	association "Facade/internal/calc/association"
	batch "Facade/internal/calc/batch"
	correction "Facade/internal/calc/correction"
	geometry "Facade/internal/calc/geometry"
	importer "Facade/internal/calc/importer"
	params "Facade/internal/calc/params"
	pipeline "Facade/internal/calc/pipeline"
	report "Facade/internal/calc/report"
	structural "Facade/internal/calc/structural"
	preset "Facade/internal/preset"
	repo "Facade/internal/repo"
	"context"
	"database/sql"
	"sync"
	"syscall"
	"time"

	"log"
	"net/http"
	"os"
	"os/signal"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, db *sql.DB) {
	store := repo.NewPostgresDB(db)
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}

	authEnv := &auth.Authenv{JWTkey: []byte(tokenKey), Repo: store}
	presetH := &preset.Handler{Repo: store}

	limiter := auth.NewIPRateLimiter(1, 3)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/presets", presetH.List).Methods("GET")
	secureApi.HandleFunc("/presets/{id}", presetH.Get).Methods("GET")

	paramsH := &params.Handler{}
	geometryH := &geometry.Handler{}
	structuralH := &structural.Handler{}
	correctionH := &correction.Handler{}
	associationH := &association.Handler{}
	batchH := &batch.Handler{}
	importerH := &importer.Handler{}
	reportH := &report.Handler{}
	pipelineH := &pipeline.Handler{
		Store:    pipeline.NewSessionStore(),
		Baseline: defaultBaseline(store),
	}

	secureApi.HandleFunc("/tools/params/validate", paramsH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/geometry/generate", geometryH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/structural/analyze", structuralH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/correction/run", correctionH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/association/run", associationH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/pipeline/run", pipelineH.Run).Methods("POST")
	secureApi.HandleFunc("/tools/batch/run", batchH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/import/params", importerH.Params).Methods("POST")
	secureApi.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")
	secureApi.HandleFunc("/trace", pipelineH.Trace).Methods("GET")
}

// defaultBaseline prefers the first seeded preset; a fresh database just
// means no fallback baseline and zero correlations until one is supplied.
func defaultBaseline(store repo.Repository) association.Baseline {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	presets, err := store.ListPresets(ctx)
	if err != nil || len(presets) == 0 {
		return association.Baseline{}
	}
	return presets[0].Baseline
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db := auth.InitDB()
	defer db.Close()
	mux := mux.NewRouter()
	log.Println("Starting server on :443")
	HandleList(mux, db)
	handler := CORS(mux)

	server := &http.Server{
		Addr:    ":443",
		Handler: handler,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServeTLS("server.crt", "server.key"); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
