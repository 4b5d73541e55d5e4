package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/cache"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/config"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/llm"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/plangen"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/questiongen"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/search"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/server"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/store"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/teaching"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.ServerAddr = addr
	}
	if dsn, _ := cmd.Flags().GetString("db"); dsn != "" {
		cfg.DatabaseURL = dsn
	}

	st, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}

	provider, err := llm.NewProvider(context.Background(), cfg.LLM, st.LLMEvents())
	if err != nil {
		return err
	}

	// Web search and Redis are optional: the service degrades rather than
	// refusing to start.
	var searcher search.Client
	if c := search.NewClient(cfg.Search); c.Enabled() {
		searcher = c
	} else {
		log.Println("web search disabled: no Tavily API key configured")
	}

	var planCache *cache.PlanCache
	if cfg.RedisURL != "" {
		planCache, err = cache.New(cfg.RedisURL)
		if err != nil {
			log.Printf("warning: lesson plan cache disabled: %v", err)
			planCache = nil
		}
	}

	planner := plangen.NewService(provider, searcher, plangen.DefaultConfig())
	questions := questiongen.New(provider, questiongen.DefaultConfig())
	teachingSvc := teaching.NewService(st.Sessions(), st.LessonPlans(), questions, planner)

	router := server.NewRouter(server.Options{
		Teaching:  teachingSvc,
		Plans:     st.LessonPlans(),
		PlanCache: planCache,
		JWTSecret: cfg.JWTSecret,
	})

	log.Printf("curiocloud API listening on %s", cfg.ServerAddr)
	return router.Run(cfg.ServerAddr)
}
