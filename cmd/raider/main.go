// Command raider is a thin driver wiring the flow engine together: it is
// not a CLI framework (no cobra/viper) — just enough glue to authenticate
// against one target and print the result.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/DigeeX/raider/internal/config"
	"github.com/DigeeX/raider/internal/flow"
	"github.com/DigeeX/raider/internal/operation"
	"github.com/DigeeX/raider/internal/persistence"
	"github.com/DigeeX/raider/internal/plugin"
	"github.com/DigeeX/raider/internal/request"
	"github.com/DigeeX/raider/internal/runner"
	"github.com/DigeeX/raider/internal/session"
	"github.com/DigeeX/raider/internal/transport"
	"github.com/DigeeX/raider/internal/users"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	baseURL := os.Getenv("RAIDER_TARGET")
	if baseURL == "" {
		log.Fatalf("RAIDER_TARGET is required (the target's base URL)")
	}

	client, err := transport.New(transport.Config{
		ProxyURL:  cfg.Proxy,
		TLSVerify: cfg.TLSVerify,
		UserAgent: cfg.UserAgent,
	})
	if err != nil {
		log.Fatalf("failed to build transport client: %v", err)
	}

	userStore, err := users.Load(os.Getenv("RAIDER_USERS_FILE"))
	if err != nil {
		log.Printf("[WARN] no user file loaded: %v (continuing with no users)", err)
		userStore = users.NewStore(nil)
	}

	graph, err := demoGraph()
	if err != nil {
		log.Fatalf("failed to build authentication graph: %v", err)
	}

	sess := session.New(client, baseURL, userStore)

	if err := persistence.Load(cfg.ProjectDir, sess); err != nil {
		log.Printf("[WARN] session reload: %v", err)
	}

	r := runner.NewAuthRunner(graph)
	r.LoopGuard = cfg.LoopGuard

	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Println("shutting down...")
		cancel()
	}()

	result, err := r.Authenticate(ctx, sess)
	if err != nil {
		log.Printf("authentication failed: %v", err)
	}
	log.Printf("authentication result: outcome=%v last_flow=%s steps=%d", result.Outcome, result.LastFlow, result.Stats.StepsTaken)

	if dumpErr := persistence.Dump(cfg.ProjectDir, sess); dumpErr != nil {
		log.Printf("[WARN] session dump: %v", dumpErr)
	}

	if err != nil {
		os.Exit(1)
	}
}

// demoGraph builds a literal two-stage login scenario as a worked example,
// since the config front-end that would normally build this graph from a
// declarative file is out of scope here.
func demoGraph() (*runner.Graph, error) {
	sid := plugin.NewCookie("sid", "sid")

	initFlow := &flow.Flow{
		Name:       "initialization",
		Request:    &request.Request{Method: http.MethodGet, Path: "/login"},
		Outputs:    []plugin.Plugin{sid},
		Operations: operation.List{operation.NextStage{Name: "login"}},
	}

	loginFlow := &flow.Flow{
		Name: "login",
		Request: &request.Request{
			Method:  http.MethodPost,
			Path:    "/login",
			Cookies: []plugin.Plugin{sid},
			Form: []request.FormField{
				{Key: request.Lit("username"), Value: request.Ref(plugin.NewVariable("username", "username"))},
				{Key: request.Lit("password"), Value: request.Ref(plugin.NewVariable("password", "password"))},
			},
		},
		Operations: operation.List{
			operation.Http{
				Status:    http.StatusOK,
				Action:    operation.NextStage{},
				Otherwise: operation.Error{Message: "login failed"},
			},
		},
	}

	return runner.NewGraph([]*flow.Flow{initFlow, loginFlow}, nil)
}
