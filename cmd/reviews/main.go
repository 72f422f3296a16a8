package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/movies-backend/internal/app"
	"github.com/yungbote/movies-backend/internal/config"
	"github.com/yungbote/movies-backend/internal/platform/shutdown"
)

func main() {
	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	a, err := app.New(ctx, config.RoleReviews)
	if err != nil {
		fmt.Printf("failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		a.Close()
		fmt.Printf("server exited: %v\n", err)
		os.Exit(1)
	}
	a.Close()
}
