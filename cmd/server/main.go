// Command server runs any of the three services, selected by the first
// argument or SERVICE_ROLE.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/movies-backend/internal/app"
	"github.com/yungbote/movies-backend/internal/config"
	"github.com/yungbote/movies-backend/internal/platform/envutil"
	"github.com/yungbote/movies-backend/internal/platform/shutdown"
)

func main() {
	name := envutil.String("SERVICE_ROLE", string(config.RoleMovie))
	if len(os.Args) > 1 {
		name = os.Args[1]
	}
	role, err := config.ParseRole(name)
	if err != nil {
		fmt.Printf("usage: server [movie|movieinfo|reviews]: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	a, err := app.New(ctx, role)
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
