package main

import (
	"context"

	"tradewatch-backend/cmd/tradewatch-cli/commands"
	"tradewatch-backend/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "tradewatch-cli")
	telemetry.InitSlog(true)
	commands.ExecuteContext(context.Background())
}
