package main

import (
	"context"

	"registry-harvester/cmd/harvester/commands"
	"registry-harvester/lib/serviceutil"
	"registry-harvester/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.InitSlog(false)
	tel, err := telemetry.SetupFromEnv(ctx, "harvester")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer tel.Shutdown(context.Background())

	commands.ExecuteContext(ctx)
}
