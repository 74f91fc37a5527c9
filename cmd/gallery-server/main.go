package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"gallery-server/internal/bootstrap"
)

func main() {
	fmt.Printf("[%s] [INFO] [Bootstrap] starting gallery-server...\n", time.Now().Format("2006-01-02 15:04:05.000"))
	if err := bootstrap.Run(context.Background()); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "gallery-server failed: %v\n", err)
		os.Exit(1)
	}
}
