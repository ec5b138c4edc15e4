package main

import (
	"github.com/ilindan-dev/notify-relay/internal/app"
	"go.uber.org/fx"
)

// main is the entry point for the relay server.
func main() {
	fx.New(app.APIModule).Run()
}
