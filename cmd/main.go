package main

import (
	"ratefeed/internal/app"

	"github.com/sirupsen/logrus"
)

// @title ratefeed API
// @version 1.0
// @description Aggregated currency rates, on-demand refresh and trusted time.
// @BasePath /api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("ratefeed stopped")
	}
}
