package cli

import (
	"github.com/google/uuid"

	"github.com/felixgeelhaar/studyflow/internal/app"
)

// App holds the CLI's dependencies, sourced from an already-wired
// internal/app.Container.
type App struct {
	Container *app.Container
	OwnerID   uuid.UUID
}

// cliApp is the global CLI application instance.
var cliApp *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	cliApp = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return cliApp
}

// NewApp wraps a container for CLI use.
func NewApp(c *app.Container) *App {
	return &App{Container: c, OwnerID: c.OwnerID}
}
