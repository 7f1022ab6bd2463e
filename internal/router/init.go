package router

import (
	"github.com/supgamedex/gamedex-api/internal/application"
	"github.com/supgamedex/gamedex-api/internal/container"
	pginfra "github.com/supgamedex/gamedex-api/internal/infrastructure/postgres"
	handlers "github.com/supgamedex/gamedex-api/internal/interface/http"
	"github.com/supgamedex/gamedex-api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup.
func InitModules(r *Registry) {
	users := pginfra.NewUserRepository(container.GetPGPool())
	library := pginfra.NewLibraryRepository(container.GetPGPool())

	// keep the interface nil when no publisher is configured
	var mailq application.EmailQueue
	if pub := container.GetRabbitPub(); pub != nil {
		mailq = pub
	}

	accountSvc := application.NewAccountService(
		users,
		container.GetTokens(),
		mailq,
		container.GetConfig(),
		container.GetLogger(),
	)
	librarySvc := application.NewLibraryService(
		users,
		library,
		container.GetRAWG(),
		container.GetLogger(),
	)

	accountHandler := handlers.NewAccountHandler(accountSvc, container.GetLogger())
	libraryHandler := handlers.NewLibraryHandler(librarySvc, container.GetLogger())
	catalogHandler := handlers.NewCatalogHandler(container.GetRAWG(), container.GetLogger())

	r.Add(modules.NewAccountModule(accountHandler, container.GetTokens()))
	r.Add(modules.NewLibraryModule(libraryHandler))
	r.Add(modules.NewCatalogModule(catalogHandler))
}
