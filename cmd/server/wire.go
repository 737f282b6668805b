//go:build wireinject
// +build wireinject

package main

import (
	"myapp_backend/internal/app"
	"myapp_backend/internal/auth"
	"myapp_backend/internal/config"
	"myapp_backend/internal/filestorage"
	"myapp_backend/internal/jobs"
	"myapp_backend/internal/platform/redisclient"
	"myapp_backend/internal/platform/store"
	"myapp_backend/internal/profile"
	"myapp_backend/internal/profileform"
	"myapp_backend/internal/user"

	"github.com/google/wire"
)

var platformSet = wire.NewSet(
	provideLogger,
	store.New,
	redisclient.NewClient,
	filestorage.NewFromConfig,
)

var authSet = wire.NewSet(
	user.NewRepository,
	auth.NewTokenService,
	auth.NewBlocklist,
	auth.NewService,
	wire.Bind(new(auth.Service), new(*auth.ServiceImplementation)),
	auth.NewCookieOptions,
	auth.NewHandler,
)

var profileSet = wire.NewSet(
	profile.NewRepository,
	profile.NewService,
	wire.Bind(new(profile.Service), new(*profile.ServiceImplementation)),
	wire.Bind(new(profile.AvatarStore), new(*filestorage.FileStorageService)),
	profile.NewHandler,
	profileform.NewValidator,
	profileform.NewHandler,
)

var jobsSet = wire.NewSet(
	jobs.NewAvatarAuditJob,
	wire.Bind(new(jobs.FileLister), new(*filestorage.FileStorageService)),
	wire.Bind(new(jobs.AvatarSource), new(profile.Repository)),
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		platformSet,
		authSet,
		profileSet,
		jobsSet,
		app.NewServer,
	)
	return nil, nil, nil
}

// initializeAvatarAudit builds only what the audit-avatars command needs.
func initializeAvatarAudit(cfg *config.Config) (*jobs.AvatarAuditJob, func(), error) {
	wire.Build(
		provideLogger,
		store.New,
		filestorage.NewFromConfig,
		profile.NewRepository,
		jobsSet,
	)
	return nil, nil, nil
}
