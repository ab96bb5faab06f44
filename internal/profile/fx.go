package profile

import (
	"github.com/fieldscope/fieldscope/internal/profile/repository"
	"github.com/fieldscope/fieldscope/internal/profile/service"
	"go.uber.org/fx"
)

var Module = fx.Module("profile.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
