package identity

import (
	"github.com/fieldscope/fieldscope/internal/identity/repository"
	"github.com/fieldscope/fieldscope/internal/identity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("identity.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
