package salesrecord

import (
	"github.com/fieldscope/fieldscope/internal/salesrecord/repository"
	"github.com/fieldscope/fieldscope/internal/salesrecord/service"
	"go.uber.org/fx"
)

var Module = fx.Module("salesrecord.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
