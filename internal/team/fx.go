package team

import (
	"github.com/fieldscope/fieldscope/internal/team/repository"
	"github.com/fieldscope/fieldscope/internal/team/service"
	"go.uber.org/fx"
)

var Module = fx.Module("team.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
