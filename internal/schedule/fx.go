package schedule

import (
	"github.com/fieldscope/fieldscope/internal/schedule/repository"
	"github.com/fieldscope/fieldscope/internal/schedule/service"
	"go.uber.org/fx"
)

var Module = fx.Module("schedule.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
