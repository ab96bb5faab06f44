package activity

import (
	"github.com/fieldscope/fieldscope/internal/activity/repository"
	"github.com/fieldscope/fieldscope/internal/activity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("activity.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
