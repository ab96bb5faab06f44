package notification

import (
	"github.com/fieldscope/fieldscope/internal/notification/repository"
	"github.com/fieldscope/fieldscope/internal/notification/service"
	"go.uber.org/fx"
)

var Module = fx.Module("notification.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
