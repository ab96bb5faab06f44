package bonus

import (
	"github.com/fieldscope/fieldscope/internal/bonus/service"
	"go.uber.org/fx"
)

var Module = fx.Module("bonus.service",
	fx.Provide(service.New),
)
