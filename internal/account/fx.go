package account

import (
	"github.com/fieldscope/fieldscope/internal/account/service"
	"go.uber.org/fx"
)

var Module = fx.Module("account.service",
	fx.Provide(service.New),
)
