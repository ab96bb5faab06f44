package audit

import (
	"github.com/fieldscope/fieldscope/internal/audit/repository"
	"github.com/fieldscope/fieldscope/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
