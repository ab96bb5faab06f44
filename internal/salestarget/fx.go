package salestarget

import (
	"github.com/fieldscope/fieldscope/internal/salestarget/repository"
	"github.com/fieldscope/fieldscope/internal/salestarget/service"
	"go.uber.org/fx"
)

var Module = fx.Module("salestarget.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
