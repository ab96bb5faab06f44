package message

import (
	"github.com/fieldscope/fieldscope/internal/message/repository"
	"github.com/fieldscope/fieldscope/internal/message/service"
	"go.uber.org/fx"
)

var Module = fx.Module("message.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
