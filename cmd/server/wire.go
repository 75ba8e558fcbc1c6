//go:build wireinject

package main

import (
	"github.com/google/wire"

	"chat-server/internal/domain"
	"chat-server/internal/infrastructure"
	"chat-server/internal/interfaces"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
