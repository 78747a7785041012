//go:build wireinject
// +build wireinject

package di

import (
	"gearshare/config"
	"gearshare/infras/kafka"
	"gearshare/infras/otel"
	"gearshare/infras/postgres"
	"gearshare/infras/redis"
	"gearshare/internal/events"
	"gearshare/shared/cache"
	"gearshare/shared/clock"
	"gearshare/transport/http"
	"gearshare/transport/http/middleware"
	"gearshare/transport/http/router"

	bookingRepository "gearshare/internal/domains/booking/repository"
	bookingService "gearshare/internal/domains/booking/service"
	commentRepository "gearshare/internal/domains/comment/repository"
	commentService "gearshare/internal/domains/comment/service"
	itemRepository "gearshare/internal/domains/item/repository"
	itemService "gearshare/internal/domains/item/service"
	requestRepository "gearshare/internal/domains/request/repository"
	requestService "gearshare/internal/domains/request/service"
	userRepository "gearshare/internal/domains/user/repository"
	userService "gearshare/internal/domains/user/service"

	bookingHandler "gearshare/internal/handlers/booking"
	itemHandler "gearshare/internal/handlers/item"
	requestHandler "gearshare/internal/handlers/request"
	userHandler "gearshare/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
	clock.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	events.NewPublisher,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var itemDomain = wire.NewSet(
	itemRepository.New,
	itemService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var requestDomain = wire.NewSet(
	requestRepository.New,
	requestService.New,
)

var commentDomain = wire.NewSet(
	commentRepository.New,
	commentService.New,
)

var domains = wire.NewSet(
	userDomain,
	itemDomain,
	bookingDomain,
	requestDomain,
	commentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	userHandler.New,
	itemHandler.New,
	bookingHandler.New,
	requestHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
