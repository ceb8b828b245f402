package main

import (
	"context"
	"os"
	"strings"

	"PairChat/data/database/mgo/mongoutil"
	"PairChat/data/store"
	"PairChat/global"
	"PairChat/logger"
	mid "PairChat/middleware"
	chathttp "PairChat/module/chat"
	chatsvc "PairChat/module/chat/service"
	userhttp "PairChat/module/user"
	usersvc "PairChat/module/user/service"
	rtchat "PairChat/service/chat"
	"PairChat/service/chat/handlers"
	"PairChat/service/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := global.Load()
	if err != nil {
		logger.Errorf("load config: %v", err)
		os.Exit(1)
	}
	cfg.ConfigIds()

	ctx := context.Background()

	st, err := buildStore(ctx, cfg)
	if err != nil {
		logger.Errorf("init store: %v", err)
		os.Exit(1)
	}

	presence := buildPresence(ctx, cfg)

	jwtOpts := cfg.JWTOptions()
	userHandler := userhttp.NewHandler(usersvc.NewUserService(st, jwtOpts))
	chatHandler := chathttp.NewHandler(chatsvc.NewMessageService(st, presence))

	chatSrv := rtchat.NewServer(presence)
	chatSrv.Disp().Register(handlers.NewInitHandler())
	chatSrv.Disp().Register(handlers.NewTypingHandler())

	r := gin.Default()
	r.Use(mid.CORS())
	userHandler.RegisterRoutes(r, jwtOpts)
	chatHandler.RegisterRoutes(r, jwtOpts)
	r.GET("/ws", chatSrv.HandleWS)

	logger.Infof("pairchat listening on %s (store=%s)", cfg.Addr, cfg.Store)
	if err := r.Run(cfg.Addr); err != nil {
		logger.Errorf("server exited: %v", err)
		os.Exit(1)
	}
}

func buildStore(ctx context.Context, cfg *global.AppConfig) (store.Store, error) {
	if strings.EqualFold(cfg.Store, "mongo") {
		db, err := mongoutil.NewDatabase(ctx, &mongoutil.Config{
			Uri:      cfg.MongoURI,
			Database: cfg.MongoDB,
		})
		if err != nil {
			return nil, err
		}
		return store.NewMongo(ctx, db)
	}
	return store.NewMemory(), nil
}

func buildPresence(ctx context.Context, cfg *global.AppConfig) storage.PresenceManager {
	if cfg.RedisAddr == "" {
		return storage.NoopPresence{}
	}
	p, err := storage.NewRedisPresence(ctx, storage.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDatabase,
	})
	if err != nil {
		// presence is an enhancement; run without it rather than fail boot
		logger.Warnf("redis presence disabled: %v", err)
		return storage.NoopPresence{}
	}
	return p
}
