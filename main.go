package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"helium-explorer/api"
	"helium-explorer/bot"
	"helium-explorer/config"
	"helium-explorer/log"
	"helium-explorer/net"
	"helium-explorer/view"
)

func main() {
	configPath := flag.String("config", "./config.toml", "path of the toml config file")
	flag.Parse()

	cfg := config.LoadConfig(*configPath)

	log.Init(&cfg.Log)

	client := net.New(&cfg.Net)

	apiSrv := api.New(view.NewRegistry(client, cfg.View.PageSize, cfg.View.MaxSessions), client, &cfg.Server)
	apiSrv.Start()

	var tgBot *bot.Bot
	if cfg.Bot.Token != "" {
		tgBot = bot.New(&cfg.Bot, view.NewRegistry(client, cfg.View.PageSize, cfg.View.MaxSessions))
		tgBot.Start()
	}

	c := cron.New(cron.WithSeconds())
	_, _ = c.AddFunc("0 */5 * * * *", func() {
		apiSrv.EvictIdle(cfg.View.IdleDuration())
		if tgBot != nil {
			tgBot.EvictIdle(cfg.View.IdleDuration())
		}
	})
	_, _ = c.AddFunc("0 */10 * * * *", func() {
		apiSrv.Report()
	})
	c.Start()

	zap.S().Infof("Explorer started against [%s], page size [%d]", cfg.Net.ApiURL, cfg.View.PageSize)

	watchOSSignal(c, apiSrv, tgBot)
}

func watchOSSignal(c *cron.Cron, apiSrv *api.Server, tgBot *bot.Bot) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	c.Stop()
	if tgBot != nil {
		tgBot.Stop()
	}
	apiSrv.Stop()
	_ = zap.L().Sync()
}
