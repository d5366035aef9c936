package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/cooldogedev/prism"
	"github.com/cooldogedev/prism/server"
	"github.com/cooldogedev/prism/transport"
	"github.com/cooldogedev/prism/util"
)

func main() {
	path := flag.String("config", "config.toml", "path of the proxy configuration")
	serverAddr := flag.String("server", "127.0.0.1:25566", "address of the server to connect clients to")
	fallbackAddr := flag.String("fallback", "", "address of the server to move clients to if their server goes down")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opts, err := util.LoadOpts(*path)
	if err != nil {
		logger.Error("Failed to load config", "err", err)
		return
	}

	t, err := transport.New(opts.Transport, logger)
	if err != nil {
		logger.Error("Failed to create transport", "err", err)
		return
	}

	proxy, err := prism.NewPrism(server.NewStaticDiscovery(*serverAddr, *fallbackAddr), logger, opts, t)
	if err != nil {
		logger.Error("Failed to create proxy", "err", err)
		return
	}

	if err := proxy.Listen(); err != nil {
		logger.Error("Failed to listen on proxy", "err", err)
		return
	}

	for {
		s, err := proxy.Accept()
		if err != nil {
			logger.Error("Failed to accept session", "err", err)
			return
		}
		logger.Info("Accepted session", "username", s.Client().Username(), "version", s.Client().Version().String())
	}
}
