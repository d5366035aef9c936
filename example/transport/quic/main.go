package main

import (
	"log/slog"

	"github.com/cooldogedev/prism"
	"github.com/cooldogedev/prism/server"
	"github.com/cooldogedev/prism/transport"
)

func main() {
	logger := slog.Default()
	proxy, err := prism.NewPrism(server.NewStaticDiscovery("127.0.0.1:25566", ""), logger, nil, transport.NewQUIC(logger))
	if err != nil {
		logger.Error("Failed to create proxy", "err", err)
		return
	}

	if err := proxy.Listen(); err != nil {
		logger.Error("Failed to listen on proxy", "err", err)
		return
	}

	for {
		if _, err := proxy.Accept(); err != nil {
			logger.Error("Failed to accept session", "err", err)
			return
		}
	}
}
