package main

import (
	"log/slog"

	"github.com/cooldogedev/prism"
	"github.com/cooldogedev/prism/api"
	"github.com/cooldogedev/prism/server"
)

func main() {
	logger := slog.Default()
	p, err := prism.NewPrism(server.NewStaticDiscovery("127.0.0.1:25566", ""), logger, nil, nil)
	if err != nil {
		logger.Error("Failed to create proxy", "err", err)
		return
	}

	if err := p.Listen(); err != nil {
		logger.Error("Failed to listen on proxy", "err", err)
		return
	}

	a := api.NewAPI(p.Registry(), logger, api.NewSecretBasedAuthentication("secret"))
	if err := a.Listen("127.0.0.1:25567"); err != nil {
		logger.Error("Failed to listen on api", "err", err)
		return
	}

	go func() {
		for {
			if err := a.Accept(); err != nil {
				logger.Error("Failed to accept connection", "err", err)
				return
			}
		}
	}()

	for {
		if _, err := p.Accept(); err != nil {
			logger.Error("Failed to accept session", "err", err)
			return
		}
	}
}
