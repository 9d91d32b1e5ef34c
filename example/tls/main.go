package main

import (
	"os"

	"github.com/Murilinho145SG/Routs/pkg/logger"
	"github.com/Murilinho145SG/Routs/web/protocol"
	"github.com/Murilinho145SG/Routs/web/router"
	"github.com/Murilinho145SG/Routs/web/server"
	"github.com/Murilinho145SG/Routs/web/server/config"
)

func main() {
	configPath := "tls.json"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	tlsCfg, err := config.LoadTLSFileConfig(configPath)
	if err != nil {
		logger.Fatal("load tls config failed. Error: %s", err.Error())
		os.Exit(1)
	}

	r := router.New()
	r.HandleFunc("/", func(w *protocol.Writer, r *protocol.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("hello over tls"))
	})

	if err := server.ServeTLS(r, "0.0.0.0:8443", tlsCfg.CertFile, tlsCfg.KeyFile); err != nil {
		logger.Fatal("server startup failed. Error: %s", err.Error())
		os.Exit(1)
	}
}
