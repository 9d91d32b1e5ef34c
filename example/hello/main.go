package main

import (
	"strconv"

	"github.com/Murilinho145SG/Routs/pkg/logger"
	"github.com/Murilinho145SG/Routs/pkg/tools"
	"github.com/Murilinho145SG/Routs/web/protocol"
	"github.com/Murilinho145SG/Routs/web/router"
	"github.com/Murilinho145SG/Routs/web/server"
)

func logging(next router.HandlerFunc) router.HandlerFunc {
	return func(w *protocol.Writer, r *protocol.Request) {
		logger.Info("%s %s from %s", r.Method, r.Path, r.RemoteAddr)
		next(w, r)
	}
}

func main() {
	r := router.New()

	r.HandleFunc("/", router.Chain(func(w *protocol.Writer, r *protocol.Request) {
		w.Header().Set("Access-Control-Allow-Methods", "GET")

		if r.Method != "POST" {
			w.WriteHeader(protocol.StatusMethodNotAllowed)
			return
		}

		logger.Info("%s", string(r.Body))
		w.WriteHeader(protocol.StatusOK)
	}, logging))

	r.HandleFunc("/hello", func(w *protocol.Writer, r *protocol.Request) {
		w.Header().Set("Content-Type", "application/json")
		body := []byte(tools.ToJson(map[string]string{"message": "Hello World!"}))
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.Write(body)
	})

	if err := server.Serve(r, "0.0.0.0:8080"); err != nil {
		logger.Fatal("server startup failed. Error: %s", err.Error())
	}
}
