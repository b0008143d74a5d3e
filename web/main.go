package main

import (
	"flag"
	"log"

	"github.com/fusiondiag/go-los-tracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	flag.Parse()

	srv := server.NewServer(*port)
	if err := srv.Start(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
