package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-lane-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	webServer := server.NewServer(*port)

	log.Printf("Lane Raytracer Web Server")
	log.Printf("Render with http://localhost:%d/api/render?scene=mirrors", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
