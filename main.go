package main

import (
	"log"
	"net/http"
	"os"

	"github.com/attarhouse/storefront/app/cmd"
	"github.com/attarhouse/storefront/app/configs"
	"github.com/attarhouse/storefront/app/routes"
)

func main() {

	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("✅ Database connected.")

	redisClient, err := configs.OpenRedis()
	if err != nil {
		log.Printf("Warning: cart snapshots disabled: %v", err)
		redisClient = nil
	} else if redisClient != nil {
		log.Println("✅ Cart snapshot store connected.")
	}

	router := routes.NewRouter(db, redisClient)

	addr := configs.LoadENV.Port
	if addr == "" {
		addr = ":8080"
	}

	server := http.Server{
		Addr:    addr,
		Handler: router,
	}

	log.Printf("🚀 Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Println("failed to connecting to the server")
	}

}
