package main

import (
	"coursedesk/config"
	"coursedesk/database"
	"coursedesk/routers"
	"coursedesk/utils"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	utils.InitializePurgeScheduler()

	app := routers.NewApp(config.AppConfig)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
