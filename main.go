package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vladyslavplus/KosherClouds-sub000/cmd"
	"github.com/vladyslavplus/KosherClouds-sub000/config"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	app := cmd.NewApp(cfg)
	app.Run()
}
