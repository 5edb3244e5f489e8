package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrissnell/wildfire/internal/app"
	"github.com/chrissnell/wildfire/internal/constants"
	"github.com/chrissnell/wildfire/internal/log"
	"github.com/chrissnell/wildfire/pkg/config"
)

func main() {
	cfgFile := flag.String("config", "", "Path to a YAML scenario file whose server section configures the daemon")
	listenAddr := flag.String("listen-addr", "", "Address to listen on (overrides server.listen-addr)")
	port := flag.Int("port", 0, "Port to listen on (overrides server.port)")
	workers := flag.Int("workers", 0, "Batch and Monte Carlo workers (overrides server.workers)")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	logFile := flag.String("log", "", "Also write logs to this file, rotated by size")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("firebehaved %s\n", constants.Version)
		os.Exit(0)
	}

	// Set up logging
	var err error
	if *logFile != "" {
		err = log.InitFile(*debug, *logFile)
	} else {
		err = log.Init(*debug)
	}
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	server, err := loadServerConfig(*cfgFile)
	if err != nil {
		log.Errorf("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	if *listenAddr != "" {
		server.ListenAddr = *listenAddr
	}
	if *port != 0 {
		server.Port = *port
	}
	if *workers != 0 {
		server.Workers = *workers
	}

	log.Debugw("server configuration", "listen_addr", server.ListenAddr, "port", server.Port, "workers", server.Workers, "tls", server.Cert != "")

	application := app.New(server, log.GetSugaredLogger())
	if err := application.Run(context.Background()); err != nil {
		log.Errorf("Application error: %v", err)
		os.Exit(1)
	}
}

// loadServerConfig reads the server section of a YAML scenario file. With
// no file the defaults apply.
func loadServerConfig(cfgFile string) (config.ServerData, error) {
	if cfgFile == "" {
		return config.DefaultServerData(), nil
	}
	filename, _ := filepath.Abs(cfgFile)
	provider, err := config.NewProvider("yaml", filename)
	if err != nil {
		return config.ServerData{}, err
	}
	sd, err := provider.LoadScenario()
	if err != nil {
		return config.ServerData{}, fmt.Errorf("error reading config file. Did you pass the -config flag? Run with -h for help: %w", err)
	}
	return sd.Server, nil
}
