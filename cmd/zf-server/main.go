package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	response "github.com/zf-go/response"
	"github.com/zf-go/response/view"
)

var (
	// CLI flags
	configFilenameFlag string
	portFlag           int
	templatesFlag      string
	verbosityTraceFlag bool
	logFilenameFlag    string

	// this is set by goreleaser
	version string
)

func init() {
	flag.StringVar(&configFilenameFlag, "config", "", "Path to config file")
	flag.IntVar(&portFlag, "port", 0, "Port to listen on (overrides config, default 8080)")
	flag.StringVar(&templatesFlag, "templates", "", "Template DB file name (use 'memory' for in-memory db, overrides config)")
	flag.BoolVar(&verbosityTraceFlag, "vv", false, "Verbosity: trace logging")
	flag.StringVar(&logFilenameFlag, "log-file", "", "Log file to use (in addition to stdout)")

	if version == "" {
		version = "DEV"
	}
}

func main() {
	flag.Parse()

	// set log level
	logLevel := zerolog.DebugLevel
	if verbosityTraceFlag {
		logLevel = zerolog.TraceLevel
	}

	// set up log output to stdout
	// also output to logfile if specified
	logOutputs := make([]io.Writer, 0)
	logOutputs = append(logOutputs, zerolog.ConsoleWriter{Out: os.Stdout})
	if logFilenameFlag != "" {
		if logFileOutput, err := os.OpenFile(logFilenameFlag, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644); err != nil {
			log.Fatal().Err(err).Msg("Cannot open log file")
		} else {
			logOutputs = append(logOutputs, logFileOutput)
		}
	}
	multiWriter := zerolog.MultiLevelWriter(logOutputs...)
	log.Logger = log.Level(logLevel).Output(multiWriter).
		With().Str("version", version).Logger()

	var config Config
	if configFilenameFlag != "" {
		var err error
		if config, err = getConfig(configFilenameFlag); err != nil {
			log.Fatal().Err(err).Msg("Could not read config")
		}
	}
	if portFlag != 0 {
		config.Port = portFlag
	} else if config.Port == 0 {
		config.Port = 8080
	}
	if templatesFlag != "" {
		config.Templates.DB = templatesFlag
	}
	if config.Port < 0 {
		log.Fatal().Msg("Need a valid port")
	}

	// set up sqlite memory store
	dbFilename := config.Templates.DB
	if dbFilename == "memory" {
		dbFilename = ""
	}
	store, err := view.NewSQLiteStore(dbFilename)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not open template store")
	}
	defer store.Close()
	if err := seed(store, config.Templates.Seed, time.Now().Truncate(time.Second)); err != nil {
		log.Fatal().Err(err).Msg("Could not seed templates")
	}

	a := &app{
		store:  store,
		engine: view.NewEngine(store, nil),
		rules:  config.rules(),
	}
	router := a.routes(response.Config{Diagnostics: os.Stderr})

	log.Info().Msgf("Listening on port %v", config.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", config.Port), router); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
