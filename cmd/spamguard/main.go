package main

import (
	"flag"
	"os"
	"strings"
	"time"

	"spamguard/config"
	"spamguard/logging"
	"spamguard/spam"

	"github.com/rs/zerolog"
)

// Dependency injection composition root
func main() {
	logLevel := flag.String("loglevel", "info", "sets log level. Can be one of: debug, info, warn, error, fatal, panic.")
	configFile := flag.String("config", "", "if set, read the YAML configuration from this file instead of using the defaults")
	keywordFiles := flag.String("keywords", "", "comma separated keyword files, one keyword per line. The built-in dictionary is used if neither this nor the config names any")
	domainList := flag.String("domains", "", "if set, preload the reputation index from this file of \"domain score\" lines")
	resultsLogDir := flag.String("resultslog", "", "if set, append JSON results log lines to "+logging.FileName+" in this directory")
	exportDir := flag.String("export", "", "if set, write the blacklist and reputation exports to this directory")
	writeSample := flag.String("writesample", "", "if set, write the built-in keyword dictionary to this file and exit")
	benchmark := flag.Int("benchmark", 1000, "number of synthetic messages for the keyword benchmark, 0 to skip")
	flag.Parse()

	loglevel, _ := zerolog.ParseLevel(*logLevel)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(loglevel).With().Timestamp().Caller().Logger()

	fs := &spam.FileSystemImpl{}

	c := config.Default()
	if *configFile != "" {
		var err error
		c, err = config.Load(fs, *configFile)
		if err != nil {
			logger.Fatal().Err(err).Str("file", *configFile).Msg("Error while loading config")
		}
	}
	if *keywordFiles != "" {
		c.KeywordFiles = strings.Split(*keywordFiles, ",")
	}
	if *domainList != "" {
		c.DomainList = *domainList
	}
	if *resultsLogDir != "" {
		c.ResultsLogDir = *resultsLogDir
	}
	if *exportDir != "" {
		c.ExportDir = *exportDir
	}

	a, err := newApp(logger, c, fs, &logging.LogFileSystemImpl{})
	if err != nil {
		logger.Fatal().Err(err).Msg("Error while creating spam filter")
	}

	if *writeSample != "" {
		err = a.keywords.WriteSampleDictionary(*writeSample)
		closeApp(logger, a)
		if err != nil {
			logger.Fatal().Err(err).Msg("Error while writing sample dictionary")
		}
		return
	}

	logger.Info().Msg("Starting spam filter demo")
	err = a.runDemo(os.Stdout, *benchmark)
	closeApp(logger, a)
	if err != nil {
		logger.Fatal().Err(err).Msg("Error while running spam filter demo")
	}
}

func closeApp(logger zerolog.Logger, a *app) {
	if err := a.Close(); err != nil {
		logger.Error().Err(err).Msg("Error while closing results log")
	}
}
