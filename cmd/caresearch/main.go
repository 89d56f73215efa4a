package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/carepoint/caresearch/api"
	"github.com/carepoint/caresearch/config"
	"github.com/carepoint/caresearch/internal/dataset"
	"github.com/carepoint/caresearch/internal/gazetteer"
	"github.com/carepoint/caresearch/internal/logger"
	"github.com/carepoint/caresearch/internal/search"
	"github.com/carepoint/caresearch/internal/suggest"
	"github.com/carepoint/caresearch/store"
)

func main() {
	var (
		help       = flag.Bool("help", false, "Show help message")
		configPath = flag.String("config", "", "Path to a TOML settings file (defaults apply when omitted)")
		port       = flag.String("port", "", "Port to run the server on (overrides settings)")
	)

	flag.Parse()

	if *help {
		fmt.Printf("caresearch - fuzzy Polish-locale search for elder-care facilities\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		return
	}

	log := logger.New("caresearch")

	settings := config.DefaultSettings()
	if *configPath != "" {
		loaded, err := config.LoadSettings(*configPath)
		if err != nil {
			log.Fatal("failed to load settings", "path", *configPath, "err", err)
		}
		settings = loaded
	}
	if *port != "" {
		settings.Server.Port = *port
	}

	locations, err := dataset.LoadGazetteer(settings.Server.GazetteerPath)
	if err != nil {
		log.Fatal("failed to load gazetteer", "path", settings.Server.GazetteerPath, "err", err)
	}
	gazetteerStore := gazetteer.NewStore()
	gazetteerStore.Add(locations...)
	log.Info("gazetteer loaded", "locations", gazetteerStore.Len())

	facilities, err := dataset.LoadFacilities(settings.Server.FacilityPath)
	if err != nil {
		log.Fatal("failed to load facilities", "path", settings.Server.FacilityPath, "err", err)
	}
	facilityStore := store.NewFacilityStore()
	facilityStore.Add(facilities...)
	log.Info("facility catalogue loaded", "facilities", facilityStore.Len())

	searchService, err := search.NewService(facilityStore, settings)
	if err != nil {
		log.Fatal("failed to create search service", "err", err)
	}

	suggestService, err := suggest.NewService(gazetteerStore, facilityStore, settings)
	if err != nil {
		log.Fatal("failed to create suggest service", "err", err)
	}
	defer suggestService.Close()

	router := gin.Default()
	api.SetupRoutes(router, api.NewAPI(searchService, suggestService, facilityStore, log))

	log.Info("starting server", "port", settings.Server.Port)
	if err := router.Run(":" + settings.Server.Port); err != nil {
		log.Fatal("server stopped", "err", err)
	}
}
