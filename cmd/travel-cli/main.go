// README: Terminal front end; drives the controller against a running API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"travelagent/internal/client"
	"travelagent/internal/config"
	"travelagent/internal/console"
	"travelagent/internal/controller"
)

func main() {
	var (
		location = flag.String("location", "", "suggest destinations near or related to this place")
		image    = flag.String("image", "", "suggest destinations similar to the landmark in this image file")
		prefs    = flag.String("prefs", "", "comma separated preference tags (at most 3)")
		forecast = flag.String("weather", "", "show the weather for this destination")
		baseURL  = flag.String("api", "", "API base URL (default $TRAVEL_API_BASE_URL)")
		noColor  = flag.Bool("no-color", false, "disable ANSI colours")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if *baseURL == "" {
		*baseURL = cfg.Client.BaseURL
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	view := console.NewView(os.Stdout, !*noColor)
	ctrl := controller.New(client.New(*baseURL, client.WithTimeout(cfg.Client.Timeout)), view)

	for _, tag := range strings.Split(*prefs, ",") {
		if err := ctrl.TogglePreference(tag, true); err != nil {
			os.Exit(2)
		}
	}

	switch {
	case *image != "":
		data, err := os.ReadFile(*image)
		if err != nil {
			log.Fatal(err)
		}
		if err := ctrl.SelectImage(*image, data); err != nil {
			os.Exit(2)
		}
		if _, err := ctrl.SubmitImage(ctx); err != nil {
			os.Exit(1)
		}
	case *location != "":
		if _, err := ctrl.SubmitLocation(ctx, *location); err != nil {
			os.Exit(1)
		}
	case *forecast == "":
		fmt.Fprintln(os.Stderr, "usage: travel-cli -location PLACE | -image FILE [-prefs a,b,c] [-weather DEST]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if *forecast != "" {
		if _, err := ctrl.OpenWeather(ctx, *forecast); err != nil {
			os.Exit(1)
		}
	}
}
