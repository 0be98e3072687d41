package main

import (
	"log"
	"os"

	"github.com/iov-one/poe/cmd/poeapi/client"
	"github.com/iov-one/poe/cmd/poeapi/handlers"
	"github.com/iov-one/poe/cmd/poeapi/util"
	"github.com/joho/godotenv"
)

type configuration struct {
	HTTP       string
	Tendermint string
}

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LUTC | log.Lshortfile)
	log.SetPrefix(cutstr(util.BuildHash, 6) + " ")

	// Values from the environment take precedence over the .env file.
	_ = godotenv.Load()

	conf := configuration{
		HTTP:       env("HTTP", ":8000"),
		Tendermint: env("TENDERMINT", "http://localhost:26657"),
	}

	if err := run(conf); err != nil {
		log.Fatal(err)
	}
}

func cutstr(s string, maxchar int) string {
	if len(s) <= maxchar {
		return s
	}
	return s[:maxchar]
}

func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

func run(conf configuration) error {
	poeClient := client.NewHTTPPoeClient(conf.Tendermint)
	app := handlers.NewApp(poeClient)
	log.Printf("listening on %s", conf.HTTP)
	return app.Listen(conf.HTTP)
}
