package cli

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/openwx/wxcharts/archive"
	"github.com/openwx/wxcharts/config"
	"github.com/openwx/wxcharts/generator"
	"github.com/openwx/wxcharts/server"
)

func init() {
	config.RootCtx.Run = run
}

// Execute executes the root command.
func Execute() error {
	return config.RootCtx.Execute()
}

func run(cmd *cobra.Command, args []string) {
	a, err := archive.Open(
		config.Viper.GetString(archive.PathDriver),
		config.Viper.GetString(archive.PathDSN),
	)
	if err != nil {
		log.WithError(err).Fatal("Could not open station archive!")
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go generator.New(a).Run(ctx)

	log.WithError(server.Run(a)).Panic("Unexpected panic!")
}
