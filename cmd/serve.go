package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mountainops/lifthire/internal/logger"
	"github.com/mountainops/lifthire/internal/server"
)

const defaultListenAddr = ":8080"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the hiring pipeline HTTP API",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "address to listen on (default :8080)")
	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
}

func serve(_ *cobra.Command) {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	env, err := newEnvironment(zlog, config)
	if err != nil {
		zlog.Fatal("building the pipeline", zap.Error(err))
	}
	defer env.Close()

	addr := viper.GetString("listen")
	if addr == "" {
		addr = config.Listen
	}
	if addr == "" {
		addr = defaultListenAddr
	}

	zlog.Info("starting the lifthire api",
		zap.String("version", version),
		zap.String("addr", addr),
		zap.Int("applicants", env.ApplicantCount),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(env.Engine, env.Settings, zlog, viper.GetBool("debug"))
	if err := srv.Run(ctx, addr); err != nil {
		zlog.Fatal("http server failed", zap.Error(err))
	}
}
