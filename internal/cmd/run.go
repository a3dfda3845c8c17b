package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/basecamp/visit-recorder/internal/server"
)

type runCommand struct {
	cmd     *cobra.Command
	variant string
}

func newRunCommand() *runCommand {
	runCommand := &runCommand{}
	runCommand.cmd = &cobra.Command{
		Use:     "run",
		Short:   "Run the server",
		PreRunE: runCommand.preRun,
		RunE:    runCommand.run,
		Args:    cobra.NoArgs,
	}

	flags := runCommand.cmd.Flags()
	flags.StringVar(&runCommand.variant, "variant", getEnvString("VARIANT", ""), "Preset for render, timestamp-format, future, audience and debug (home, plain, audience)")
	flags.BoolVar(&globalConfig.Debug, "debug", getEnvBool("DEBUG", false), "Include debugging logs and error details")
	flags.StringVar(&globalConfig.Bind, "bind", getEnvString("BIND", server.DefaultBind), "Address to listen on")
	flags.IntVar(&globalConfig.HttpPort, "http-port", getEnvInt("HTTP_PORT", server.DefaultHttpPort), "Port to serve HTTP traffic on")
	flags.IntVar(&globalConfig.MetricsPort, "metrics-port", getEnvInt("METRICS_PORT", 0), "Publish metrics on the specified port (default zero to disable)")
	flags.StringVar((*string)(&globalConfig.Render), "render", getEnvString("RENDER", string(server.RenderHTML)), "Page format (html, text)")
	flags.StringVar((*string)(&globalConfig.TimestampFormat), "timestamp-format", getEnvString("TIMESTAMP_FORMAT", string(server.TimestampClock)), "Format of recorded timestamps (clock, iso)")
	flags.BoolVar(&globalConfig.FutureEnabled, "future", getEnvBool("FUTURE", false), "Serve the /future page")
	flags.BoolVar(&globalConfig.AudienceEnabled, "audience", getEnvBool("AUDIENCE", false), "Show the audience label")
	flags.StringVar(&globalConfig.AudienceFile, "audience-file", getEnvString("AUDIENCE_FILE", server.DefaultAudienceFile), "File whose first line replaces the default audience label")
	flags.BoolVar(&globalConfig.Atomic, "atomic", getEnvBool("ATOMIC", false), "Push and read the visit log in a single transaction")
	flags.DurationVar(&globalConfig.HealthCheckInterval, "health-check-interval", getEnvDuration("HEALTH_CHECK_INTERVAL", server.DefaultHealthCheckInterval), "Interval between store health checks")
	flags.DurationVar(&globalConfig.HealthCheckTimeout, "health-check-timeout", getEnvDuration("HEALTH_CHECK_TIMEOUT", server.DefaultHealthCheckTimeout), "Time each store health check may take")

	return runCommand
}

func (c *runCommand) preRun(cmd *cobra.Command, args []string) error {
	err := c.applyVariant(cmd)
	if err != nil {
		return err
	}

	return globalConfig.Validate()
}

func (c *runCommand) run(cmd *cobra.Command, args []string) error {
	c.setLogger()

	visits, err := globalConfig.OpenStore()
	if err != nil {
		return err
	}

	s := server.NewServer(&globalConfig, visits)
	err = s.Start()
	if err != nil {
		visits.Close()
		return err
	}
	defer s.Stop()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
	<-ch

	return nil
}

// applyVariant fills in the preset's values for every flag that was given
// neither on the command line nor through the environment.
func (c *runCommand) applyVariant(cmd *cobra.Command) error {
	if c.variant == "" {
		return nil
	}

	variant, err := server.LookupVariant(c.variant)
	if err != nil {
		return err
	}

	values := map[string]string{
		"render":           string(variant.Render),
		"timestamp-format": string(variant.TimestampFormat),
		"future":           strconv.FormatBool(variant.FutureEnabled),
		"audience":         strconv.FormatBool(variant.AudienceEnabled),
		"debug":            strconv.FormatBool(variant.Debug),
	}

	envKeys := map[string]string{
		"render":           "RENDER",
		"timestamp-format": "TIMESTAMP_FORMAT",
		"future":           "FUTURE",
		"audience":         "AUDIENCE",
		"debug":            "DEBUG",
	}

	flags := cmd.Flags()
	for name, value := range values {
		if flags.Changed(name) {
			continue
		}
		if _, ok := findEnv(envKeys[name]); ok {
			continue
		}

		err := flags.Set(name, value)
		if err != nil {
			return err
		}
	}

	return nil
}

func (c *runCommand) setLogger() {
	slog.SetDefault(server.NewLogger(globalConfig.Debug, os.Stdout))
}
