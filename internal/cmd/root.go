package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/basecamp/visit-recorder/internal/server"
)

var globalConfig server.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "visit-recorder",
	Short:        "Record every visit in a shared list and show it back",
	SilenceUsage: true,
}

func Execute() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar((*string)(&globalConfig.Store), "store", getEnvString("STORE", string(server.StoreRedis)), "Where to keep the visit log (redis, memory)")
	flags.StringVar(&globalConfig.RedisHost, "redis-host", getEnvString("REDIS_HOST", server.DefaultRedisHost), "Redis host")
	flags.IntVar(&globalConfig.RedisPort, "redis-port", getEnvInt("REDIS_PORT", server.DefaultRedisPort), "Redis port")
	flags.StringVar(&globalConfig.RedisPassword, "redis-password", getEnvString("REDIS_PASSWORD", ""), "Redis password")
	flags.IntVar(&globalConfig.RedisDB, "redis-db", getEnvInt("REDIS_DB", 0), "Redis database number")
	flags.StringVar(&globalConfig.ListKey, "list-key", getEnvString("LIST_KEY", server.DefaultListKey), "Key of the list holding the visit log")

	rootCmd.AddCommand(newRunCommand().cmd)
	rootCmd.AddCommand(newListCommand().cmd)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
