package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ak7sky/cidrsum/internal/config"
	"github.com/ak7sky/cidrsum/internal/core/model"
	"github.com/spf13/cobra"
)

const usageLine = "cidrsum <input_path> <prefix> [output_path] [--exclude <exclusion_path>]"

const examples = `  cidrsum network.txt 16
  cidrsum network.txt 24 output.txt
  cidrsum network.txt 16 --exclude exclusions.txt
  cidrsum network.txt 24 output.txt --exclude exclusions.txt`

// NewRootCmd returns the command that parses the command line into a Config and
// hands it to run. Usage problems are reported as model.ErrUsage.
func NewRootCmd(run func(cfg config.Config) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   usageLine,
		Short: "Group IPv4 addresses into /16 or /24 blocks and count hosts per block",
		Long: "Reads one IPv4 address per line from <input_path>, drops the addresses listed in the\n" +
			"exclusion file, groups the rest by /<prefix> (16 or 24) and prints host counts per block.\n" +
			"The report goes to [output_path] when given, to stdout otherwise.",
		Example:       examples,
		Args:          argsValidator,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args, cmd.Flags())
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	cmd.Flags().String(config.ExcludeKey, "", "file with addresses to leave out (env CIDRSUM_EXCLUDE)")
	cmd.Flags().String(config.LogLevelKey, config.DefaultLogLevel,
		"log level: debug, info, warn or error (env CIDRSUM_LOG_LEVEL)")
	cmd.Flags().String(config.LogFileKey, "", "write logs to this rotated file instead of stderr (env CIDRSUM_LOG_FILE)")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", model.ErrUsage, err)
	})

	return cmd
}

func argsValidator(_ *cobra.Command, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: expected <input_path> <prefix> [output_path], got %d arguments",
			model.ErrUsage, len(args))
	}
	return nil
}

// Execute runs cmd with args. A negative prefix such as -16 would otherwise be
// taken for shorthand flags, so it is rejected up front as an unsupported prefix.
func Execute(cmd *cobra.Command, args []string) error {
	if err := rejectNegativePrefix(args); err != nil {
		return err
	}
	cmd.SetArgs(args)
	return cmd.Execute()
}

var valueFlags = map[string]bool{
	"--" + config.ExcludeKey:  true,
	"--" + config.LogLevelKey: true,
	"--" + config.LogFileKey:  true,
}

func rejectNegativePrefix(args []string) error {
	for i, arg := range args {
		if arg == "--" {
			return nil
		}
		if !strings.HasPrefix(arg, "-") || (i > 0 && valueFlags[args[i-1]]) {
			continue
		}
		prefix, err := strconv.Atoi(arg)
		if err != nil {
			continue
		}
		_, err = model.ValidateMaskLen(prefix)
		return err
	}
	return nil
}
