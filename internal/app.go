package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/ak7sky/cidrsum/internal/cli"
	"github.com/ak7sky/cidrsum/internal/config"
	"github.com/ak7sky/cidrsum/internal/core"
	"github.com/ak7sky/cidrsum/internal/core/model"
	"github.com/ak7sky/cidrsum/internal/core/service"
	"github.com/ak7sky/cidrsum/internal/core/storage/file"
	"github.com/ak7sky/cidrsum/internal/core/storage/mem"
	"github.com/ak7sky/cidrsum/internal/logger"
	"github.com/ak7sky/cidrsum/internal/report"
)

// Run executes the command line and returns the process exit code.
func Run(args []string) int {
	if args == nil {
		args = []string{}
	}
	cmd := cli.NewRootCmd(summarize)

	if err := cli.Execute(cmd, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, model.ErrUsage) {
			fmt.Fprint(os.Stderr, cmd.UsageString())
		}
		return 1
	}
	return 0
}

func summarize(cfg config.Config) error {
	logOut := logger.Output(cfg.LogFile)
	defer logOut.Close()
	appLogger := logger.NewLogger(cfg.LogLevel, logOut)

	srv := service.WithLogging(appLogger, service.New(
		file.NewAddrFileStorage(),
		func() core.BucketStorage { return mem.NewBktMemStorage() },
	))

	summary, err := srv.Summarize(model.Request{
		InputPath:   cfg.InputPath,
		ExcludePath: cfg.ExcludePath,
		MaskLen:     cfg.Prefix,
	})
	if err != nil {
		return err
	}

	if cfg.OutputPath == "" {
		return writeReport(summary, report.NewStdoutSink())
	}

	sink, err := report.NewFileSink(cfg.OutputPath)
	if err != nil {
		return err
	}
	if err = writeReport(summary, sink); err != nil {
		return err
	}
	appLogger.Debug("report written to %s", cfg.OutputPath)
	return report.Confirm(os.Stdout, summary, cfg.OutputPath)
}

func writeReport(summary *model.Report, sink report.Sink) error {
	if err := report.Write(summary, sink); err != nil {
		_ = sink.Close()
		return err
	}
	return sink.Close()
}
