package cmd

import (
	"os"

	"github.com/relex/gotils/logger"
	"github.com/relex/slog-protocol/defs"
	"github.com/relex/slog-protocol/run"
	"github.com/relex/slog-protocol/util"
)

type renderCommandState struct {
	Config string `help:"Configuration file path"`
	Input  string `help:"Protocol document file path"`
}

var renderCmd renderCommandState = renderCommandState{
	Config: "config.yml",
	Input:  "",
}

func (cmd *renderCommandState) run(args []string) {
	if cmd.Input == "" {
		logger.Fatal("--input is required")
	}
	rlogger := logger.WithField(defs.LabelFile, cmd.Input)

	loader, err := run.NewLoaderFromConfigFile(cmd.Config, "slogprotocol_")
	if err != nil {
		logger.Fatal(err)
	}
	p, err := loader.LoadDocumentFile(cmd.Input)
	if err != nil {
		rlogger.Fatalf("%s", err)
	}
	if err := loader.Render(os.Stdout, p); err != nil {
		rlogger.Fatalf("failed to render: %s", err)
	}
	rlogger.Infof("rendered %d of %d added messages", p.Count(loader.GetLevelLimit(), loader.Filter.Matcher()),
		int(util.SumMetricValues(loader.Factory.MessageCounter())))
}
