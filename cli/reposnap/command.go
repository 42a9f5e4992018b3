package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

type ExecutableCommand interface {
	Command
	Execute(args []string) error
}

type Command interface {
	Name() string
	ShortDescription() string
	LongDescription() string
}

type simpleCommand struct {
	name             string
	shortDescription string
	longDescription  string
}

func newSimpleCommand(name, short, long string) simpleCommand {
	return simpleCommand{
		name:             name,
		shortDescription: short,
		longDescription:  long,
	}
}

func (c *simpleCommand) Name() string { return c.name }

func (c *simpleCommand) ShortDescription() string { return c.shortDescription }

func (c *simpleCommand) LongDescription() string { return c.longDescription }

type command struct {
	simpleCommand
	loggerOpts
}

func newCommand(name, short, long string) command {
	return command{
		simpleCommand: newSimpleCommand(
			name,
			short,
			long,
		),
	}
}

type loggerOpts struct {
	LogLevel  string `long:"loglevel" description:"max log level enabled" default:"info"`
	LogFile   string `long:"logfile" description:"path to file where logs will be stored" default:""`
	LogFormat string `long:"logformat" description:"format used to output the logs (json or text)" default:"text"`
}

// init configures the process logger from the options and returns the
// entry commands should log through.
func (c *loggerOpts) init() *logrus.Entry {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("unknown level name %q", c.LogLevel))
	}

	logger := logrus.New()
	logger.SetLevel(lvl)

	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			panic(fmt.Sprintf("unable to open log file %q: %s", c.LogFile, err))
		}

		logger.SetOutput(f)
	}

	return logrus.NewEntry(logger)
}
