package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/satori/go.uuid"
	"github.com/zevorn/reposnap"

	"gopkg.in/src-d/go-queue.v1/memory"
)

const (
	runCmdName      = "run"
	runCmdShortDesc = "synchronize, check out and extract every repository, then merge"
	runCmdLongDesc  = `Brings a working copy of every given repository to the last commit at or
before the end date, runs the extraction tool over it, and merges all dated
output files into size-bounded merged files under <output>/merged.

Repository specs are given as name=url or as a bare url, in which case the
name is derived from the url.`
)

var runCommand = &runCmd{command: newCommand(
	runCmdName,
	runCmdShortDesc,
	runCmdLongDesc,
)}

type runCmd struct {
	command

	Output       string `short:"o" long:"output" required:"true" description:"output root directory"`
	WorkDir      string `short:"w" long:"workdir" default:"repos" description:"directory holding the working copies"`
	From         string `long:"from" required:"true" description:"inclusive start date, YYYYMMDD"`
	To           string `long:"to" required:"true" description:"inclusive end date, YYYYMMDD"`
	Extractor    string `long:"extractor" required:"true" description:"path to the extraction tool"`
	Marker       string `long:"marker" default:"m" description:"marker file the extraction tool reads, relative to the repository root"`
	MaxBatchSize int64  `long:"max-batch-size" default:"8388608" description:"maximum merged file size in bytes"`

	Args struct {
		Specs []string `positional-arg-name:"repo" required:"1" description:"repository spec, name=url or url"`
	} `positional-args:"true"`
}

func (c *runCmd) Execute(args []string) error {
	log := c.init().WithField("run", uuid.Must(uuid.NewV4()).String())

	start, err := reposnap.ParseDate(c.From)
	if err != nil {
		return err
	}

	end, err := reposnap.ParseDate(c.To)
	if err != nil {
		return err
	}

	if start.After(end) {
		return fmt.Errorf("start date %s is after end date %s", start, end)
	}

	specs, err := reposnap.ParseSpecs(c.Args.Specs)
	if err != nil {
		return err
	}

	work, err := reposnap.NewWorkDir(c.WorkDir)
	if err != nil {
		return err
	}

	extractor, err := reposnap.NewScriptExtractor(c.Extractor, c.Marker, log)
	if err != nil {
		return err
	}

	output, err := filepath.Abs(c.Output)
	if err != nil {
		return err
	}

	broker := memory.New()
	defer broker.Close()

	q, err := broker.Queue("jobs")
	if err != nil {
		return fmt.Errorf("unable to start an in-memory queue: %s", err)
	}

	executor := reposnap.NewExecutor(
		log,
		q,
		reposnap.NewSynchronizer(work, log),
		extractor,
		output,
		start,
		end,
		c.MaxBatchSize,
	)

	return executor.Execute(context.Background(), reposnap.NewSpecJobIter(specs))
}

func init() {
	_, err := parser.AddCommand(
		runCommand.Name(),
		runCommand.ShortDescription(),
		runCommand.LongDescription(),
		runCommand)

	if err != nil {
		panic(err)
	}
}
