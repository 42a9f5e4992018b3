package main

import (
	"path/filepath"

	"github.com/zevorn/reposnap"

	"gopkg.in/src-d/go-billy.v4/osfs"
)

const (
	mergeCmdName      = "merge"
	mergeCmdShortDesc = "merge the dated files of an existing output tree"
	mergeCmdLongDesc  = `Re-runs only the merge stage over an output tree produced by a previous
run, purging any previously merged files first.`
)

var mergeCommand = &mergeCmd{command: newCommand(
	mergeCmdName,
	mergeCmdShortDesc,
	mergeCmdLongDesc,
)}

type mergeCmd struct {
	command

	Output       string `short:"o" long:"output" required:"true" description:"output root directory"`
	MaxBatchSize int64  `long:"max-batch-size" default:"8388608" description:"maximum merged file size in bytes"`
}

func (c *mergeCmd) Execute(args []string) error {
	log := c.init()

	output, err := filepath.Abs(c.Output)
	if err != nil {
		return err
	}

	merger := reposnap.NewMerger(osfs.New(output), c.MaxBatchSize, log)
	return merger.Merge()
}

func init() {
	_, err := parser.AddCommand(
		mergeCommand.Name(),
		mergeCommand.ShortDescription(),
		mergeCommand.LongDescription(),
		mergeCommand)

	if err != nil {
		panic(err)
	}
}
