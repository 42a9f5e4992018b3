package reposnap

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrMissingCollaborator signals that the external extraction tool
	// does not exist.
	ErrMissingCollaborator = errors.NewKind("extraction tool %s does not exist")

	// ErrMissingMarker signals that the marker file the extraction tool
	// reads is not present in the working copy.
	ErrMissingMarker = errors.NewKind("marker file %s not found")

	// ErrExtractFailed signals a nonzero exit of the extraction tool.
	ErrExtractFailed = errors.NewKind("extraction for %s failed")
)

// Extractor turns a checked out working copy into dated text files under
// an output directory. The output directory is empty when Extract is
// called; the start date is the exclusive lower bound for content
// selection, its exact semantics belong to the implementation.
type Extractor interface {
	Extract(ctx context.Context, repoPath string, start Date, outDir string) error
}

// NewScriptExtractor returns an Extractor that runs an external tool with
// the output directory, the start date and the path of a marker file
// inside the repository as arguments. marker is relative to the
// repository root.
func NewScriptExtractor(script, marker string, log *logrus.Entry) (Extractor, error) {
	abs, err := filepath.Abs(script)
	if err != nil {
		return nil, err
	}

	if fi, err := os.Stat(abs); err != nil || fi.IsDir() {
		return nil, ErrMissingCollaborator.New(script)
	}

	return &scriptExtractor{script: abs, marker: marker, log: log}, nil
}

type scriptExtractor struct {
	script string
	marker string
	log    *logrus.Entry
}

func (e *scriptExtractor) Extract(ctx context.Context, repoPath string, start Date, outDir string) error {
	markerPath := filepath.Join(repoPath, e.marker)
	if _, err := os.Stat(markerPath); err != nil {
		return ErrMissingMarker.New(markerPath)
	}

	cmd := exec.CommandContext(ctx, e.script, outDir, start.String(), markerPath)

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	e.log.WithFields(logrus.Fields{
		"tool":  e.script,
		"input": markerPath,
		"start": start.String(),
	}).Info("running extraction")

	if err := cmd.Run(); err != nil {
		e.log.WithField("output", output.String()).Error("extraction tool failed")
		return ErrExtractFailed.Wrap(err, repoPath)
	}

	return nil
}
