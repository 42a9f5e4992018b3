package reposnap

import (
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"

	"github.com/sirupsen/logrus"
	"gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-errors.v1"
)

// MergedDirName is the subdirectory of the output root that receives the
// merged files. It is excluded from input scanning.
const MergedDirName = "merged"

// ErrMergeFailed signals an I/O failure while producing merged files.
var ErrMergeFailed = errors.NewKind("merging output files failed")

var (
	datedFileRegexp  = regexp.MustCompile(`^\d{6}_.*\.txt$`)
	mergedFileRegexp = regexp.MustCompile(`^merged_\d+\.txt$`)
)

// Merger concatenates dated output files into size-bounded merged files.
// Inputs are read only; all previously merged files are purged before a
// run. Files are packed in byte-wise lexicographic path order and a single
// file is never split across two merged files, even when it alone exceeds
// the size ceiling.
type Merger struct {
	fs      billy.Filesystem
	maxSize int64
	log     *logrus.Entry
}

// NewMerger creates a Merger over a filesystem rooted at the output root,
// with the given merged file size ceiling in bytes.
func NewMerger(fs billy.Filesystem, maxSize int64, log *logrus.Entry) *Merger {
	return &Merger{fs: fs, maxSize: maxSize, log: log}
}

// Merge scans the output root for dated files and writes merged_<k>.txt
// files under the merged subdirectory. With no inputs at all it only warns.
func (m *Merger) Merge() error {
	if err := m.purge(); err != nil {
		return ErrMergeFailed.Wrap(err)
	}

	files, err := m.scan()
	if err != nil {
		return ErrMergeFailed.Wrap(err)
	}

	if len(files) == 0 {
		m.log.Warn("no dated output files found, nothing to merge")
		return nil
	}

	sort.Strings(files)

	if err := m.pack(files); err != nil {
		return ErrMergeFailed.Wrap(err)
	}

	return nil
}

// purge removes merged files left over from previous runs.
func (m *Merger) purge() error {
	entries, err := m.fs.ReadDir(MergedDirName)
	if err != nil {
		// Nothing to purge if the directory is not there yet.
		return nil
	}

	for _, e := range entries {
		if e.IsDir() || !mergedFileRegexp.MatchString(e.Name()) {
			continue
		}

		if err := m.fs.Remove(path.Join(MergedDirName, e.Name())); err != nil {
			return err
		}
	}

	return nil
}

// scan returns the slash-separated paths of every dated file under the
// root, skipping the merged subdirectory.
func (m *Merger) scan() ([]string, error) {
	var files []string

	var walk func(dir string) error
	walk = func(dir string) error {
		entries, err := m.fs.ReadDir(dir)
		if err != nil {
			return err
		}

		for _, e := range entries {
			p := path.Join(dir, e.Name())
			if e.IsDir() {
				if p == MergedDirName {
					continue
				}

				if err := walk(p); err != nil {
					return err
				}

				continue
			}

			if datedFileRegexp.MatchString(e.Name()) {
				files = append(files, p)
			}
		}

		return nil
	}

	if err := walk("."); err != nil {
		return nil, err
	}

	return files, nil
}

func (m *Merger) pack(files []string) error {
	var (
		batch billy.File
		index int
		size  int64
	)

	for _, f := range files {
		fi, err := m.fs.Stat(f)
		if err != nil {
			return err
		}

		if batch != nil && size > 0 && size+fi.Size() > m.maxSize {
			if err := batch.Close(); err != nil {
				return err
			}

			m.log.WithFields(logrus.Fields{"batch": index, "bytes": size}).
				Debug("merged file closed")
			batch = nil
		}

		if batch == nil {
			index++
			size = 0
			batch, err = m.fs.Create(mergedPath(index))
			if err != nil {
				return err
			}
		}

		if err := m.append(batch, f); err != nil {
			_ = batch.Close()
			return err
		}

		size += fi.Size()
	}

	if batch != nil {
		if err := batch.Close(); err != nil {
			return err
		}

		m.log.WithFields(logrus.Fields{"batch": index, "bytes": size}).
			Debug("merged file closed")
	}

	m.log.WithFields(logrus.Fields{"files": len(files), "batches": index}).
		Info("merge finished")
	return nil
}

func (m *Merger) append(batch billy.File, file string) error {
	f, err := m.fs.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(batch, f)
	return err
}

func mergedPath(index int) string {
	return path.Join(MergedDirName, fmt.Sprintf("merged_%d.txt", index))
}
