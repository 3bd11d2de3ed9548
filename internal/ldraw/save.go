package ldraw

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// SaveResult lists the files a save wrote and the ones it could not.
type SaveResult struct {
	Written  []string   `json:"written" yaml:"written"`
	Failures []*IOError `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Save writes the document to path in the form it was loaded in.
//
// A multi-part document is written as one file holding every model that was not
// generated, in load order. A document of separate files writes each modified model
// to its own file: the top level model to path, the others next to it. A model that
// cannot be written does not stop the others; the returned error joins the failures.
func (r *Registry) Save(path string) (SaveResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res SaveResult
	if r.topLevel() == "" {
		return res, ErrNoTopLevel
	}

	if r.mpd {
		if err := r.saveMPD(path); err != nil {
			res.Failures = append(res.Failures, err)
			return res, err
		}
		res.Written = append(res.Written, path)
		for _, f := range r.files {
			f.Modified = false
		}
		r.log.Info("Saved document", "path", path, "models", len(r.order))
		return res, nil
	}

	dir := filepath.Dir(path)
	var errs []error
	for i, k := range r.order {
		f := r.files[k]
		if f.Generated || !f.Modified {
			continue
		}
		target := path
		if i > 0 {
			target = filepath.Join(dir, filepath.FromSlash(strings.ReplaceAll(f.Name, "\\", "/")))
		}
		if err := writeLines(target, f.Contents); err != nil {
			res.Failures = append(res.Failures, err)
			errs = append(errs, err)
			r.log.Error("Save failed", "model", f.Name, "path", target, "err", err.Err)
			continue
		}
		f.Modified = false
		res.Written = append(res.Written, target)
	}
	r.log.Info("Saved document", "path", path, "written", len(res.Written), "failed", len(res.Failures))
	return res, errors.Join(errs...)
}

func (r *Registry) saveMPD(path string) *IOError {
	var lines []string
	for _, k := range r.order {
		f := r.files[k]
		if f.Generated {
			continue
		}
		lines = append(lines, "0 FILE "+f.Name)
		lines = append(lines, f.Contents...)
		lines = append(lines, "0 NOFILE")
	}
	return writeLines(path, lines)
}

func writeLines(path string, lines []string) *IOError {
	file, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}

	w := bufio.NewWriter(file)
	for _, line := range lines {
		w.WriteString(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := file.Close(); err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}
	return nil
}
