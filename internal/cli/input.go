package cli

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/apiscope/pkg/errors"
	"github.com/matzehuels/apiscope/pkg/monitor"
	"github.com/matzehuels/apiscope/pkg/observability"
	"github.com/matzehuels/apiscope/pkg/render/tree"
)

// readInput reads a file argument, or the command's stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == stdinArg {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read stdin")
		}
		return data, nil
	}
	if err := errs.ValidateFilePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "%s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read %s", path)
	}
	return data, nil
}

// loadSnapshot reads a snapshot or bare payload and reports the parse.
func loadSnapshot(ctx context.Context, cmd *cobra.Command, path string) (*monitor.Snapshot, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	snap, err := monitor.Decode(path, data)
	observability.View().OnParse(ctx, path, len(data), snapshotNodes(snap), time.Since(start), err)
	return snap, err
}

func snapshotNodes(snap *monitor.Snapshot) int {
	if snap == nil {
		return 0
	}
	n := 0
	for _, a := range snap.APIs {
		n += tree.Count(a.Response)
	}
	for _, p := range snap.Projects {
		n += tree.Count(p.Record)
	}
	return n
}

// pickAPI selects the API to display. Without an ID the snapshot must hold
// exactly one API.
func pickAPI(snap *monitor.Snapshot, id, source string) (monitor.API, error) {
	if id != "" {
		return snap.API(id)
	}
	switch len(snap.APIs) {
	case 0:
		return monitor.API{}, errs.New(errs.ErrCodeNotFound, "no APIs in %s", source)
	case 1:
		return snap.APIs[0], nil
	}
	ids := make([]string, len(snap.APIs))
	for i, a := range snap.APIs {
		ids[i] = a.ID
	}
	return monitor.API{}, errs.New(errs.ErrCodeInvalidInput,
		"%s holds %d APIs; pick one with --api (%s)", source, len(ids), strings.Join(ids, ", "))
}

// pickProject selects a project the same way pickAPI selects an API.
func pickProject(snap *monitor.Snapshot, id, source string) (monitor.Project, error) {
	if id != "" {
		return snap.Project(id)
	}
	switch len(snap.Projects) {
	case 0:
		return monitor.Project{}, errs.New(errs.ErrCodeNotFound, "no projects in %s", source)
	case 1:
		return snap.Projects[0], nil
	}
	ids := make([]string, len(snap.Projects))
	for i, p := range snap.Projects {
		ids[i] = p.ID
	}
	return monitor.Project{}, errs.New(errs.ErrCodeInvalidInput,
		"%s holds %d projects; pick one with --project (%s)", source, len(ids), strings.Join(ids, ", "))
}

// writeOutput writes data to path, or to the command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, t theme, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "write %s", path)
	}
	t.printFile(cmd.ErrOrStderr(), path)
	return nil
}
