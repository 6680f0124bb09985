package kiroku

import (
	"flag"
	"fmt"
	"path/filepath"
)

// handlePublishCommand uploads the generated build script, its digest
// sidecar, and the newest trace archive to the configured mirror bucket.
// The packaging pipeline on the consuming side fetches from there instead
// of re-running the recorder.
func handlePublishCommand(args []string, cfg *Config, execCtx *Executor) error {
	fs := flag.NewFlagSet("publish", flag.ExitOnError)
	list := fs.Bool("list", false, "list published artifacts instead of uploading")
	fs.Parse(args)

	client, err := NewMirrorClient(cfg)
	if err != nil {
		return err
	}
	ctx := execCtx.Context

	if *list {
		objects, err := client.ListObjects(ctx, "")
		if err != nil {
			return fmt.Errorf("failed to list mirror objects: %w", err)
		}
		if len(objects) == 0 {
			fmt.Println("Mirror is empty.")
			return nil
		}
		for _, obj := range objects {
			fmt.Printf("%s (%d bytes)\n", obj.Key, obj.Size)
		}
		return nil
	}

	if !fileExists(scriptPath) {
		return fmt.Errorf("no build script at %s, run 'kiroku record' first", scriptPath)
	}

	type upload struct {
		key  string
		path string
	}
	uploads := []upload{
		{"scripts/" + filepath.Base(scriptPath), scriptPath},
	}
	if sidecar := scriptPath + ".b3"; fileExists(sidecar) {
		uploads = append(uploads, upload{"scripts/" + filepath.Base(sidecar), sidecar})
	}
	if trace, err := newestTrace(); err == nil {
		uploads = append(uploads, upload{"traces/" + trace.Name, trace.Path})
	}

	for _, u := range uploads {
		arrow("Uploading %s", u.key)
		if err := client.UploadLocalFile(ctx, u.key, u.path); err != nil {
			return fmt.Errorf("failed to upload %s: %w", u.key, err)
		}
	}

	arrow("Published %d artifact(s) to %s", len(uploads), client.BucketName)
	return nil
}
