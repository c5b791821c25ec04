package icons

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"appicons/pngenc"
	"appicons/raster"
)

// save encodes buf into a temporary file next to the destination and
// renames it into place only once the data is flushed. On any failure the
// temporary file is removed and destName is left untouched.
func save(enc *pngenc.Encoder, buf *raster.Buffer, destDir, destName string) (err error) {
	outFile, err := os.CreateTemp(destDir, "."+destName+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	tmpName := outFile.Name()

	canRename := false
	defer func() {
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", destName, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(tmpName, filepath.Join(destDir, destName)); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", destName, defErr)
			} else {
				return
			}
		}

		if defErr := os.Remove(tmpName); defErr != nil {
			slog.Error("could not remove temporary file", "name", tmpName, "error", defErr)
		}
	}()

	if err = outFile.Chmod(0o644); err != nil {
		return fmt.Errorf("could not set permissions on %q: %w", destName, err)
	}

	if err = enc.Encode(outFile, buf.Width, buf.Height, buf.Pix); err != nil {
		return fmt.Errorf("could not encode PNG destination %q: %w", destName, err)
	}

	if err = outFile.Sync(); err != nil {
		return fmt.Errorf("could not flush temporary destination %q: %w", destName, err)
	}

	canRename = true
	return nil
}
