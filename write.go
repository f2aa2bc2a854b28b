// Write primitive.
//
// Every save goes through write: one create-or-truncate open and one
// Write call for the full content. The file is fsynced before close when
// Config.SyncWrites is set. Nothing is staged in a temporary file, so a
// failure part way through can leave the destination truncated.
package libstore

import (
	"errors"
	"os"
)

func (s *Store) write(full string, data []byte) error {
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, s.config.FileMode)
	if err != nil {
		return err
	}
	_, werr := f.Write(data)
	var serr error
	if werr == nil && s.config.SyncWrites {
		serr = f.Sync()
	}
	cerr := f.Close()
	return errors.Join(werr, serr, cerr)
}
