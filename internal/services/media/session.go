package media

import (
	"log"

	"github.com/killallgit/labeler/internal/services/annotations"
)

// SessionHashUpdater returns a ChangeFunc that refreshes the session's video
// fingerprint when the file it is labeling changes. Changes to a video the
// session has since moved away from are ignored, and so is hash 0, which
// means the file could not be read.
func SessionHashUpdater(session *annotations.Session) ChangeFunc {
	return func(path string, hash int32) {
		if hash == 0 || session.VideoPath() != path {
			return
		}
		log.Printf("[INFO] Updating session video hash to %d", hash)
		session.SetVideoHash(hash)
	}
}
