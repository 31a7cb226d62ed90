package videos

import (
	"context"
	"log"

	"github.com/killallgit/labeler/internal/services/annotations"
)

// CountHook keeps the registry's annotation count in step with the session.
// Registry failures are logged and never fail the mutation.
func CountHook(svc Service) annotations.MutationHook {
	return func(ev annotations.ChangeEvent) {
		if ev.VideoPath == "" {
			return
		}
		if err := svc.RecordAnnotationCount(context.Background(), ev.VideoPath, len(ev.Annotations)); err != nil {
			log.Printf("[WARN] Failed to update annotation count for %s: %v", ev.VideoPath, err)
		}
	}
}
