package catalog

import (
	"content-catalog/feature/catalog/models"

	"go.uber.org/zap"
)

// LiveReferences maps base form IDs to the reference ID of one live instance.
type LiveReferences map[uint32]uint32

// CollectLiveReferences walks the high, middle and low actor tiers in that
// order and records the first live instance seen for each base form. It
// returns the number of entries added.
func CollectLiveReferences(live LiveInstances, into LiveReferences) int {
	if live == nil {
		return 0
	}
	added := 0
	for _, tier := range [][]ActorHandle{live.HighActors(), live.MiddleActors(), live.LowActors()} {
		for _, handle := range tier {
			if handle == nil {
				continue
			}
			base, ref, ok := handle.Resolve()
			if !ok || base == 0 || ref == 0 {
				continue
			}
			if _, exists := into[base]; exists {
				continue
			}
			into[base] = ref
			added++
		}
	}
	return added
}

// MergeInto sets LiveFormID on every NPC record whose form ID has a live
// reference. Records without a match are left untouched. It returns the
// number of records updated.
func MergeInto(npcs []*models.Record, refs LiveReferences) int {
	merged := 0
	for _, rec := range npcs {
		if ref, ok := refs[rec.FormID]; ok {
			rec.LiveFormID = ref
			merged++
		}
	}
	return merged
}

// ScheduleReconciliation posts a one-shot task that collects live actor
// references and merges them into the NPC collection. The host's actor
// lists are only complete after its per-frame bookkeeping, so the work
// cannot run inline. It returns false when the task could not be posted.
func (c *Catalog) ScheduleReconciliation() bool {
	if c.deps.Scheduler == nil {
		c.logger.Warn("No scheduler configured, live references not reconciled")
		return false
	}

	refs := LiveReferences{}
	posted := c.deps.Scheduler.Post(func() {
		if c.closed.Load() {
			c.logger.Debug("Catalog closed, reconciliation skipped")
			return
		}
		found := CollectLiveReferences(c.deps.Live, refs)

		if c.deps.Locker != nil {
			c.deps.Locker.Lock()
			defer c.deps.Locker.Unlock()
		}
		if c.closed.Load() {
			return
		}
		merged := MergeInto(c.records[models.CategoryNPC], refs)
		c.logger.Info("Live references reconciled",
			zap.Int("live_bases", found),
			zap.Int("npcs_merged", merged),
		)
	})
	if !posted {
		c.logger.Warn("Reconciliation task rejected by scheduler")
	}
	return posted
}
