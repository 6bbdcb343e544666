package ir

import (
	"github.com/flatbyte/bfc/internal/config"
	"github.com/flatbyte/bfc/internal/diag"
	"github.com/flatbyte/bfc/internal/srcpos"
)

// OptimizationInfo is the optimizer's non-mutating analysis output,
// per spec.md section 3.
type OptimizationInfo struct {
	// FirstInputOp is the earliest Input node, or nil if the program
	// never reads input.
	FirstInputOp *Op
	// OverflowOps lists Mutate/Move nodes whose N statically exceeds
	// the configured cell width's representable range.
	OverflowOps []*Op
}

// Optimize prunes Mutate(0)/Move(0) nodes and merges adjacent
// same-kind coalescable nodes to a fixpoint, then runs the
// non-mutating analysis pass. Returns the (possibly new) head.
func Optimize(head *Op, src *srcpos.Source, lg *diag.Logger, cfg config.Config) (*Op, *OptimizationInfo) {
	for {
		var prunedAny, mergedAny bool
		head, prunedAny = prune(head, src, lg)
		head, mergedAny = merge(head)
		if !prunedAny && !mergedAny {
			break
		}
	}
	return head, analyze(head, src, lg, cfg)
}

// isPrunable reports whether o is a no-op Mutate(0)/Move(0) node
// arising from coalesced cancellation (e.g. "+-").
func isPrunable(o *Op) bool {
	return (o.Kind == Mutate || o.Kind == Move) && o.N == 0
}

// prune deletes every Mutate(0)/Move(0) node, logging a warning at
// each deleted node's source position. Head deletion is handled
// specially since there is no predecessor to relink.
func prune(head *Op, src *srcpos.Source, lg *diag.Logger) (*Op, bool) {
	changed := false
	for head != nil && isPrunable(head) {
		lg.WarnAt(src.At(head.SrcStart), "pruning %s(0) at offset %d", head.Kind, head.SrcStart)
		head = head.Next
		changed = true
	}
	if head == nil {
		return nil, changed
	}
	for cur := head; cur.Next != nil; {
		if isPrunable(cur.Next) {
			lg.WarnAt(src.At(cur.Next.SrcStart), "pruning %s(0) at offset %d", cur.Next.Kind, cur.Next.SrcStart)
			cur.Next = cur.Next.Next
			changed = true
			continue
		}
		cur = cur.Next
	}
	return head, changed
}

// merge splices together adjacent nodes of the same coalescable kind,
// per spec.md section 4.3.
func merge(head *Op) (*Op, bool) {
	changed := false
	for cur := head; cur != nil && cur.Next != nil; {
		next := cur.Next
		if cur.Kind.Coalescable() && cur.Kind == next.Kind {
			cur.N += next.N
			cur.SrcEnd = next.SrcEnd
			cur.Next = next.Next
			changed = true
			continue
		}
		cur = cur.Next
	}
	return head, changed
}

// analyze runs the optimizer's non-mutating analysis: locating the
// first input-dependent op and flagging statically-overflowing
// Mutate/Move nodes.
func analyze(head *Op, src *srcpos.Source, lg *diag.Logger, cfg config.Config) *OptimizationInfo {
	info := &OptimizationInfo{}
	max := cfg.MaxCellValue()
	for o := head; o != nil; o = o.Next {
		if info.FirstInputOp == nil && o.Kind == Input {
			info.FirstInputOp = o
		}
		if o.Kind == Mutate || o.Kind == Move {
			if int64(o.N) > max || int64(o.N) < -max {
				info.OverflowOps = append(info.OverflowOps, o)
				switch cfg.OverflowBehavior {
				case config.OverflowAbort:
					lg.WarnAt(src.At(o.SrcStart), "%s(%d) exceeds cell range, will deterministically trap", o.Kind, o.N)
				case config.OverflowCap:
					lg.InfoAt(src.At(o.SrcStart), "%s(%d) exceeds cell range, capping", o.Kind, o.N)
				}
			}
		}
	}
	return info
}
