package schedule

import (
	"sort"

	"github.com/mfigueroa/obra/internal/domain"
)

// ReorderPlan is the computed effect of dropping a row onto another
// row: a new sibling order, and for child drops a new parent and an
// adopted category path.
type ReorderPlan struct {
	TaskID         string
	Zone           domain.DropZone
	NewParentID    *string
	NewOrder       float64
	Category       string
	Subcategory    string
	Subsubcategory string
}

// ClassifyDrop maps a pointer position within the target row's
// bounding box to a drop intent. Groups expose a nesting zone in the
// middle half; leaves split the row in two.
func ClassifyDrop(targetIsGroup bool, pointerY, rowTop, rowHeight float64) domain.DropZone {
	if rowHeight <= 0 {
		return domain.DropBelow
	}
	frac := (pointerY - rowTop) / rowHeight
	if targetIsGroup {
		switch {
		case frac < 0.25:
			return domain.DropAbove
		case frac >= 0.75:
			return domain.DropBelow
		default:
			return domain.DropChild
		}
	}
	if frac < 0.5 {
		return domain.DropAbove
	}
	return domain.DropBelow
}

// PlanReorder computes where the dragged task lands relative to the
// target. For above/below the new order is the midpoint between the
// target and its neighbor on that side among siblings sharing the
// target's (parent, category) scope, with target.Order ± 1 at a list
// boundary. For child the dragged task nests under the target,
// adopting its category path with order = max(children) + 1.
func PlanReorder(snapshot []*domain.Task, dragged, target *domain.Task, zone domain.DropZone) ReorderPlan {
	plan := ReorderPlan{TaskID: dragged.ID, Zone: zone}

	if zone == domain.DropChild {
		parentID := target.ID
		plan.NewParentID = &parentID
		plan.Category = target.Category
		plan.Subcategory = target.Subcategory
		plan.Subsubcategory = target.Subsubcategory
		plan.NewOrder = nextChildOrder(snapshot, target.ID)
		return plan
	}

	// The dragged task joins the target's sibling scope.
	plan.NewParentID = target.ParentID
	plan.Category = target.Category
	plan.Subcategory = target.Subcategory
	plan.Subsubcategory = target.Subsubcategory

	siblings := siblingsOf(snapshot, target, dragged.ID)
	idx := -1
	for i, s := range siblings {
		if s.ID == target.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		plan.NewOrder = target.Order
		return plan
	}

	switch zone {
	case domain.DropAbove:
		if idx == 0 {
			plan.NewOrder = target.Order - 1
		} else {
			plan.NewOrder = (siblings[idx-1].Order + target.Order) / 2
		}
	default: // below
		if idx == len(siblings)-1 {
			plan.NewOrder = target.Order + 1
		} else {
			plan.NewOrder = (target.Order + siblings[idx+1].Order) / 2
		}
	}
	return plan
}

// NextSiblingOrder returns the order for a task appended to the end of
// a (parent, category) scope: max(existing sibling orders) + 1, or 1
// for the first entry.
func NextSiblingOrder(snapshot []*domain.Task, parentID *string, category string) float64 {
	max := 0.0
	found := false
	for _, t := range snapshot {
		if !sameParent(t.ParentID, parentID) || t.Category != category {
			continue
		}
		if !found || t.Order > max {
			max = t.Order
			found = true
		}
	}
	return max + 1
}

func nextChildOrder(snapshot []*domain.Task, parentID string) float64 {
	return NextSiblingOrder(snapshot, &parentID, childCategory(snapshot, parentID))
}

// childCategory returns the category shared by a group's children; a
// child drop adopts the target's own category, so the target's value
// is the scope key.
func childCategory(snapshot []*domain.Task, parentID string) string {
	for _, t := range snapshot {
		if t.ID == parentID {
			return t.Category
		}
	}
	return ""
}

func siblingsOf(snapshot []*domain.Task, target *domain.Task, excludeID string) []*domain.Task {
	var siblings []*domain.Task
	for _, t := range snapshot {
		if t.ID == excludeID {
			continue
		}
		if sameParent(t.ParentID, target.ParentID) && t.Category == target.Category {
			siblings = append(siblings, t)
		}
	}
	sort.SliceStable(siblings, func(i, j int) bool {
		if siblings[i].Order != siblings[j].Order {
			return siblings[i].Order < siblings[j].Order
		}
		return siblings[i].ID < siblings[j].ID
	})
	return siblings
}

func sameParent(a, b *string) bool {
	av, bv := "", ""
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}
