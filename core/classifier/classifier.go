// Package classifier decides how a single tab drag (fromIdx, toIdx) over
// the current visual tab strip should be realized: left alone, written as
// tab_order metadata, carried out as a physical rearrangement of Sheets
// and Document sections, or some combination of the two.
//
// Sheets live inside one contiguous Workbook block and Documents live
// outside it, so no physical move can interleave a Document between two
// Sheets, and a Sheet can never leave the block on its own — only the
// whole Workbook can cross a Document boundary. Dragging a Sheet across
// such a boundary is realized by relocating the Workbook relative to the
// Document rather than the Document itself, so the physical move always
// matches the kind of tab the caller actually dragged.
package classifier

import (
	"github.com/vinodismyname/mdsheet/core/model"
	"github.com/vinodismyname/mdsheet/core/taborder"
)

// ActionType is the shape of work the executor must carry out.
type ActionType string

const (
	NoOp             ActionType = "no-op"
	Metadata         ActionType = "metadata"
	Physical         ActionType = "physical"
	PhysicalMetadata ActionType = "physical+metadata"
)

// MoveKind names the physical primitive a PhysicalMove dispatches to.
type MoveKind string

const (
	MoveSheetKind    MoveKind = "move-sheet"
	MoveDocumentKind MoveKind = "move-document"
	MoveWorkbookKind MoveKind = "move-workbook"
)

// WorkbookDirection is which side of a Document the Workbook settles on.
type WorkbookDirection string

const (
	WorkbookAfterDoc  WorkbookDirection = "after-doc"
	WorkbookBeforeDoc WorkbookDirection = "before-doc"
)

// PhysicalMove is one call to a text- or tree-level move primitive.
// Only the fields relevant to Kind are populated.
type PhysicalMove struct {
	Kind MoveKind

	// MoveSheetKind: positions within the Sheets list, post-removal.
	SheetFrom int
	SheetTo   int

	// MoveDocumentKind: DocFrom/DocTo are global document indices (file
	// order across both zones); DocTo follows docops.MoveDocumentSection's
	// own pre-removal gap convention and is ignored when either flag
	// below is set.
	DocFrom       int
	DocTo         int
	DocToAfterWB  bool
	DocToBeforeWB bool

	// MoveWorkbookKind: settle the Workbook immediately before/after the
	// Document at TargetDocIndex (a global document index).
	Direction      WorkbookDirection
	TargetDocIndex int
}

// Action is the decision reached for one drag.
type Action struct {
	Type ActionType

	// PhysicalMove is the primary relocation; SecondaryMove is only ever
	// populated alongside a MoveWorkbookKind primary move, when the
	// dragged Sheet also needs repositioning inside the relocated block.
	PhysicalMove  *PhysicalMove
	SecondaryMove *PhysicalMove

	// NewTabOrder is nil when MetadataRequired is false, meaning any
	// existing tab_order should be deleted rather than rewritten.
	NewTabOrder      []model.TabOrderItem
	MetadataRequired bool
}

// Classify decides the Action for dragging the tab at fromIdx to land at
// the gap toIdx (0..len(tabs)) within tabs, the current visual order.
func Classify(tabs []model.TabOrderItem, fromIdx, toIdx int, fs model.FileStructure) Action {
	n := len(tabs)
	if n == 0 {
		return Action{Type: NoOp}
	}
	fromIdx = clamp(fromIdx, 0, n-1)
	toIdx = clamp(toIdx, 0, n)

	dest := toIdx
	if toIdx > fromIdx {
		dest--
	}
	dest = clamp(dest, 0, n-1)

	if dest == fromIdx {
		return Action{Type: NoOp}
	}

	moved := tabs[fromIdx]
	desired := removeAndInsert(tabs, fromIdx, dest)

	before, sheetRun, after, ok := analyzeShape(desired)
	if !ok {
		return planInterleaved(moved, desired, fs)
	}

	targetFS := model.FileStructure{
		DocsBeforeWB: before,
		Sheets:       sheetRun,
		DocsAfterWB:  after,
		HasWorkbook:  fs.HasWorkbook,
	}

	if moved.Kind == model.KindDocument {
		return planDocumentMove(moved, fs, targetFS, desired)
	}
	return planSheetMove(moved, fs, targetFS, desired)
}

// planDocumentMove handles a Document drag that keeps the result
// physically representable: a single MoveDocument, possibly crossing the
// Workbook boundary via the after/before flags.
func planDocumentMove(moved model.TabOrderItem, fs, targetFS model.FileStructure, desired []model.TabOrderItem) Action {
	oldOrder := globalDocOrder(fs)
	newOrder := globalDocOrder(targetFS)
	globalFrom := indexOfInt(oldOrder, moved.Index)

	wasBefore := containsInt(fs.DocsBeforeWB, moved.Index)
	willBeBefore := containsInt(targetFS.DocsBeforeWB, moved.Index)

	pm := &PhysicalMove{Kind: MoveDocumentKind, DocFrom: globalFrom}
	switch {
	case wasBefore && !willBeBefore:
		pm.DocToAfterWB = true
	case !wasBefore && willBeBefore:
		pm.DocToBeforeWB = true
		pm.DocTo = posWithin(targetFS.DocsBeforeWB, moved.Index) + 1
	default:
		p := indexOfInt(newOrder, moved.Index)
		pm.DocTo = preRemovalGap(globalFrom, p)
	}

	newFS := model.FileStructure{
		DocsBeforeWB: targetFS.DocsBeforeWB,
		Sheets:       fs.Sheets,
		DocsAfterWB:  targetFS.DocsAfterWB,
		HasWorkbook:  fs.HasWorkbook,
	}
	return finalizePhysical(pm, nil, newFS, desired)
}

// planSheetMove handles a Sheet drag that keeps the result physically
// representable: a pure in-block MoveSheet when no Document crosses the
// Workbook boundary, or a Workbook normalization (plus, if the Sheet also
// needs repositioning inside the block, a secondary MoveSheet) when one
// does.
func planSheetMove(moved model.TabOrderItem, fs, targetFS model.FileStructure, desired []model.TabOrderItem) Action {
	sheetFrom := posWithin(fs.Sheets, moved.Index)
	sheetTo := posWithin(targetFS.Sheets, moved.Index)

	if intSetEqual(fs.DocsBeforeWB, targetFS.DocsBeforeWB) {
		pm := &PhysicalMove{Kind: MoveSheetKind, SheetFrom: sheetFrom, SheetTo: sheetTo}
		newFS := model.FileStructure{
			DocsBeforeWB: fs.DocsBeforeWB,
			Sheets:       targetFS.Sheets,
			DocsAfterWB:  fs.DocsAfterWB,
			HasWorkbook:  fs.HasWorkbook,
		}
		return finalizePhysical(pm, nil, newFS, desired)
	}

	pm := workbookNormalizationMove(fs, targetFS)
	var secondary *PhysicalMove
	if sheetFrom != sheetTo {
		secondary = &PhysicalMove{Kind: MoveSheetKind, SheetFrom: sheetFrom, SheetTo: sheetTo}
	}
	newFS := model.FileStructure{
		DocsBeforeWB: targetFS.DocsBeforeWB,
		Sheets:       targetFS.Sheets,
		DocsAfterWB:  targetFS.DocsAfterWB,
		HasWorkbook:  fs.HasWorkbook,
	}
	return finalizePhysical(&pm, secondary, newFS, desired)
}

// workbookNormalizationMove finds which Document crossed the Workbook
// boundary between fs and targetFS and settles the Workbook immediately
// on the far side of it.
func workbookNormalizationMove(fs, targetFS model.FileStructure) PhysicalMove {
	oldBefore := intSet(fs.DocsBeforeWB)
	newBefore := intSet(targetFS.DocsBeforeWB)
	order := globalDocOrder(fs)

	var crossedToBefore, crossedToAfter []int
	for id := range newBefore {
		if !oldBefore[id] {
			crossedToBefore = append(crossedToBefore, id)
		}
	}
	for id := range oldBefore {
		if !newBefore[id] {
			crossedToAfter = append(crossedToAfter, id)
		}
	}

	switch {
	case len(crossedToBefore) > 0:
		target := lastByOrder(order, crossedToBefore)
		return PhysicalMove{Kind: MoveWorkbookKind, Direction: WorkbookAfterDoc, TargetDocIndex: indexOfInt(order, target)}
	case len(crossedToAfter) > 0:
		target := firstByOrder(order, crossedToAfter)
		return PhysicalMove{Kind: MoveWorkbookKind, Direction: WorkbookBeforeDoc, TargetDocIndex: indexOfInt(order, target)}
	default:
		if len(order) == 0 {
			return PhysicalMove{Kind: MoveWorkbookKind, Direction: WorkbookAfterDoc, TargetDocIndex: 0}
		}
		return PhysicalMove{Kind: MoveWorkbookKind, Direction: WorkbookAfterDoc, TargetDocIndex: len(order) - 1}
	}
}

// planInterleaved handles a drag whose desired order cannot be expressed
// by a single contiguous Sheet run. A Sheet dragged past every Document on
// one side is rescued by the compound Workbook-normalization plan; every
// other shape falls back to a best-effort physical move plus tab_order.
func planInterleaved(moved model.TabOrderItem, desired []model.TabOrderItem, fs model.FileStructure) Action {
	if moved.Kind == model.KindSheet {
		if action, ok := planSheetPastAllDocs(moved, desired, fs); ok {
			return action
		}
	}
	return bestEffortPlan(moved, desired, fs)
}

// planSheetPastAllDocs recognizes a dragged Sheet sitting at either
// extreme of desired, with every other tab still forming a valid
// contiguous-Sheet shape on its own: the compound plan relocates the
// Workbook past every Document on that side and moves the dragged Sheet
// to the matching end of the block.
func planSheetPastAllDocs(moved model.TabOrderItem, desired []model.TabOrderItem, fs model.FileStructure) (Action, bool) {
	rest := removeItem(desired, moved)
	_, restSheets, _, ok := analyzeShape(rest)
	if !ok || len(restSheets) == 0 {
		return Action{}, false
	}
	pos := indexOfTab(desired, moved)
	order := globalDocOrder(fs)
	if len(order) == 0 || (pos != 0 && pos != len(desired)-1) {
		return Action{}, false
	}

	sheetFrom := posWithin(fs.Sheets, moved.Index)
	if sheetFrom < 0 {
		return Action{}, false
	}

	var pm PhysicalMove
	var newFS model.FileStructure
	if pos == len(desired)-1 {
		last := order[len(order)-1]
		pm = PhysicalMove{Kind: MoveWorkbookKind, Direction: WorkbookAfterDoc, TargetDocIndex: indexOfInt(order, last)}
		newFS = model.FileStructure{DocsBeforeWB: order, Sheets: moveToEnd(fs.Sheets, moved.Index), HasWorkbook: fs.HasWorkbook}
	} else {
		first := order[0]
		pm = PhysicalMove{Kind: MoveWorkbookKind, Direction: WorkbookBeforeDoc, TargetDocIndex: indexOfInt(order, first)}
		newFS = model.FileStructure{DocsAfterWB: order, Sheets: moveToFront(fs.Sheets, moved.Index), HasWorkbook: fs.HasWorkbook}
	}

	sheetTo := posWithin(newFS.Sheets, moved.Index)
	var secondary *PhysicalMove
	if sheetFrom != sheetTo {
		secondary = &PhysicalMove{Kind: MoveSheetKind, SheetFrom: sheetFrom, SheetTo: sheetTo}
	}
	return finalizePhysical(&pm, secondary, newFS, desired), true
}

// bestEffortPlan handles a shape no physical plan can fully realize: the
// dragged tab is moved as close as a single same-kind primitive allows,
// and tab_order carries the rest.
func bestEffortPlan(moved model.TabOrderItem, desired []model.TabOrderItem, fs model.FileStructure) Action {
	var sameKind []int
	for _, it := range desired {
		if it.Kind == moved.Kind {
			sameKind = append(sameKind, it.Index)
		}
	}

	var pm *PhysicalMove
	switch moved.Kind {
	case model.KindSheet:
		from := posWithin(fs.Sheets, moved.Index)
		to := posWithin(sameKind, moved.Index)
		if from >= 0 && to >= 0 && from != to {
			pm = &PhysicalMove{Kind: MoveSheetKind, SheetFrom: from, SheetTo: to}
		}
	case model.KindDocument:
		order := globalDocOrder(fs)
		from := indexOfInt(order, moved.Index)
		to := indexOfInt(sameKind, moved.Index)
		if from >= 0 && to >= 0 && from != to {
			pm = &PhysicalMove{Kind: MoveDocumentKind, DocFrom: from, DocTo: preRemovalGap(from, to)}
		}
	}

	actionType := Metadata
	if pm != nil {
		actionType = PhysicalMetadata
	}
	return Action{
		Type:             actionType,
		PhysicalMove:     pm,
		NewTabOrder:      append([]model.TabOrderItem(nil), desired...),
		MetadataRequired: true,
	}
}

// finalizePhysical compares the natural order a plan produces against the
// desired order: when they already match, tab_order is dropped (even one
// that existed before the drag); otherwise tab_order carries the
// difference alongside the physical move.
func finalizePhysical(primary, secondary *PhysicalMove, newFS model.FileStructure, desired []model.TabOrderItem) Action {
	nat := taborder.Natural(newFS)
	if taborder.Equal(nat, desired) {
		return Action{Type: Physical, PhysicalMove: primary, SecondaryMove: secondary}
	}
	return Action{
		Type:             PhysicalMetadata,
		PhysicalMove:     primary,
		SecondaryMove:    secondary,
		NewTabOrder:      append([]model.TabOrderItem(nil), desired...),
		MetadataRequired: true,
	}
}

// analyzeShape buckets desired into a before-Workbook Document run, the
// Sheet run, and an after-Workbook Document run. ok is false when Sheets
// appear in more than one run, which no physical move can realize.
func analyzeShape(desired []model.TabOrderItem) (before, sheetRun, after []int, ok bool) {
	phase := 0
	for _, item := range desired {
		switch item.Kind {
		case model.KindSheet:
			if phase == 2 {
				return nil, nil, nil, false
			}
			phase = 1
			sheetRun = append(sheetRun, item.Index)
		case model.KindDocument:
			if phase == 1 {
				phase = 2
			}
			if phase == 0 {
				before = append(before, item.Index)
			} else {
				after = append(after, item.Index)
			}
		}
	}
	return before, sheetRun, after, true
}

func removeAndInsert(tabs []model.TabOrderItem, from, to int) []model.TabOrderItem {
	rest := make([]model.TabOrderItem, 0, len(tabs)-1)
	rest = append(rest, tabs[:from]...)
	rest = append(rest, tabs[from+1:]...)
	moved := tabs[from]
	to = clamp(to, 0, len(rest))
	result := make([]model.TabOrderItem, 0, len(tabs))
	result = append(result, rest[:to]...)
	result = append(result, moved)
	result = append(result, rest[to:]...)
	return result
}

func removeItem(items []model.TabOrderItem, item model.TabOrderItem) []model.TabOrderItem {
	out := make([]model.TabOrderItem, 0, len(items))
	for _, it := range items {
		if it.Equal(item) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func indexOfTab(items []model.TabOrderItem, item model.TabOrderItem) int {
	for i, it := range items {
		if it.Equal(item) {
			return i
		}
	}
	return -1
}

func globalDocOrder(fs model.FileStructure) []int {
	out := make([]int, 0, fs.NumDocs())
	out = append(out, fs.DocsBeforeWB...)
	out = append(out, fs.DocsAfterWB...)
	return out
}

func posWithin(order []int, id int) int {
	for i, v := range order {
		if v == id {
			return i
		}
	}
	return -1
}

func indexOfInt(order []int, id int) int { return posWithin(order, id) }

func containsInt(s []int, v int) bool { return posWithin(s, v) >= 0 }

func intSet(s []int) map[int]bool {
	out := make(map[int]bool, len(s))
	for _, v := range s {
		out[v] = true
	}
	return out
}

func intSetEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	sa := intSet(a)
	for _, v := range b {
		if !sa[v] {
			return false
		}
	}
	return true
}

// lastByOrder returns the member of ids that appears latest in order.
func lastByOrder(order, ids []int) int {
	best, bestPos := ids[0], -1
	for _, id := range ids {
		if p := posWithin(order, id); p > bestPos {
			best, bestPos = id, p
		}
	}
	return best
}

// firstByOrder returns the member of ids that appears earliest in order.
func firstByOrder(order, ids []int) int {
	best, bestPos := ids[0], len(order)+1
	for _, id := range ids {
		if p := posWithin(order, id); p >= 0 && p < bestPos {
			best, bestPos = id, p
		}
	}
	return best
}

func moveToEnd(order []int, id int) []int {
	out := make([]int, 0, len(order))
	for _, v := range order {
		if v != id {
			out = append(out, v)
		}
	}
	return append(out, id)
}

func moveToFront(order []int, id int) []int {
	out := make([]int, 0, len(order))
	out = append(out, id)
	for _, v := range order {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// preRemovalGap converts a post-insertion position p (0-based, among the
// new order) back to docops.MoveDocumentSection's pre-removal gap index,
// given the item's old position oldPos.
func preRemovalGap(oldPos, p int) int {
	if p <= oldPos {
		return p
	}
	return p + 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
