package markup

// Filter is one stage of the element transformation pipeline. Each non-body
// token pulled from the tokenizer is wrapped as an Element and handed to every
// filter in order. A filter may pass the element on, drop it, or replace it
// with several elements.
//
// Filters transform elements; they never see or intercept tokenizer errors,
// which abort the parse before the pipeline runs.
type Filter interface {
	Process(el Element) (Result, error)
}

type filterAction int

const (
	keepAction filterAction = iota
	dropAction
	replaceAction
)

// Result is the outcome of one filter's Process call.
type Result struct {
	action   filterAction
	elements []Element
}

// Keep passes el (possibly mutated or swapped) to the next filter.
func Keep(el Element) Result {
	return Result{action: keepAction, elements: []Element{el}}
}

// Drop discards the element entirely: it reaches neither the remaining
// filters nor the assembler, and the pipeline pulls a fresh token.
func Drop() Result {
	return Result{action: dropAction}
}

// Replace substitutes the element with the given list. The first element
// continues through the remaining filters of the current pass; the rest are
// buffered and each re-runs the whole chain from the first filter on a later
// pull. An empty Replace behaves as Drop.
func Replace(els ...Element) Result {
	return Result{action: replaceAction, elements: els}
}
