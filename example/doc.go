// Package example generates labeled relation examples from annotated
// sentences.
//
// For every pair of tokens (i<j) in a sentence the Builder decides which
// oriented examples to emit (Styles), labels each with the sorted, joined
// types of the gold interactions between the pair (ResolveCategory), runs
// the enabled feature contributors along the shortest dependency path, and
// assembles a Record with a class id and t1/t2/deprev attributes.
//
// Feature and class ids come from injected idset registries. Names are
// resolved in corpus order after the sentences are built, so the ids are the
// same for any worker count.
package example
