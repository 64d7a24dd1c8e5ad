// Package tees turns annotated sentences into training examples for a
// pairwise relation classifier.
//
// 🚀 What is in the box?
//
//	For every token pair of a sentence:
//		• Shortest dependency path on the undirected parse (BFS, cutoff 999)
//		• Gold label from the interaction graph ("neg", "Binding-Phosphorylation", ...)
//		• Sparse feature vector from dependency, linear, ontology and random contributors
//		• Record with id "<sentence>.x<n>", class id and t1/t2/deprev attributes
//
// ✨ Guarantees
//
//   - Deterministic: same corpus, same styles, same ids, for any worker count
//   - "neg" is always class 1
//   - Registries are injected and can be frozen and stored for a later test corpus
//
// Packages:
//
//	core/      typed, thread-safe multigraph used for parses and interactions
//	bfs/       breadth-first search with depth cutoff and parent tree
//	paths/     all-pairs shortest-path index over a sentence
//	sentence/  tokens, entities, dependency and interaction graphs
//	features/  named vectors, contributors, ontology
//	idset/     name ↔ id registries and their SQLite store
//	example/   styles, category resolution, pair loop, corpus pass
//	corpus/    interaction XML reader
//	exampleio/ SVM-light and JSON-lines writers
//	cmd/       the tees command
//
// Quick ASCII example ("STAT3 binds JAK2"):
//
//	        binds
//	  nsubj ╱    ╲ dobj
//	   STAT3      JAK2        path STAT3→JAK2 = [bt_0 bt_1 bt_2], length 2
//
//	go install github.com/lrxzhy/TEES/cmd/tees@latest
package tees
