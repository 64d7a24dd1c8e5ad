// Package features turns a token pair and the dependency path between them
// into a sparse feature vector.
//
// Contributors (dependency, linear, ontology, random) write named weights
// into the vector currently attached to them. Names are mapped to integer
// ids only after a whole sentence has been built, via Resolve, so that id
// assignment does not depend on the order sentences are processed in.
//
// Typical use:
//
//	vec := features.NewNamed()
//	dep := features.NewDependencyBuilder()
//	dep.Attach(vec)
//	err := dep.Contribute(pc)
//	dep.Detach()
//	ids, err := features.Resolve(vec, featureSet)
package features
