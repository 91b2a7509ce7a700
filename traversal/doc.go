/*
	traversal package implements a lazy, pull-based step pipeline over a
	graph.Graph. A Traversal is built by chaining steps onto a start step,
	for example

		traversal.New(g).V("1").Repeat(traversal.Anon().Out("knows")).Times(2).Path()

	Nothing runs until the first pull. The first pull applies the
	registered optimizers, decides whether traverser paths must be
	tracked and locks the step list. Each pull then asks the last step for
	a traverser, which asks its upstream only when it needs input. Barrier
	steps (count, fold, order, group, aggregate, barrier, cap) drain their
	upstream before emitting anything.

	Evaluation errors are terminal: once a pull fails every further pull
	returns the same error.
*/

package traversal
