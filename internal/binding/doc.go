// Package binding resolves where every property of every embedded instance
// ultimately reads its value from.
//
// Resolution pipeline:
//  1. Collect: walk every component once. Each getter bound to an extern
//     property is Direct when it reads a declared variable of the owning
//     component, or a Redirection when it reads a property the owning
//     component itself receives from its embedder.
//  2. Resolve: follow redirection chains of any depth. Nodes are
//     (owner, identifier) pairs, edges are redirection hops weighted by index
//     suffixes. Reach sets are memoized per node and the active path is
//     tracked so that cycles fail instead of looping.
//  3. Publish: the Direct table now lists, for every bound property, every
//     (source component, concrete getter) pair. The Redirection table is
//     augmented with every intermediate hop so code generation knows which
//     instances forward change notifications to which inner instances.
//
// Index composition: when row.label reads value[0] and value is bound to
// items[2], the resolved getter is items[2][0].
package binding
