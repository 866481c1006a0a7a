// Package colleng collects the primitive-specialized collection types:
// three open-addressing hash set layouts and a binary-heap priority
// queue, all built on a shared hash-mixing and sizing substrate.
//
// Reaching for a dedicated package (plain, robin, sentinel, heap)
// directly is recommended in most code; NewSet is a convenience
// factory for callers that want to pick a layout from configuration
// rather than at compile time.
//
// Go generics stand in for the offline templating layer of the
// original design: a type like plain.Set[K comparable] is
// monomorphized by the compiler per instantiation, so there is no
// .template/preprocessor step and no generated-code directives to
// configure. TemplateOptions fields from that design map onto this
// package as follows:
//
//   - ktype/vtype            -> the K/V type parameter supplied at the
//     call site (e.g. plain.New[uint64]())
//   - doNotGenerateKType     -> simply don't instantiate that type
//     parameter; nothing is pre-generated to suppress
//   - generatedAnnotation    -> not applicable; no generated files exist
//     to annotate
package colleng
