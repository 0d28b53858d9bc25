package section

// Variant is the record shape selected by a member flag word.
type Variant uint8

const (
	// VariantReachable records a member that was seen as reachable but never
	// registered for introspection. Only the name (and parameter type names
	// for executables) is encoded.
	VariantReachable Variant = iota
	// VariantComplete records a member usable for full introspection.
	VariantComplete
	// VariantHiding records a member shadowed by a subtype member of the same
	// name. Name and types are encoded.
	VariantHiding
	// VariantNegative records a query that definitively found nothing.
	VariantNegative
	// VariantHeap references a pre-built heap object.
	VariantHeap
)

func (v Variant) String() string {
	switch v {
	case VariantReachable:
		return "Reachable"
	case VariantComplete:
		return "Complete"
	case VariantHiding:
		return "Hiding"
	case VariantNegative:
		return "Negative"
	case VariantHeap:
		return "Heap"
	default:
		return "Unknown"
	}
}

// Policy selects which caller a decode serves.
type Policy uint8

const (
	// PolicyReflective produces fully usable introspection objects.
	PolicyReflective Policy = iota
	// PolicyReachability produces lightweight reachability descriptors.
	PolicyReachability
)

func (p Policy) String() string {
	switch p {
	case PolicyReflective:
		return "Reflective"
	case PolicyReachability:
		return "Reachability"
	default:
		return "Unknown"
	}
}

// Admits reports whether a record of the given variant produces a value for
// this policy.
//
//	variant     | Reflective | Reachability
//	------------|------------|-------------
//	Complete    | yes        | yes
//	Heap        | yes        | yes
//	Hiding      | yes        | no
//	Negative    | yes        | no
//	Reachable   | no         | yes
//
// Heap records are filtered further by the decoder once the object is known.
func (p Policy) Admits(v Variant) bool {
	switch v {
	case VariantComplete, VariantHeap:
		return true
	case VariantHiding, VariantNegative:
		return p == PolicyReflective
	case VariantReachable:
		return p == PolicyReachability
	default:
		return false
	}
}
