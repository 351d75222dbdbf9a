package ir

// ShapeTag identifies the structural role of a type at the call boundary.
type ShapeTag int

const (
	ShapePlain ShapeTag = iota
	ShapeGeneratedAPI
	ShapeCallback
	ShapeConsumer
	ShapeSupplier
	ShapeSupplierOfDeferred
	ShapeTransformFunction
	ShapeList
	ShapeSet
	ShapeMap
	ShapeStreamAsPublisher
	ShapeDeferredValue
	ShapeRunnableCallback
)

// String returns the string representation of the shape tag.
func (s ShapeTag) String() string {
	switch s {
	case ShapePlain:
		return "PLAIN"
	case ShapeGeneratedAPI:
		return "GENERATED_API"
	case ShapeCallback:
		return "CALLBACK"
	case ShapeConsumer:
		return "CONSUMER"
	case ShapeSupplier:
		return "SUPPLIER"
	case ShapeSupplierOfDeferred:
		return "SUPPLIER_OF_DEFERRED"
	case ShapeTransformFunction:
		return "TRANSFORM_FUNCTION"
	case ShapeList:
		return "LIST"
	case ShapeSet:
		return "SET"
	case ShapeMap:
		return "MAP"
	case ShapeStreamAsPublisher:
		return "STREAM_AS_PUBLISHER"
	case ShapeDeferredValue:
		return "DEFERRED_VALUE"
	case ShapeRunnableCallback:
		return "RUNNABLE_CALLBACK"
	default:
		return "UNKNOWN"
	}
}

// Shape is the closed sum of classifications. Each variant carries the
// type arguments it needs so callers can switch on the concrete type.
//
// Type arguments are nil when the classified type was used raw
// (for example a Handler without its type argument); consumers of a shape
// must treat a missing argument as a classification gap.
type Shape interface {
	// Tag returns the variant tag.
	Tag() ShapeTag

	// Type returns the classified type.
	Type() *TypeRef

	// Ensure only types in this package can implement Shape.
	sealed()
}

type shapeMarker struct{}

func (shapeMarker) sealed() {}

// Plain passes through the call boundary unchanged.
type Plain struct {
	shapeMarker
	Of *TypeRef
}

// GeneratedAPI is a type with a generated counterpart.
type GeneratedAPI struct {
	shapeMarker
	Of        *TypeRef
	Generated QualifiedName
}

// Callback is a single-argument handler interface returning nothing.
type Callback struct {
	shapeMarker
	Of   *TypeRef
	Item *TypeRef
}

// Consumer is a side-effecting single-argument function.
type Consumer struct {
	shapeMarker
	Of   *TypeRef
	Item *TypeRef
}

// Supplier is a zero-argument producer of a plain value.
type Supplier struct {
	shapeMarker
	Of   *TypeRef
	Item *TypeRef
}

// SupplierOfDeferred is a zero-argument producer of a deferred value.
// Deferred is the produced type, Item the deferred value's item type.
type SupplierOfDeferred struct {
	shapeMarker
	Of       *TypeRef
	Deferred *TypeRef
	Item     *TypeRef
}

// TransformFunction is a single-argument, single-result function.
type TransformFunction struct {
	shapeMarker
	Of     *TypeRef
	Input  *TypeRef
	Output *TypeRef
}

// List is an ordered sequence container.
type List struct {
	shapeMarker
	Of   *TypeRef
	Elem *TypeRef
}

// Set is an unordered container of unique elements.
type Set struct {
	shapeMarker
	Of   *TypeRef
	Elem *TypeRef
}

// Map is a key-unique associative container.
type Map struct {
	shapeMarker
	Of    *TypeRef
	Key   *TypeRef
	Value *TypeRef
}

// StreamAsPublisher is a push-based source surfaced as a pull-based stream.
type StreamAsPublisher struct {
	shapeMarker
	Of   *TypeRef
	Elem *TypeRef
}

// DeferredValue is a single result available at a future point.
type DeferredValue struct {
	shapeMarker
	Of   *TypeRef
	Item *TypeRef
}

// RunnableCallback is a zero-argument callback.
type RunnableCallback struct {
	shapeMarker
	Of *TypeRef
}

func (s *Plain) Tag() ShapeTag              { return ShapePlain }
func (s *GeneratedAPI) Tag() ShapeTag       { return ShapeGeneratedAPI }
func (s *Callback) Tag() ShapeTag           { return ShapeCallback }
func (s *Consumer) Tag() ShapeTag           { return ShapeConsumer }
func (s *Supplier) Tag() ShapeTag           { return ShapeSupplier }
func (s *SupplierOfDeferred) Tag() ShapeTag { return ShapeSupplierOfDeferred }
func (s *TransformFunction) Tag() ShapeTag  { return ShapeTransformFunction }
func (s *List) Tag() ShapeTag               { return ShapeList }
func (s *Set) Tag() ShapeTag                { return ShapeSet }
func (s *Map) Tag() ShapeTag                { return ShapeMap }
func (s *StreamAsPublisher) Tag() ShapeTag  { return ShapeStreamAsPublisher }
func (s *DeferredValue) Tag() ShapeTag      { return ShapeDeferredValue }
func (s *RunnableCallback) Tag() ShapeTag   { return ShapeRunnableCallback }

func (s *Plain) Type() *TypeRef              { return s.Of }
func (s *GeneratedAPI) Type() *TypeRef       { return s.Of }
func (s *Callback) Type() *TypeRef           { return s.Of }
func (s *Consumer) Type() *TypeRef           { return s.Of }
func (s *Supplier) Type() *TypeRef           { return s.Of }
func (s *SupplierOfDeferred) Type() *TypeRef { return s.Of }
func (s *TransformFunction) Type() *TypeRef  { return s.Of }
func (s *List) Type() *TypeRef               { return s.Of }
func (s *Set) Type() *TypeRef                { return s.Of }
func (s *Map) Type() *TypeRef                { return s.Of }
func (s *StreamAsPublisher) Type() *TypeRef  { return s.Of }
func (s *DeferredValue) Type() *TypeRef      { return s.Of }
func (s *RunnableCallback) Type() *TypeRef   { return s.Of }
